package kinetic

import "fmt"

const AllCategories = ^uint32(0)

type Body struct {
	id    uint64
	shape *Shape

	// non-owning handle to the host's scene node; a body with no live node
	// is inert for the step, not an error
	node Node

	Dynamic           bool
	AffectedByGravity bool
	AllowsRotation    bool
	Pinned            bool
	Resting           bool

	// UsesPreciseCollisionDetection opts the body into the swept CCD pass.
	UsesPreciseCollisionDetection bool

	// mass and density are kept consistent both ways over the shape's
	// fixed area; see SetMass and SetDensity
	mass    float64
	density float64

	Friction       float64
	Restitution    float64
	LinearDamping  float64
	AngularDamping float64

	Velocity        Vector
	AngularVelocity float64

	CategoryBitMask    uint32
	CollisionBitMask   uint32
	ContactTestBitMask uint32
	FieldBitMask       uint32

	Charge float64

	center Vector

	joints []*Joint

	// identities of bodies currently in contact, maintained by the world
	touching map[uint64]struct{}

	// CCD snapshot taken at the top of each step
	prevPosition Vector
}

var bodyIDCounter uint64

func newBody(shape *Shape, center Vector) *Body {
	bodyIDCounter++
	body := &Body{
		id:                bodyIDCounter,
		shape:             shape,
		center:            center,
		Dynamic:           true,
		AffectedByGravity: true,
		AllowsRotation:    true,
		Friction:          0.2,
		Restitution:       0.2,
		LinearDamping:     0.1,
		AngularDamping:    0.1,
		CategoryBitMask:   AllCategories,
		CollisionBitMask:  AllCategories,
		FieldBitMask:      AllCategories,
		touching:          map[uint64]struct{}{},
	}
	body.SetDensity(1.0)
	return body
}

func NewBody(shape *Shape) *Body {
	return newBody(shape, Vector{})
}

func NewBodyWithCenter(shape *Shape, center Vector) *Body {
	return newBody(shape, center)
}

func (b *Body) String() string {
	return fmt.Sprint("Body ", b.id)
}

func (b *Body) ID() uint64 {
	return b.id
}

func (b *Body) Shape() *Shape {
	return b.shape
}

func (b *Body) Node() Node {
	return b.node
}

// SetNode attaches the body to the host's mutable position storage.
func (b *Body) SetNode(node Node) {
	b.node = node
}

func (b *Body) Area() float64 {
	return b.shape.Area()
}

func (b *Body) Mass() float64 {
	if b.shape.Kind() == ShapeCompound {
		var sum float64
		for _, sub := range b.shape.Bodies() {
			sum += sub.Mass()
		}
		return sum
	}
	return b.mass
}

func (b *Body) SetMass(mass float64) {
	b.mass = mass
	if area := b.Area(); area > 0 {
		b.density = mass / area
	}
}

func (b *Body) Density() float64 {
	return b.density
}

func (b *Body) SetDensity(density float64) {
	b.density = density
	b.mass = density * b.Area()
}

// Moment approximates the moment of inertia as mass*area/12. It is a
// deliberate simplification, not a shape-dependent inertia tensor.
func (b *Body) Moment() float64 {
	return b.Mass() * b.Area() / 12.0
}

func (b *Body) Joints() []*Joint {
	return b.joints
}

// position is the collision-space location of the body: the node's world
// position plus the shape's center offset.
func (b *Body) position() Vector {
	if b.node == nil {
		return Vector{}
	}
	return b.node.WorldPosition().Add(b.center)
}

// BoundingBox returns the body's world-space box, or a zero box when the
// body has no live node.
func (b *Body) BoundingBox() BB {
	if b.node == nil {
		return BB{}
	}
	return b.shape.BoundingBox(b.position())
}

// ApplyForce accelerates the body through its center of mass. Forces are
// silently absorbed by non-dynamic, pinned or massless bodies.
func (b *Body) ApplyForce(force Vector) {
	if !b.Dynamic || b.Pinned {
		return
	}
	m := b.Mass()
	if m <= 0 {
		return
	}
	b.Velocity = b.Velocity.Add(force.Mult(1.0 / m))
}

// ApplyForceAt additionally feeds the lever-arm torque through the angular
// path when the application point is off center.
func (b *Body) ApplyForceAt(force, point Vector) {
	b.ApplyForce(force)
	b.applyPointTorque(force, point)
}

func (b *Body) ApplyTorque(torque float64) {
	if !b.Dynamic || !b.AllowsRotation {
		return
	}
	moment := b.Moment()
	if moment <= 0 {
		return
	}
	b.AngularVelocity += torque / moment
}

func (b *Body) ApplyImpulse(impulse Vector) {
	b.ApplyForce(impulse)
}

func (b *Body) ApplyImpulseAt(impulse, point Vector) {
	b.ApplyForceAt(impulse, point)
}

func (b *Body) ApplyAngularImpulse(impulse float64) {
	b.ApplyTorque(impulse)
}

func (b *Body) applyPointTorque(force, point Vector) {
	if !b.AllowsRotation {
		return
	}
	r := point.Sub(b.position())
	b.ApplyTorque(r.Cross(force))
}

// AllContactedBodies resolves the contacted identity set against the
// world's body list.
func (b *Body) AllContactedBodies(world *World) []*Body {
	var out []*Body
	for _, other := range world.bodies {
		if _, ok := b.touching[other.id]; ok {
			out = append(out, other)
		}
	}
	return out
}

func (b *Body) KineticEnergy() float64 {
	vsq := b.Velocity.Dot(b.Velocity)
	wsq := b.AngularVelocity * b.AngularVelocity
	var a, c float64
	if vsq != 0 {
		a = vsq * b.Mass()
	}
	if wsq != 0 {
		c = wsq * b.Moment()
	}
	return a + c
}

// invMass is the solver-side inverse mass: pinned and non-dynamic bodies
// contribute zero so they act as immovable.
func (b *Body) invMass() float64 {
	if !b.Dynamic || b.Pinned {
		return 0
	}
	m := b.Mass()
	if m <= 0 {
		return 0
	}
	return 1.0 / m
}

func (b *Body) movable() bool {
	return b.Dynamic && !b.Pinned && b.Mass() > 0
}

func (b *Body) addJoint(j *Joint) {
	b.joints = append(b.joints, j)
}

func (b *Body) removeJoint(j *Joint) {
	for i, joint := range b.joints {
		if joint == j {
			last := len(b.joints) - 1
			b.joints[i] = b.joints[last]
			b.joints[last] = nil
			b.joints = b.joints[:last]
			return
		}
	}
}
