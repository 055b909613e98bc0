package kinetic

import "math"

type JointType int

const (
	JointPin JointType = iota
	JointSpring
	JointFixed
	JointSliding
	JointLimit
)

func (t JointType) String() string {
	switch t {
	case JointPin:
		return "pin"
	case JointSpring:
		return "spring"
	case JointFixed:
		return "fixed"
	case JointSliding:
		return "sliding"
	case JointLimit:
		return "limit"
	}
	return "unknown"
}

// Joint links two bodies. Registration with a world cross-registers the
// joint on both bodies' joint lists; removal reverses both. The solver is a
// single relaxation per step per joint, not a full block solver: each
// variant projects its geometric error out and records the force it spent
// doing so.
type Joint struct {
	kind         JointType
	bodyA, bodyB *Body

	Anchor           Vector // pin, fixed, sliding (world space at creation)
	AnchorA, AnchorB Vector // spring, limit
	Axis             Vector // sliding

	ShouldEnableLimits bool
	LowerAngleLimit    float64
	UpperAngleLimit    float64
	RotationSpeed      float64
	FrictionTorque     float64

	Frequency float64
	Damping   float64

	LowerDistanceLimit float64
	UpperDistanceLimit float64

	MaxLength float64

	reactionForce  Vector
	reactionTorque float64

	// rest geometry captured at construction
	restA, restB float64
	restOffset   Vector
	restLength   float64
	localA       Vector
	localB       Vector
}

func NewPinJoint(a, b *Body, anchor Vector) *Joint {
	j := &Joint{kind: JointPin, bodyA: a, bodyB: b, Anchor: anchor}
	j.restA = a.position().Distance(anchor)
	j.restB = b.position().Distance(anchor)
	return j
}

func NewSpringJoint(a, b *Body, anchorA, anchorB Vector) *Joint {
	j := &Joint{
		kind:      JointSpring,
		bodyA:     a,
		bodyB:     b,
		AnchorA:   anchorA,
		AnchorB:   anchorB,
		Frequency: 1,
	}
	j.localA = anchorA.Sub(a.position())
	j.localB = anchorB.Sub(b.position())
	j.restLength = anchorA.Distance(anchorB)
	return j
}

func NewFixedJoint(a, b *Body, anchor Vector) *Joint {
	j := &Joint{kind: JointFixed, bodyA: a, bodyB: b, Anchor: anchor}
	j.restOffset = b.position().Sub(a.position())
	return j
}

func NewSlidingJoint(a, b *Body, anchor, axis Vector) *Joint {
	j := &Joint{kind: JointSliding, bodyA: a, bodyB: b, Anchor: anchor, Axis: axis.Normalize()}
	return j
}

func NewLimitJoint(a, b *Body, anchorA, anchorB Vector, maxLength float64) *Joint {
	j := &Joint{
		kind:      JointLimit,
		bodyA:     a,
		bodyB:     b,
		AnchorA:   anchorA,
		AnchorB:   anchorB,
		MaxLength: maxLength,
	}
	j.localA = anchorA.Sub(a.position())
	j.localB = anchorB.Sub(b.position())
	return j
}

func (j *Joint) Kind() JointType {
	return j.kind
}

func (j *Joint) BodyA() *Body {
	return j.bodyA
}

func (j *Joint) BodyB() *Body {
	return j.bodyB
}

func (j *Joint) ReactionForce() Vector {
	return j.reactionForce
}

func (j *Joint) ReactionTorque() float64 {
	return j.reactionTorque
}

func (j *Joint) live() bool {
	return j.bodyA != nil && j.bodyB != nil && j.bodyA.node != nil && j.bodyB.node != nil
}

// step runs one relaxation for the joint. Bodies without a live node make
// the joint inert for the step.
func (j *Joint) step(dt float64) {
	j.reactionForce = Vector{}
	j.reactionTorque = 0
	if !j.live() || dt <= 0 {
		return
	}

	switch j.kind {
	case JointPin:
		j.stepPin(dt)
	case JointSpring:
		j.stepSpring(dt)
	case JointFixed:
		j.stepFixed(dt)
	case JointSliding:
		j.stepSliding(dt)
	case JointLimit:
		j.stepLimit(dt)
	}
}

// stepPin keeps each body at its captured radius from the shared anchor.
func (j *Joint) stepPin(dt float64) {
	j.projectRadius(j.bodyA, j.restA, dt)
	j.projectRadius(j.bodyB, j.restB, dt)

	if j.RotationSpeed != 0 {
		j.motor(j.bodyA, dt)
		j.motor(j.bodyB, dt)
	}
	if j.ShouldEnableLimits {
		j.clampRotation(j.bodyA)
		j.clampRotation(j.bodyB)
	}
}

func (j *Joint) projectRadius(body *Body, rest float64, dt float64) {
	if !body.movable() {
		return
	}
	dir := body.position().Sub(j.Anchor)
	d := dir.Length()
	if d == 0 {
		return
	}
	corr := dir.Mult((rest - d) / d)
	j.translate(body, corr, dt)
}

func (j *Joint) motor(body *Body, dt float64) {
	if !body.movable() || !body.AllowsRotation {
		return
	}
	moment := body.Moment()
	if moment <= 0 {
		return
	}
	maxDelta := math.Abs(j.FrictionTorque) / moment * dt
	if maxDelta == 0 {
		maxDelta = math.Abs(j.RotationSpeed - body.AngularVelocity)
	}
	delta := Clamp(j.RotationSpeed-body.AngularVelocity, -maxDelta, maxDelta)
	body.AngularVelocity += delta
	j.reactionTorque += delta * moment / dt
}

func (j *Joint) clampRotation(body *Body) {
	if body.node == nil {
		return
	}
	a := body.node.Rotation()
	clamped := Clamp(a, j.LowerAngleLimit, j.UpperAngleLimit)
	if clamped != a {
		body.node.SetRotation(clamped)
		body.AngularVelocity = 0
	}
}

// stepSpring applies a damped Hookean force between the two anchors.
func (j *Joint) stepSpring(dt float64) {
	pa := j.bodyA.position().Add(j.localA)
	pb := j.bodyB.position().Add(j.localB)
	delta := pb.Sub(pa)
	d := delta.Length()
	if d == 0 {
		return
	}
	n := delta.Mult(1.0 / d)

	wa := j.bodyA.invMass()
	wb := j.bodyB.invMass()
	wSum := wa + wb
	if wSum == 0 {
		return
	}
	reduced := 1.0 / wSum

	k := math.Pow(2.0*math.Pi*j.Frequency, 2) * reduced
	stretch := d - j.restLength
	relVel := j.bodyB.Velocity.Sub(j.bodyA.Velocity).Dot(n)
	force := -k*stretch - j.Damping*relVel

	impulse := n.Mult(force * dt)
	j.bodyA.Velocity = j.bodyA.Velocity.Sub(impulse.Mult(wa))
	j.bodyB.Velocity = j.bodyB.Velocity.Add(impulse.Mult(wb))
	j.reactionForce = n.Mult(force)
}

// stepFixed rigidly locks the relative offset captured at construction.
func (j *Joint) stepFixed(dt float64) {
	err := j.bodyB.position().Sub(j.bodyA.position()).Sub(j.restOffset)
	j.split(err, dt)
	j.matchVelocities()
}

// stepSliding removes motion perpendicular to the axis and clamps travel
// along it when limits are enabled.
func (j *Joint) stepSliding(dt float64) {
	axis := j.Axis
	if axis.IsZero() {
		return
	}
	r := j.bodyB.position().Sub(j.bodyA.position())
	along := r.Dot(axis)
	perp := r.Sub(axis.Mult(along))

	err := perp
	if j.ShouldEnableLimits {
		clamped := Clamp(along, j.LowerDistanceLimit, j.UpperDistanceLimit)
		err = err.Add(axis.Mult(along - clamped))
	}
	j.split(err, dt)
}

// stepLimit is a rope: free inside MaxLength, rigid beyond it.
func (j *Joint) stepLimit(dt float64) {
	pa := j.bodyA.position().Add(j.localA)
	pb := j.bodyB.position().Add(j.localB)
	delta := pb.Sub(pa)
	d := delta.Length()
	if d <= j.MaxLength || d == 0 {
		return
	}
	n := delta.Mult(1.0 / d)
	j.split(n.Mult(d-j.MaxLength), dt)

	// taut ropes do not stretch: cancel separating velocity
	relVel := j.bodyB.Velocity.Sub(j.bodyA.Velocity).Dot(n)
	if relVel > 0 {
		wa := j.bodyA.invMass()
		wb := j.bodyB.invMass()
		if wSum := wa + wb; wSum > 0 {
			imp := n.Mult(relVel / wSum)
			j.bodyA.Velocity = j.bodyA.Velocity.Add(imp.Mult(wa))
			j.bodyB.Velocity = j.bodyB.Velocity.Sub(imp.Mult(wb))
		}
	}
}

// split distributes a positional error between the movable endpoints,
// weighted by inverse mass, and records the equivalent reaction force.
func (j *Joint) split(err Vector, dt float64) {
	wa := j.bodyA.invMass()
	wb := j.bodyB.invMass()
	wSum := wa + wb
	if wSum == 0 || err.IsZero() {
		return
	}
	j.translate(j.bodyA, err.Mult(wa/wSum), dt)
	j.translate(j.bodyB, err.Neg().Mult(wb/wSum), dt)
}

func (j *Joint) translate(body *Body, delta Vector, dt float64) {
	if delta.IsZero() || body.node == nil {
		return
	}
	body.node.SetPosition(body.node.Position().Add(delta))
	j.reactionForce = j.reactionForce.Add(delta.Mult(body.Mass() / (dt * dt)))
}

func (j *Joint) matchVelocities() {
	wa := j.bodyA.invMass()
	wb := j.bodyB.invMass()
	wSum := wa + wb
	if wSum == 0 {
		return
	}
	// momentum-weighted shared velocity of a rigid pair
	va := j.bodyA.Velocity
	vb := j.bodyB.Velocity
	shared := va.Mult(wb / wSum).Add(vb.Mult(wa / wSum))
	if j.bodyA.movable() {
		j.bodyA.Velocity = shared
	}
	if j.bodyB.movable() {
		j.bodyB.Velocity = shared
	}
}
