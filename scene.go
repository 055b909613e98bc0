package kinetic

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// SceneConfig is the YAML description of a world plus its bodies, fields
// and joints. Hosts use it for fixtures, editors and tests; it is not part
// of the simulation core's hot path.
type SceneConfig struct {
	Gravity []float64     `yaml:"gravity"`
	Speed   *float64      `yaml:"speed,omitempty"`
	Bodies  []BodyConfig  `yaml:"bodies"`
	Fields  []FieldConfig `yaml:"fields"`
	Joints  []JointConfig `yaml:"joints"`
}

type BodyConfig struct {
	Name        string      `yaml:"name,omitempty"`
	Shape       ShapeConfig `yaml:"shape"`
	Position    []float64   `yaml:"position"`
	Dynamic     *bool       `yaml:"dynamic,omitempty"`
	Pinned      bool        `yaml:"pinned,omitempty"`
	Gravity     *bool       `yaml:"gravity,omitempty"`
	Rotation    *bool       `yaml:"rotation,omitempty"`
	Mass        *float64    `yaml:"mass,omitempty"`
	Density     *float64    `yaml:"density,omitempty"`
	Friction    *float64    `yaml:"friction,omitempty"`
	Restitution *float64    `yaml:"restitution,omitempty"`
	LinearDamp  *float64    `yaml:"linearDamping,omitempty"`
	AngularDamp *float64    `yaml:"angularDamping,omitempty"`
	Charge      float64     `yaml:"charge,omitempty"`
	Precise     bool        `yaml:"precise,omitempty"`
	Category    *uint32     `yaml:"category,omitempty"`
	Collision   *uint32     `yaml:"collision,omitempty"`
	ContactTest uint32      `yaml:"contactTest,omitempty"`
	FieldMask   *uint32     `yaml:"fieldMask,omitempty"`
}

type ShapeConfig struct {
	Type   string      `yaml:"type"`
	Size   []float64   `yaml:"size,omitempty"`
	Radius float64     `yaml:"radius,omitempty"`
	Center []float64   `yaml:"center,omitempty"`
	Rect   []float64   `yaml:"rect,omitempty"` // l, b, r, t
	Points [][]float64 `yaml:"points,omitempty"`
}

type FieldConfig struct {
	Name      string    `yaml:"name,omitempty"`
	Type      string    `yaml:"type"`
	Position  []float64 `yaml:"position,omitempty"`
	Direction []float64 `yaml:"direction,omitempty"`
	Strength  *float64  `yaml:"strength,omitempty"`
	Falloff   float64   `yaml:"falloff,omitempty"`
	MinRadius float64   `yaml:"minimumRadius,omitempty"`
	Smooth    float64   `yaml:"smoothness,omitempty"`
	Speed     float64   `yaml:"animationSpeed,omitempty"`
	Exclusive bool      `yaml:"exclusive,omitempty"`
	Category  *uint32   `yaml:"category,omitempty"`
	Region    []float64 `yaml:"region,omitempty"` // l, b, r, t
}

type JointConfig struct {
	Type      string    `yaml:"type"`
	BodyA     string    `yaml:"bodyA"`
	BodyB     string    `yaml:"bodyB"`
	Anchor    []float64 `yaml:"anchor,omitempty"`
	AnchorA   []float64 `yaml:"anchorA,omitempty"`
	AnchorB   []float64 `yaml:"anchorB,omitempty"`
	Axis      []float64 `yaml:"axis,omitempty"`
	Frequency float64   `yaml:"frequency,omitempty"`
	Damping   float64   `yaml:"damping,omitempty"`
	MaxLength float64   `yaml:"maxLength,omitempty"`
}

// Scene is a built world with name lookups for everything the config
// declared. Bodies get free-standing BasicNodes; a host embedding the
// scene in a real graph re-points the nodes itself.
type Scene struct {
	World  *World
	Nodes  map[string]*BasicNode
	Bodies map[string]*Body
	Fields map[string]*Field
	Joints []*Joint
}

func LoadSceneFile(path string) (*Scene, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open scene: %w", err)
	}
	defer f.Close()
	return LoadScene(f)
}

func LoadScene(r io.Reader) (*Scene, error) {
	var cfg SceneConfig
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode scene: %w", err)
	}
	return cfg.Build()
}

// Build constructs the world, attaching every declared body, field and
// joint. Unnamed entities get generated names so lookups stay total.
func (cfg *SceneConfig) Build() (*Scene, error) {
	scene := &Scene{
		World:  NewWorld(),
		Nodes:  map[string]*BasicNode{},
		Bodies: map[string]*Body{},
		Fields: map[string]*Field{},
	}

	if v, ok := vectorFrom(cfg.Gravity); ok {
		scene.World.Gravity = v
	}
	if cfg.Speed != nil {
		scene.World.Speed = *cfg.Speed
	}

	for _, bc := range cfg.Bodies {
		name := bc.Name
		if name == "" {
			name = uuid.NewString()
		}
		if _, exists := scene.Bodies[name]; exists {
			return nil, fmt.Errorf("duplicate body name %q", name)
		}
		body, node, err := bc.build()
		if err != nil {
			return nil, fmt.Errorf("body %q: %w", name, err)
		}
		scene.Bodies[name] = body
		scene.Nodes[name] = node
		scene.World.AddBody(body)
	}

	var fields FieldList
	for _, fc := range cfg.Fields {
		name := fc.Name
		if name == "" {
			name = uuid.NewString()
		}
		field, err := fc.build()
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		scene.Fields[name] = field
		fields = append(fields, field)
	}
	scene.World.SetFieldSource(fields)

	for i, jc := range cfg.Joints {
		joint, err := jc.build(scene.Bodies)
		if err != nil {
			return nil, fmt.Errorf("joint %d: %w", i, err)
		}
		scene.Joints = append(scene.Joints, joint)
		scene.World.AddJoint(joint)
	}

	return scene, nil
}

func (bc *BodyConfig) build() (*Body, *BasicNode, error) {
	shape, err := bc.Shape.build()
	if err != nil {
		return nil, nil, err
	}

	center, _ := vectorFrom(bc.Shape.Center)
	body := NewBodyWithCenter(shape, center)

	pos, _ := vectorFrom(bc.Position)
	node := NewBasicNode(pos)
	body.SetNode(node)

	if bc.Dynamic != nil {
		body.Dynamic = *bc.Dynamic
	}
	body.Pinned = bc.Pinned
	if bc.Gravity != nil {
		body.AffectedByGravity = *bc.Gravity
	}
	if bc.Rotation != nil {
		body.AllowsRotation = *bc.Rotation
	}
	if bc.Density != nil {
		body.SetDensity(*bc.Density)
	}
	if bc.Mass != nil {
		body.SetMass(*bc.Mass)
	}
	if bc.Friction != nil {
		body.Friction = *bc.Friction
	}
	if bc.Restitution != nil {
		body.Restitution = *bc.Restitution
	}
	if bc.LinearDamp != nil {
		body.LinearDamping = *bc.LinearDamp
	}
	if bc.AngularDamp != nil {
		body.AngularDamping = *bc.AngularDamp
	}
	body.Charge = bc.Charge
	body.UsesPreciseCollisionDetection = bc.Precise
	if bc.Category != nil {
		body.CategoryBitMask = *bc.Category
	}
	if bc.Collision != nil {
		body.CollisionBitMask = *bc.Collision
	}
	body.ContactTestBitMask = bc.ContactTest
	if bc.FieldMask != nil {
		body.FieldBitMask = *bc.FieldMask
	}
	return body, node, nil
}

func (sc *ShapeConfig) build() (*Shape, error) {
	switch sc.Type {
	case "rectangle":
		size, ok := vectorFrom(sc.Size)
		if !ok {
			return nil, fmt.Errorf("rectangle needs size [w, h]")
		}
		if center, ok := vectorFrom(sc.Center); ok {
			return NewRectangleShapeWithCenter(size, center), nil
		}
		return NewRectangleShape(size), nil
	case "circle":
		if sc.Radius <= 0 {
			return nil, fmt.Errorf("circle needs positive radius")
		}
		if center, ok := vectorFrom(sc.Center); ok {
			return NewCircleShapeWithCenter(sc.Radius, center), nil
		}
		return NewCircleShape(sc.Radius), nil
	case "edge-loop":
		if bb, ok := bbFrom(sc.Rect); ok {
			return NewEdgeLoopShape(bb), nil
		}
		if pts, ok := pointsFrom(sc.Points); ok {
			return NewEdgeLoopShapeWithPoints(pts), nil
		}
		return nil, fmt.Errorf("edge-loop needs rect or points")
	case "edge-chain":
		pts, ok := pointsFrom(sc.Points)
		if !ok {
			return nil, fmt.Errorf("edge-chain needs points")
		}
		return NewEdgeChainShape(pts), nil
	case "polygon":
		pts, ok := pointsFrom(sc.Points)
		if !ok {
			return nil, fmt.Errorf("polygon needs points")
		}
		return NewPolygonShape(pts), nil
	default:
		return nil, fmt.Errorf("unsupported shape type %q", sc.Type)
	}
}

func (fc *FieldConfig) build() (*Field, error) {
	var field *Field
	switch fc.Type {
	case "drag":
		field = NewDragField()
	case "electric":
		field = NewElectricField()
	case "linear-gravity":
		dir, ok := vectorFrom(fc.Direction)
		if !ok {
			return nil, fmt.Errorf("linear-gravity needs direction")
		}
		field = NewLinearGravityField(dir)
	case "radial-gravity":
		field = NewRadialGravityField()
	case "magnetic":
		field = NewMagneticField()
	case "noise":
		field = NewNoiseField(fc.Smooth, fc.Speed)
	case "turbulence":
		field = NewTurbulenceField(fc.Smooth, fc.Speed)
	case "velocity":
		dir, ok := vectorFrom(fc.Direction)
		if !ok {
			return nil, fmt.Errorf("velocity needs direction")
		}
		field = NewVelocityField(dir)
	case "vortex":
		field = NewVortexField()
	case "spring":
		field = NewSpringField()
	default:
		return nil, fmt.Errorf("unsupported field type %q", fc.Type)
	}

	if pos, ok := vectorFrom(fc.Position); ok {
		field.Position = pos
	}
	if fc.Strength != nil {
		field.Strength = *fc.Strength
	}
	field.Falloff = fc.Falloff
	field.MinimumRadius = fc.MinRadius
	field.Exclusive = fc.Exclusive
	if fc.Category != nil {
		field.CategoryBitMask = *fc.Category
	}
	if region, ok := bbFrom(fc.Region); ok {
		field.Region = &region
	}
	return field, nil
}

func (jc *JointConfig) build(bodies map[string]*Body) (*Joint, error) {
	a, ok := bodies[jc.BodyA]
	if !ok {
		return nil, fmt.Errorf("unknown bodyA %q", jc.BodyA)
	}
	b, ok := bodies[jc.BodyB]
	if !ok {
		return nil, fmt.Errorf("unknown bodyB %q", jc.BodyB)
	}

	anchor, _ := vectorFrom(jc.Anchor)
	anchorA, _ := vectorFrom(jc.AnchorA)
	anchorB, _ := vectorFrom(jc.AnchorB)

	switch jc.Type {
	case "pin":
		return NewPinJoint(a, b, anchor), nil
	case "spring":
		j := NewSpringJoint(a, b, anchorA, anchorB)
		if jc.Frequency > 0 {
			j.Frequency = jc.Frequency
		}
		j.Damping = jc.Damping
		return j, nil
	case "fixed":
		return NewFixedJoint(a, b, anchor), nil
	case "sliding":
		axis, ok := vectorFrom(jc.Axis)
		if !ok {
			return nil, fmt.Errorf("sliding joint needs axis")
		}
		return NewSlidingJoint(a, b, anchor, axis), nil
	case "limit":
		if jc.MaxLength <= 0 {
			return nil, fmt.Errorf("limit joint needs positive maxLength")
		}
		return NewLimitJoint(a, b, anchorA, anchorB, jc.MaxLength), nil
	default:
		return nil, fmt.Errorf("unsupported joint type %q", jc.Type)
	}
}

func vectorFrom(v []float64) (Vector, bool) {
	if len(v) != 2 {
		return Vector{}, false
	}
	return Vector{v[0], v[1]}, true
}

func bbFrom(v []float64) (BB, bool) {
	if len(v) != 4 {
		return BB{}, false
	}
	return BB{v[0], v[1], v[2], v[3]}, true
}

func pointsFrom(raw [][]float64) ([]Vector, bool) {
	if len(raw) == 0 {
		return nil, false
	}
	pts := make([]Vector, 0, len(raw))
	for _, p := range raw {
		v, ok := vectorFrom(p)
		if !ok {
			return nil, false
		}
		pts = append(pts, v)
	}
	return pts, true
}
