package kinetic

import "math"

type FieldType int

const (
	FieldDrag FieldType = iota
	FieldElectric
	FieldLinearGravity
	FieldRadialGravity
	FieldMagnetic
	FieldNoise
	FieldTurbulence
	FieldVelocity
	FieldVelocityFlow
	FieldVortex
	FieldSpring
	FieldCustom
)

func (t FieldType) String() string {
	switch t {
	case FieldDrag:
		return "drag"
	case FieldElectric:
		return "electric"
	case FieldLinearGravity:
		return "linear-gravity"
	case FieldRadialGravity:
		return "radial-gravity"
	case FieldMagnetic:
		return "magnetic"
	case FieldNoise:
		return "noise"
	case FieldTurbulence:
		return "turbulence"
	case FieldVelocity:
		return "velocity"
	case FieldVelocityFlow:
		return "velocity-flow"
	case FieldVortex:
		return "vortex"
	case FieldSpring:
		return "spring"
	case FieldCustom:
		return "custom"
	}
	return "unknown"
}

// FieldContext is the per-body sample a field is evaluated against.
type FieldContext struct {
	Position Vector
	Velocity Vector
	Mass     float64
	Charge   float64
}

// FieldForceFunc must be a pure function of its context to keep the
// simulation deterministic.
type FieldForceFunc func(*Field, FieldContext) Vector

type Field struct {
	kind FieldType

	Enabled bool

	// Exclusive short-circuits field summation: a non-zero contribution
	// from this field suppresses every other field for that body this step.
	Exclusive bool

	// Region bounds the area of effect, in field-local coordinates.
	// A nil region is unbounded.
	Region *BB

	Position        Vector
	MinimumRadius   float64
	CategoryBitMask uint32
	Strength        float64
	Falloff         float64
	AnimationSpeed  float64
	Smoothness      float64
	Direction       Vector

	flow   *FlowMap
	custom FieldForceFunc

	// advanced once per step by AnimationSpeed * dt
	elapsedTime float64
}

func newField(kind FieldType) *Field {
	return &Field{
		kind:            kind,
		Enabled:         true,
		Strength:        1,
		CategoryBitMask: AllCategories,
	}
}

func NewDragField() *Field {
	return newField(FieldDrag)
}

func NewElectricField() *Field {
	return newField(FieldElectric)
}

func NewLinearGravityField(direction Vector) *Field {
	f := newField(FieldLinearGravity)
	f.Direction = direction
	return f
}

func NewRadialGravityField() *Field {
	return newField(FieldRadialGravity)
}

func NewMagneticField() *Field {
	return newField(FieldMagnetic)
}

func NewNoiseField(smoothness, animationSpeed float64) *Field {
	f := newField(FieldNoise)
	f.Smoothness = Clamp01(smoothness)
	f.AnimationSpeed = animationSpeed
	return f
}

func NewTurbulenceField(smoothness, animationSpeed float64) *Field {
	f := newField(FieldTurbulence)
	f.Smoothness = Clamp01(smoothness)
	f.AnimationSpeed = animationSpeed
	return f
}

func NewVelocityField(direction Vector) *Field {
	f := newField(FieldVelocity)
	f.Direction = direction
	return f
}

func NewVelocityFieldWithFlowMap(flow *FlowMap) *Field {
	f := newField(FieldVelocityFlow)
	f.flow = flow
	return f
}

func NewVortexField() *Field {
	return newField(FieldVortex)
}

func NewSpringField() *Field {
	return newField(FieldSpring)
}

func NewCustomField(fn FieldForceFunc) *Field {
	f := newField(FieldCustom)
	f.custom = fn
	return f
}

func (f *Field) Kind() FieldType {
	return f.kind
}

func (f *Field) ElapsedTime() float64 {
	return f.elapsedTime
}

func (f *Field) advance(dt float64) {
	f.elapsedTime += f.AnimationSpeed * dt
}

// falloffAt returns the distance decay multiplier. A zero falloff exponent
// means no decay.
func (f *Field) falloffAt(distance float64) float64 {
	if f.Falloff == 0 {
		return 1
	}
	return 1.0 / math.Pow(1.0+math.Max(0, distance-f.MinimumRadius), f.Falloff)
}

func (f *Field) affects(p Vector) bool {
	if !f.Enabled {
		return false
	}
	if f.Region != nil && !f.Region.Offset(f.Position).ContainsVect(p) {
		return false
	}
	return true
}

// CalculateForce evaluates the field at the given sample. It is pure apart
// from reading the field's own parameters and elapsed time.
func (f *Field) CalculateForce(ctx FieldContext) Vector {
	if !f.affects(ctx.Position) {
		return Vector{}
	}

	delta := f.Position.Sub(ctx.Position)
	dist := delta.Length()
	decay := f.falloffAt(dist)

	switch f.kind {
	case FieldDrag:
		return ctx.Velocity.Mult(-f.Strength * decay)
	case FieldElectric:
		return delta.Normalize().Mult(f.Strength * ctx.Charge * decay)
	case FieldLinearGravity:
		return f.Direction.Normalize().Mult(f.Strength * decay)
	case FieldRadialGravity:
		return delta.Normalize().Mult(f.Strength * decay)
	case FieldMagnetic:
		// force perpendicular to motion, scaled by charge
		return ctx.Velocity.Perp().Mult(f.Strength * ctx.Charge * decay)
	case FieldNoise:
		return f.noise(ctx.Position).Mult(f.Strength * decay)
	case FieldTurbulence:
		// turbulence grows with how fast the body is already moving
		return f.noise(ctx.Position).Mult(f.Strength * decay * ctx.Velocity.Length())
	case FieldVelocity:
		target := f.Direction.Mult(f.Strength)
		return target.Sub(ctx.Velocity).Mult(decay)
	case FieldVelocityFlow:
		if f.flow == nil {
			return Vector{}
		}
		target := f.flow.Sample(ctx.Position.Sub(f.Position)).Mult(f.Strength)
		return target.Sub(ctx.Velocity).Mult(decay)
	case FieldVortex:
		return delta.Perp().Normalize().Mult(f.Strength * decay)
	case FieldSpring:
		return delta.Mult(f.Strength * decay)
	case FieldCustom:
		if f.custom == nil {
			return Vector{}
		}
		return f.custom(f, ctx).Mult(decay)
	}
	return Vector{}
}

// noise is a deterministic multi-term trig function of position and the
// animation clock. Not random: the same sample always yields the same
// vector.
func (f *Field) noise(p Vector) Vector {
	freq := 1.0 / (1.0 + 4.0*f.Smoothness)
	t := f.elapsedTime
	x := math.Sin(p.X*0.011*freq+t) * math.Cos(p.Y*0.017*freq-0.7*t)
	x += 0.5 * math.Sin(p.Y*0.029*freq+1.3*t)
	y := math.Cos(p.X*0.013*freq-1.1*t) * math.Sin(p.Y*0.019*freq+0.5*t)
	y += 0.5 * math.Cos(p.X*0.031*freq-1.7*t)
	return Vector{x, y}
}

// FlowMap is a coarse grid of target velocities sampled by velocity-flow
// fields, standing in for the host's flow texture.
type FlowMap struct {
	Width, Height int
	CellSize      float64
	Vectors       []Vector
}

func NewFlowMap(width, height int, cellSize float64) *FlowMap {
	return &FlowMap{
		Width:    width,
		Height:   height,
		CellSize: cellSize,
		Vectors:  make([]Vector, width*height),
	}
}

func (m *FlowMap) Set(x, y int, v Vector) {
	if x < 0 || x >= m.Width || y < 0 || y >= m.Height {
		return
	}
	m.Vectors[y*m.Width+x] = v
}

// Sample returns the flow vector for a field-local position. The grid is
// centered on the field origin and clamped at its edges.
func (m *FlowMap) Sample(local Vector) Vector {
	if m.Width == 0 || m.Height == 0 || m.CellSize <= 0 {
		return Vector{}
	}
	x := int(local.X/m.CellSize) + m.Width/2
	y := int(local.Y/m.CellSize) + m.Height/2
	x = int(Clamp(float64(x), 0, float64(m.Width-1)))
	y = int(Clamp(float64(y), 0, float64(m.Height-1)))
	return m.Vectors[y*m.Width+x]
}
