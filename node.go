package kinetic

// Node is the attachment point a host scene graph provides for a body. The
// world reads and writes position and rotation through it every step but
// never owns the storage behind it.
type Node interface {
	Position() Vector
	SetPosition(Vector)
	Rotation() float64
	SetRotation(float64)
	WorldPosition() Vector
}

// FieldSource yields every live field the host wants evaluated this step.
// Enumeration order only matters for ties between exclusive fields.
type FieldSource interface {
	EachField(fn func(*Field))
}

// FieldList is the trivial FieldSource for hosts without a scene graph.
type FieldList []*Field

func (l FieldList) EachField(fn func(*Field)) {
	for _, f := range l {
		fn(f)
	}
}

// BasicNode is a free-standing Node whose world position is its position.
// Useful for tests and hosts that do not nest transforms.
type BasicNode struct {
	Pos   Vector
	Angle float64
}

func NewBasicNode(pos Vector) *BasicNode {
	return &BasicNode{Pos: pos}
}

func (n *BasicNode) Position() Vector {
	return n.Pos
}

func (n *BasicNode) SetPosition(p Vector) {
	n.Pos = p
}

func (n *BasicNode) Rotation() float64 {
	return n.Angle
}

func (n *BasicNode) SetRotation(a float64) {
	n.Angle = a
}

func (n *BasicNode) WorldPosition() Vector {
	return n.Pos
}
