package kinetic

import "math"

type ShapeType int

const (
	ShapeRectangle ShapeType = iota
	ShapeCircle
	ShapeEdgeLoop
	ShapeEdgeChain
	ShapePolygon
	ShapeCompound
)

func (t ShapeType) String() string {
	switch t {
	case ShapeRectangle:
		return "rectangle"
	case ShapeCircle:
		return "circle"
	case ShapeEdgeLoop:
		return "edge-loop"
	case ShapeEdgeChain:
		return "edge-chain"
	case ShapePolygon:
		return "polygon"
	case ShapeCompound:
		return "compound"
	}
	return "unknown"
}

// Shape is a closed set of geometric variants. The kind tag is fixed at
// construction and every consumer switches over it exhaustively; adding a
// variant requires revisiting each switch.
type Shape struct {
	kind   ShapeType
	size   Vector
	center Vector
	radius float64
	points []Vector
	subs   []*Body
}

func NewRectangleShape(size Vector) *Shape {
	return &Shape{kind: ShapeRectangle, size: size}
}

func NewRectangleShapeWithCenter(size, center Vector) *Shape {
	return &Shape{kind: ShapeRectangle, size: size, center: center}
}

func NewCircleShape(radius float64) *Shape {
	return &Shape{kind: ShapeCircle, radius: radius}
}

func NewCircleShapeWithCenter(radius float64, center Vector) *Shape {
	return &Shape{kind: ShapeCircle, radius: radius, center: center}
}

// NewEdgeLoopShape builds a closed boundary around the given box.
// Edge shapes have zero area and are not meant to move.
func NewEdgeLoopShape(rect BB) *Shape {
	points := []Vector{
		{rect.L, rect.B},
		{rect.R, rect.B},
		{rect.R, rect.T},
		{rect.L, rect.T},
		{rect.L, rect.B},
	}
	return &Shape{kind: ShapeEdgeLoop, points: points}
}

// NewEdgeLoopShapeWithPoints closes the path if the caller left it open.
func NewEdgeLoopShapeWithPoints(points []Vector) *Shape {
	pts := append([]Vector(nil), points...)
	if len(pts) > 1 && !pts[0].Equal(pts[len(pts)-1]) {
		pts = append(pts, pts[0])
	}
	return &Shape{kind: ShapeEdgeLoop, points: pts}
}

func NewEdgeChainShape(points []Vector) *Shape {
	return &Shape{kind: ShapeEdgeChain, points: append([]Vector(nil), points...)}
}

func NewPolygonShape(points []Vector) *Shape {
	return &Shape{kind: ShapePolygon, points: append([]Vector(nil), points...)}
}

// NewCompoundShape unions sub-bodies into one shape. The sub-bodies
// contribute geometry and mass only; they are never simulated themselves.
func NewCompoundShape(bodies ...*Body) *Shape {
	return &Shape{kind: ShapeCompound, subs: bodies}
}

func (s *Shape) Kind() ShapeType {
	return s.kind
}

func (s *Shape) Size() Vector {
	return s.size
}

func (s *Shape) Radius() float64 {
	return s.radius
}

func (s *Shape) Center() Vector {
	return s.center
}

func (s *Shape) Points() []Vector {
	return s.points
}

func (s *Shape) Bodies() []*Body {
	return s.subs
}

// Area is a pure function of the variant. Edge shapes report zero, as do
// degenerate polygons with fewer than 3 points.
func (s *Shape) Area() float64 {
	switch s.kind {
	case ShapeRectangle:
		return math.Abs(s.size.X * s.size.Y)
	case ShapeCircle:
		return math.Pi * s.radius * s.radius
	case ShapeEdgeLoop, ShapeEdgeChain:
		return 0
	case ShapePolygon:
		if len(s.points) < 3 {
			return 0
		}
		// shoelace
		var sum float64
		for i := 0; i < len(s.points); i++ {
			j := (i + 1) % len(s.points)
			sum += s.points[i].Cross(s.points[j])
		}
		return math.Abs(sum) * 0.5
	case ShapeCompound:
		var sum float64
		for _, b := range s.subs {
			sum += b.Area()
		}
		return sum
	}
	return 0
}

// HalfExtents returns half the width and height of the shape's local bounds.
func (s *Shape) HalfExtents() Vector {
	bb := s.BoundingBox(Vector{})
	return Vector{bb.Width() * 0.5, bb.Height() * 0.5}
}

// BoundingBox returns the world-space box of the shape placed at pos.
func (s *Shape) BoundingBox(pos Vector) BB {
	switch s.kind {
	case ShapeRectangle:
		return NewBBForExtents(pos.Add(s.center), math.Abs(s.size.X)*0.5, math.Abs(s.size.Y)*0.5)
	case ShapeCircle:
		return NewBBForCircle(pos.Add(s.center), s.radius)
	case ShapeEdgeLoop, ShapeEdgeChain, ShapePolygon:
		if len(s.points) == 0 {
			return BB{pos.X, pos.Y, pos.X, pos.Y}
		}
		return NewBBForPoints(s.points).Offset(pos)
	case ShapeCompound:
		if len(s.subs) == 0 {
			return BB{pos.X, pos.Y, pos.X, pos.Y}
		}
		bb := s.subs[0].shape.BoundingBox(pos.Add(s.subs[0].center))
		for _, sub := range s.subs[1:] {
			bb = bb.Merge(sub.shape.BoundingBox(pos.Add(sub.center)))
		}
		return bb
	}
	return BB{}
}
