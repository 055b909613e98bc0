package kinetic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeAreas(t *testing.T) {
	assert.Equal(t, 200.0, NewRectangleShape(Vector{10, 20}).Area())
	assert.InDelta(t, math.Pi*25, NewCircleShape(5).Area(), 1e-9)

	// edge shapes have zero area and are not meant to move
	assert.Equal(t, 0.0, NewEdgeLoopShape(BB{0, 0, 10, 10}).Area())
	assert.Equal(t, 0.0, NewEdgeChainShape([]Vector{{0, 0}, {10, 0}}).Area())

	square := NewPolygonShape([]Vector{{0, 0}, {10, 0}, {10, 10}, {0, 10}})
	assert.Equal(t, 100.0, square.Area())
}

func TestDegeneratePolygon(t *testing.T) {
	line := NewPolygonShape([]Vector{{0, 0}, {10, 0}})
	assert.Equal(t, 0.0, line.Area())

	empty := NewPolygonShape(nil)
	assert.Equal(t, 0.0, empty.Area())
	assert.Equal(t, BB{1, 2, 1, 2}, empty.BoundingBox(Vector{1, 2}))
}

func TestEdgeLoopCloses(t *testing.T) {
	open := []Vector{{0, 0}, {10, 0}, {10, 10}}
	loop := NewEdgeLoopShapeWithPoints(open)
	pts := loop.Points()
	assert.Equal(t, pts[0], pts[len(pts)-1])
	assert.Len(t, pts, 4)
}

func TestShapeBoundingBox(t *testing.T) {
	rect := NewRectangleShape(Vector{10, 20})
	assert.Equal(t, BB{-5, -10, 5, 10}, rect.BoundingBox(Vector{}))
	assert.Equal(t, BB{95, 90, 105, 110}, rect.BoundingBox(Vector{100, 100}))

	offset := NewCircleShapeWithCenter(5, Vector{10, 0})
	assert.Equal(t, BB{5, -5, 15, 5}, offset.BoundingBox(Vector{}))
}

func TestCompoundShape(t *testing.T) {
	left := NewBodyWithCenter(NewCircleShape(5), Vector{-10, 0})
	right := NewBodyWithCenter(NewCircleShape(5), Vector{10, 0})
	left.SetMass(2)
	right.SetMass(3)

	compound := NewCompoundShape(left, right)
	body := NewBody(compound)

	// compound mass is the sum of sub-body masses
	assert.InDelta(t, 5.0, body.Mass(), 1e-9)

	bb := compound.BoundingBox(Vector{})
	assert.Equal(t, BB{-15, -5, 15, 5}, bb)
}

func TestHalfExtents(t *testing.T) {
	he := NewRectangleShape(Vector{10, 20}).HalfExtents()
	assert.Equal(t, Vector{5, 10}, he)

	he = NewCircleShape(7).HalfExtents()
	assert.Equal(t, Vector{7, 7}, he)
}
