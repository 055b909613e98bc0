package kinetic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func boxBody(pos Vector, w, h float64) *Body {
	body := NewBody(NewRectangleShape(Vector{w, h}))
	body.SetMass(1)
	body.LinearDamping = 0
	body.AffectedByGravity = false
	body.SetNode(NewBasicNode(pos))
	return body
}

func TestMaskPredicates(t *testing.T) {
	a := NewBody(NewCircleShape(1))
	b := NewBody(NewCircleShape(1))

	// two static bodies are never tested
	a.Dynamic = false
	b.Dynamic = false
	assert.False(t, shouldTest(a, b))

	a.Dynamic = true
	assert.True(t, shouldTest(a, b))
	assert.True(t, shouldCollide(a, b))
	assert.False(t, shouldNotify(a, b))

	a.CollisionBitMask = 0
	b.CollisionBitMask = 0
	assert.False(t, shouldTest(a, b))

	// contact-test alone keeps the pair eligible
	a.ContactTestBitMask = AllCategories
	assert.True(t, shouldTest(a, b))
	assert.True(t, shouldNotify(a, b))
	assert.False(t, shouldCollide(a, b))
}

func TestCollideAxisSelection(t *testing.T) {
	a := boxBody(Vector{0, 0}, 10, 10)
	b := boxBody(Vector{8, 1}, 10, 10)

	con := collide(a, b)
	require.NotNil(t, con)

	// x overlap (2) is smaller than y overlap (9): separate along x
	assert.Equal(t, Vector{1, 0}, con.ContactNormal)
	assert.InDelta(t, 2, con.Penetration, 1e-9)
	assert.InDelta(t, 4, con.ContactPoint.X, 1e-9)
	assert.InDelta(t, 0.5, con.ContactPoint.Y, 1e-9)
}

func TestCollideNormalFlips(t *testing.T) {
	a := boxBody(Vector{8, 0}, 10, 10)
	b := boxBody(Vector{0, 0}, 10, 10)

	con := collide(a, b)
	require.NotNil(t, con)
	assert.Equal(t, Vector{-1, 0}, con.ContactNormal)
}

func TestCollideMiss(t *testing.T) {
	a := boxBody(Vector{0, 0}, 10, 10)
	b := boxBody(Vector{100, 0}, 10, 10)
	assert.Nil(t, collide(a, b))
}

func TestResolveSkipsSeparatingPair(t *testing.T) {
	a := boxBody(Vector{0, 0}, 10, 10)
	b := boxBody(Vector{8, 0}, 10, 10)
	a.Velocity = Vector{-5, 0}
	b.Velocity = Vector{5, 0}

	con := collide(a, b)
	require.NotNil(t, con)

	impulse := resolve(con)
	assert.Equal(t, 0.0, impulse)
	assert.Equal(t, Vector{-5, 0}, a.Velocity)
	assert.Equal(t, Vector{5, 0}, b.Velocity)
}

func TestResolveBetweenImmovablePairIsNoOp(t *testing.T) {
	a := boxBody(Vector{0, 0}, 10, 10)
	b := boxBody(Vector{8, 0}, 10, 10)
	a.Dynamic = false
	b.Pinned = true

	con := collide(a, b)
	require.NotNil(t, con)
	assert.Equal(t, 0.0, resolve(con))
	assert.Equal(t, Vector{0, 0}, a.Node().Position())
	assert.Equal(t, Vector{8, 0}, b.Node().Position())
}

func TestPositionalCorrectionSplits(t *testing.T) {
	a := boxBody(Vector{0, 0}, 10, 10)
	b := boxBody(Vector{8, 0}, 10, 10)
	a.Velocity = Vector{1, 0}
	b.Velocity = Vector{-1, 0}

	con := collide(a, b)
	require.NotNil(t, con)
	resolve(con)

	// penetration of 2 is split half and half
	assert.InDelta(t, -1, a.Node().Position().X, 1e-9)
	assert.InDelta(t, 9, b.Node().Position().X, 1e-9)
}

func TestPositionalCorrectionSingleMovable(t *testing.T) {
	wall := boxBody(Vector{0, 0}, 10, 10)
	wall.Dynamic = false
	mover := boxBody(Vector{8, 0}, 10, 10)
	mover.Velocity = Vector{-1, 0}

	con := collide(wall, mover)
	require.NotNil(t, con)
	resolve(con)

	assert.Equal(t, Vector{0, 0}, wall.Node().Position())
	assert.InDelta(t, 10, mover.Node().Position().X, 1e-9)
}

func TestFrictionKillsTangentialMotion(t *testing.T) {
	floor := boxBody(Vector{0, 0}, 100, 10)
	floor.Dynamic = false
	floor.Friction = 1

	slider := boxBody(Vector{0, 9}, 10, 10)
	slider.Friction = 1
	slider.Velocity = Vector{10, -1}

	con := collide(floor, slider)
	require.NotNil(t, con)
	resolve(con)

	assert.Less(t, slider.Velocity.X, 10.0)
}
