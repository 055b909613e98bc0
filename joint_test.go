package kinetic

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func staticAnchorBody(pos Vector) *Body {
	body := NewBody(NewRectangleShape(Vector{2, 2}))
	body.Dynamic = false
	body.SetNode(NewBasicNode(pos))
	return body
}

func dynamicBody(pos Vector) *Body {
	body := NewBody(NewCircleShape(1))
	body.SetMass(1)
	body.LinearDamping = 0
	body.AngularDamping = 0
	body.AffectedByGravity = false
	body.SetNode(NewBasicNode(pos))
	return body
}

func TestJointRegistration(t *testing.T) {
	world := NewWorld()
	a := staticAnchorBody(Vector{})
	b := dynamicBody(Vector{5, 0})
	world.AddBody(a)
	world.AddBody(b)

	joint := NewPinJoint(a, b, Vector{})
	world.AddJoint(joint)

	assert.Contains(t, a.Joints(), joint)
	assert.Contains(t, b.Joints(), joint)
	assert.Len(t, world.Joints(), 1)

	// re-adding is a no-op
	world.AddJoint(joint)
	assert.Len(t, world.Joints(), 1)

	world.RemoveJoint(joint)
	assert.Empty(t, a.Joints())
	assert.Empty(t, b.Joints())
	assert.Empty(t, world.Joints())
}

func TestLimitJointClampsDistance(t *testing.T) {
	world := NewWorld()
	world.Gravity = Vector{}
	a := staticAnchorBody(Vector{})
	b := dynamicBody(Vector{5, 0})
	world.AddBody(a)
	world.AddBody(b)

	joint := NewLimitJoint(a, b, Vector{}, Vector{5, 0}, 3)
	world.AddJoint(joint)

	world.Simulate(1.0 / 60)

	dist := b.Node().Position().Distance(a.Node().Position())
	assert.InDelta(t, 3, dist, 1e-6)
	assert.NotEqual(t, Vector{}, joint.ReactionForce())
}

func TestLimitJointSlackInsideLength(t *testing.T) {
	world := NewWorld()
	world.Gravity = Vector{}
	a := staticAnchorBody(Vector{})
	b := dynamicBody(Vector{2, 0})
	world.AddBody(a)
	world.AddBody(b)

	world.AddJoint(NewLimitJoint(a, b, Vector{}, Vector{2, 0}, 3))
	world.Simulate(1.0 / 60)

	assert.Equal(t, Vector{2, 0}, b.Node().Position())
}

func TestFixedJointLocksOffset(t *testing.T) {
	world := NewWorld()
	world.Gravity = Vector{}
	a := staticAnchorBody(Vector{})
	b := dynamicBody(Vector{4, 0})
	world.AddBody(a)
	world.AddBody(b)

	world.AddJoint(NewFixedJoint(a, b, Vector{2, 0}))

	b.Velocity = Vector{0, 10}
	for i := 0; i < 10; i++ {
		world.Simulate(1.0 / 60)
	}

	pos := b.Node().Position()
	assert.InDelta(t, 4, pos.X, 1e-6)
	assert.InDelta(t, 0, pos.Y, 1e-6)
	assert.InDelta(t, 0, b.Velocity.Length(), 1e-6)
}

func TestSlidingJointProjectsOntoAxis(t *testing.T) {
	world := NewWorld()
	world.Gravity = Vector{}
	a := staticAnchorBody(Vector{})
	b := dynamicBody(Vector{3, 4})
	world.AddBody(a)
	world.AddBody(b)

	world.AddJoint(NewSlidingJoint(a, b, Vector{}, Vector{1, 0}))
	world.Simulate(1.0 / 60)

	pos := b.Node().Position()
	assert.InDelta(t, 3, pos.X, 1e-6)
	assert.InDelta(t, 0, pos.Y, 1e-6)
}

func TestSlidingJointLimits(t *testing.T) {
	world := NewWorld()
	world.Gravity = Vector{}
	a := staticAnchorBody(Vector{})
	b := dynamicBody(Vector{10, 0})
	world.AddBody(a)
	world.AddBody(b)

	joint := NewSlidingJoint(a, b, Vector{}, Vector{1, 0})
	joint.ShouldEnableLimits = true
	joint.LowerDistanceLimit = 1
	joint.UpperDistanceLimit = 6
	world.AddJoint(joint)

	world.Simulate(1.0 / 60)
	assert.InDelta(t, 6, b.Node().Position().X, 1e-6)
}

func TestSpringJointConverges(t *testing.T) {
	world := NewWorld()
	world.Gravity = Vector{}
	a := staticAnchorBody(Vector{})
	b := dynamicBody(Vector{10, 0})
	world.AddBody(a)
	world.AddBody(b)

	// rest length 10, then stretch to 15
	joint := NewSpringJoint(a, b, Vector{}, Vector{10, 0})
	joint.Damping = 5
	world.AddJoint(joint)

	b.Node().SetPosition(Vector{15, 0})
	for i := 0; i < 600; i++ {
		world.Simulate(1.0 / 60)
	}

	dist := b.Node().Position().Distance(a.Node().Position())
	assert.InDelta(t, 10, dist, 0.5)
}

func TestPinJointKeepsRadius(t *testing.T) {
	world := NewWorld()
	world.Gravity = Vector{}
	a := staticAnchorBody(Vector{-5, 0})
	b := dynamicBody(Vector{5, 0})
	world.AddBody(a)
	world.AddBody(b)

	// the orbit sweeps past the anchor body; keep the pair from colliding
	a.CollisionBitMask = 0
	b.CollisionBitMask = 0

	anchor := Vector{}
	world.AddJoint(NewPinJoint(a, b, anchor))

	// push the body around; it must stay on its circle about the anchor
	b.Velocity = Vector{0, 20}
	for i := 0; i < 60; i++ {
		world.Simulate(1.0 / 60)
	}

	assert.InDelta(t, 5, b.Node().Position().Distance(anchor), 1e-6)
	assert.False(t, math.IsNaN(b.Node().Position().X))
}

func TestJointWithDetachedNodeIsInert(t *testing.T) {
	world := NewWorld()
	world.Gravity = Vector{}
	a := staticAnchorBody(Vector{})
	b := NewBody(NewCircleShape(1)) // never attached to a node
	world.AddBody(a)
	world.AddBody(b)

	joint := NewLimitJoint(a, b, Vector{}, Vector{}, 1)
	world.AddJoint(joint)
	world.Simulate(1.0 / 60)

	assert.Equal(t, Vector{}, joint.ReactionForce())
}
