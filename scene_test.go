package kinetic

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleScene = `
gravity: [0, -500]
speed: 1.5
bodies:
  - name: ball
    shape: {type: circle, radius: 10}
    position: [0, 100]
    mass: 2
    restitution: 0.5
    charge: 1
    precise: true
    contactTest: 1
  - name: floor
    shape: {type: edge-loop, rect: [-100, -10, 100, 0]}
    dynamic: false
    category: 1
  - name: crate
    shape: {type: rectangle, size: [20, 10]}
    position: [40, 5]
    density: 3
fields:
  - name: wind
    type: linear-gravity
    direction: [1, 0]
    strength: 30
    exclusive: true
joints:
  - type: limit
    bodyA: floor
    bodyB: ball
    anchorA: [0, 0]
    anchorB: [0, 100]
    maxLength: 150
`

func TestLoadScene(t *testing.T) {
	scene, err := LoadScene(strings.NewReader(sampleScene))
	require.NoError(t, err)

	assert.Equal(t, Vector{0, -500}, scene.World.Gravity)
	assert.Equal(t, 1.5, scene.World.Speed)
	assert.Len(t, scene.World.Bodies(), 3)

	ball := scene.Bodies["ball"]
	require.NotNil(t, ball)
	assert.Equal(t, Vector{0, 100}, scene.Nodes["ball"].Position())
	assert.InDelta(t, 2, ball.Mass(), 1e-9)
	assert.Equal(t, 0.5, ball.Restitution)
	assert.Equal(t, 1.0, ball.Charge)
	assert.True(t, ball.UsesPreciseCollisionDetection)
	assert.Equal(t, uint32(1), ball.ContactTestBitMask)

	floor := scene.Bodies["floor"]
	require.NotNil(t, floor)
	assert.False(t, floor.Dynamic)
	assert.Equal(t, uint32(1), floor.CategoryBitMask)

	// density on a 20x10 box
	crate := scene.Bodies["crate"]
	require.NotNil(t, crate)
	assert.InDelta(t, 600, crate.Mass(), 1e-9)

	wind := scene.Fields["wind"]
	require.NotNil(t, wind)
	assert.Equal(t, FieldLinearGravity, wind.Kind())
	assert.Equal(t, 30.0, wind.Strength)
	assert.True(t, wind.Exclusive)

	require.Len(t, scene.Joints, 1)
	assert.Equal(t, JointLimit, scene.Joints[0].Kind())
	assert.Len(t, scene.World.Joints(), 1)
}

func TestLoadSceneBuiltWorldSteps(t *testing.T) {
	scene, err := LoadScene(strings.NewReader(sampleScene))
	require.NoError(t, err)

	before := scene.Nodes["ball"].Position().Y
	scene.World.Simulate(1.0 / 60)
	assert.Less(t, scene.Nodes["ball"].Position().Y, before)
}

func TestLoadSceneUnnamedBodiesGetNames(t *testing.T) {
	scene, err := LoadScene(strings.NewReader(`
bodies:
  - shape: {type: circle, radius: 1}
    position: [0, 0]
`))
	require.NoError(t, err)
	assert.Len(t, scene.Bodies, 1)
	for name := range scene.Bodies {
		assert.NotEmpty(t, name)
	}
}

func TestLoadSceneErrors(t *testing.T) {
	cases := map[string]string{
		"malformed yaml": `bodies: [`,
		"unknown shape": `
bodies:
  - shape: {type: blob}
    position: [0, 0]`,
		"circle without radius": `
bodies:
  - shape: {type: circle}
    position: [0, 0]`,
		"rectangle without size": `
bodies:
  - shape: {type: rectangle}
    position: [0, 0]`,
		"duplicate body name": `
bodies:
  - name: twin
    shape: {type: circle, radius: 1}
    position: [0, 0]
  - name: twin
    shape: {type: circle, radius: 1}
    position: [5, 0]`,
		"unknown field type": `
fields:
  - type: antigravity`,
		"unknown joint body": `
bodies:
  - name: a
    shape: {type: circle, radius: 1}
    position: [0, 0]
joints:
  - type: pin
    bodyA: a
    bodyB: missing`,
		"unknown joint type": `
bodies:
  - name: a
    shape: {type: circle, radius: 1}
    position: [0, 0]
  - name: b
    shape: {type: circle, radius: 1}
    position: [5, 0]
joints:
  - type: weld
    bodyA: a
    bodyB: b`,
		"limit without maxLength": `
bodies:
  - name: a
    shape: {type: circle, radius: 1}
    position: [0, 0]
  - name: b
    shape: {type: circle, radius: 1}
    position: [5, 0]
joints:
  - type: limit
    bodyA: a
    bodyB: b`,
	}

	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadScene(strings.NewReader(doc))
			assert.Error(t, err)
		})
	}
}
