package scene

import (
	"github.com/google/uuid"

	"github.com/spaghettifunk/anima2d/engine/math"
	"github.com/spaghettifunk/anima2d/engine/renderer"
	"github.com/spaghettifunk/anima2d/engine/renderer/components"
	"github.com/spaghettifunk/anima2d/engine/renderer/device"
	"github.com/spaghettifunk/anima2d/engine/renderer/metadata"
)

// CircleBaseRadius is the radius in pixels of a circle with unit scale.
const CircleBaseRadius float32 = 32.0

type Tag struct {
	Name string
	UUID uuid.UUID
}

// Transform places an entity in the world. Rotation is in degrees.
type Transform struct {
	Position math.Vec2
	Scale    math.Vec2
	Rotation float32

	previous struct {
		position math.Vec2
		scale    math.Vec2
		rotation float32
	}
}

func NewTransform() Transform {
	t := Transform{Scale: math.NewVec2One()}
	t.snapshot()
	return t
}

func (t *Transform) snapshot() {
	t.previous.position = t.Position
	t.previous.scale = t.Scale
	t.previous.rotation = t.Rotation
}

// Teleport moves the entity without interpolating from the old position.
func (t *Transform) Teleport(position math.Vec2) {
	t.Position = position
	t.previous.position = position
}

// Interpolated blends the state before the last fixed step with the current
// one. alpha 0 yields the previous state and 1 the current one; rotation
// takes the shorter way around and matches the current angle modulo 360.
func (t *Transform) Interpolated(alpha float32) (position, scale math.Vec2, rotation float32) {
	position = t.previous.position.Lerp(t.Position, alpha)
	scale = t.previous.scale.Lerp(t.Scale, alpha)
	rotation = math.LerpAngle(t.previous.rotation, t.Rotation, alpha)
	return
}

// SpriteRenderer draws a textured quad sized by the texture resolution times
// the entity scale. A nil texture draws a scale sized rectangle.
type SpriteRenderer struct {
	Texture device.Texture
	Color   metadata.Color
	UV      [4]math.Vec2
	FlipX   bool
	FlipY   bool
}

func NewSpriteRenderer(texture device.Texture) SpriteRenderer {
	return SpriteRenderer{
		Texture: texture,
		Color:   metadata.WHITE,
		UV:      renderer.DefaultUV,
	}
}

type CircleRenderer struct {
	Color      metadata.Color
	Thickness  float32
	Smoothness float32
}

func NewCircleRenderer() CircleRenderer {
	return CircleRenderer{
		Color:      metadata.WHITE,
		Thickness:  renderer.DefaultCircleThickness,
		Smoothness: renderer.DefaultCircleSmoothness,
	}
}

// Camera attaches a camera to an entity. The entity transform drives the
// camera position and rotation. Primary marks the camera the scene renders
// with; FixedAspect cameras ignore resizes.
type Camera struct {
	Camera      *components.Camera
	Primary     bool
	FixedAspect bool
}

// Behaviour runs game logic for one entity. Either callback may be nil.
type Behaviour struct {
	OnUpdate      func(s *Scene, e Entity, delta float64)
	OnFixedUpdate func(s *Scene, e Entity, fixedDelta float64)
}
