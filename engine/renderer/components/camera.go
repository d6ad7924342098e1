package components

import (
	"github.com/spaghettifunk/anima2d/engine/math"
)

/**
 * @brief A 2D camera. The projection maps a box in pixels to clip space and
 * the view places Position at the centre of that box, zoomed and rotated.
 * Matrices are rebuilt lazily the next time one is requested after a change.
 */
type Camera struct {
	position math.Vec2
	/** @brief Rotation in degrees, counter-clockwise. */
	angle  float32
	zoom   float32
	offset math.Vec2

	centerOffset   math.Vec2
	projection     math.Transform
	view           math.Transform
	viewProjection math.Transform
	isDirty        bool
}

/** @brief The name of the default camera. */
const DEFAULT_CAMERA_NAME string = "default"

func NewCamera(left, right, bottom, top float32) *Camera {
	c := &Camera{zoom: 1}
	c.SetProjection(left, right, bottom, top)
	return c
}

// NewScreenCamera covers a width x height surface with the origin in the top
// left corner and y growing downwards.
func NewScreenCamera(width, height float32) *Camera {
	return NewCamera(0, width, height, 0)
}

func (c *Camera) SetProjection(left, right, bottom, top float32) {
	c.projection = math.Ortho(left, right, bottom, top)
	c.centerOffset = math.Vec2{X: (right - left) * 0.5, Y: (bottom - top) * 0.5}
	c.isDirty = true
}

// Set replaces every view parameter at once.
func (c *Camera) Set(position math.Vec2, angle, zoom float32, offset math.Vec2) {
	c.position = position
	c.angle = angle
	c.zoom = zoom
	c.offset = offset
	c.isDirty = true
}

func (c *Camera) Position() math.Vec2 {
	return c.position
}

func (c *Camera) SetPosition(position math.Vec2) {
	c.position = position
	c.isDirty = true
}

func (c *Camera) Rotation() float32 {
	return c.angle
}

func (c *Camera) SetRotation(degrees float32) {
	c.angle = degrees
	c.isDirty = true
}

func (c *Camera) Zoom() float32 {
	return c.zoom
}

func (c *Camera) SetZoom(zoom float32) {
	c.zoom = zoom
	c.isDirty = true
}

func (c *Camera) Offset() math.Vec2 {
	return c.offset
}

// SetOffset shifts the view in screen space, after zoom and rotation.
func (c *Camera) SetOffset(offset math.Vec2) {
	c.offset = offset
	c.isDirty = true
}

func (c *Camera) Projection() math.Transform {
	return c.projection
}

func (c *Camera) View() math.Transform {
	c.calculate()
	return c.view
}

func (c *Camera) ViewProjection() math.Transform {
	c.calculate()
	return c.viewProjection
}

// ScreenToWorld maps a point in projection space (pixels) back to the world.
func (c *Camera) ScreenToWorld(p math.Vec2) math.Vec2 {
	return c.View().Invert().Apply(p)
}

func (c *Camera) calculate() {
	if !c.isDirty {
		return
	}
	c.view = math.Identity().
		TranslateV(c.centerOffset.Add(c.offset)).
		Scale(c.zoom, c.zoom).
		Rotate(-c.angle).
		TranslateV(c.position.Negate())
	c.viewProjection = c.projection.Mul(c.view)
	c.isDirty = false
}
