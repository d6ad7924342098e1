package components

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/spaghettifunk/anima2d/engine/math"
)

func near(t *testing.T, want, got math.Vec2) {
	t.Helper()
	assert.True(t, want.Compare(got, 1e-4), "want %v, got %v", want, got)
}

func TestCameraCentresPosition(t *testing.T) {
	c := NewScreenCamera(800, 600)
	c.SetPosition(math.Vec2{X: 100, Y: 50})

	// the camera position lands in the middle of the screen
	near(t, math.Vec2{X: 400, Y: 300}, c.View().Apply(math.Vec2{X: 100, Y: 50}))
	near(t, math.Vec2{}, c.ViewProjection().Apply(math.Vec2{X: 100, Y: 50}))
}

func TestCameraZoomAndRotation(t *testing.T) {
	c := NewScreenCamera(800, 600)
	c.Set(math.Vec2{}, 0, 2, math.Vec2{})
	near(t, math.Vec2{X: 420, Y: 300}, c.View().Apply(math.Vec2{X: 10}))

	c.SetZoom(1)
	c.SetRotation(90)
	// rotating the camera turns the world the other way
	near(t, math.Vec2{X: 400, Y: 290}, c.View().Apply(math.Vec2{X: 10}))
}

func TestCameraOffsetAndInverse(t *testing.T) {
	c := NewScreenCamera(800, 600)
	c.SetOffset(math.Vec2{X: -100, Y: 0})
	c.SetPosition(math.Vec2{X: 7, Y: 9})
	near(t, math.Vec2{X: 300, Y: 300}, c.View().Apply(math.Vec2{X: 7, Y: 9}))

	p := math.Vec2{X: 12, Y: -4}
	near(t, p, c.ScreenToWorld(c.View().Apply(p)))
}

func TestCameraProjectionChange(t *testing.T) {
	c := NewScreenCamera(800, 600)
	_ = c.ViewProjection()
	c.SetProjection(0, 400, 300, 0)
	near(t, math.Vec2{}, c.ViewProjection().Apply(math.Vec2{}))
	near(t, math.Vec2{X: 200, Y: 150}, c.View().Apply(math.Vec2{}))
}
