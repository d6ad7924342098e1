package engine

import (
	"github.com/spaghettifunk/anima2d/engine/renderer"
)

// Game is implemented by the application hosted by the Engine.
type Game interface {
	// Initialize runs once after every subsystem is up.
	Initialize(e *Engine) error
	// Update runs once per frame with the smoothed delta in seconds.
	Update(delta float64) error
	// Render runs once per frame after Update. alpha in [0, 1] is how far
	// the simulation is between the last fixed step and the next one.
	Render(r *renderer.Renderer, alpha float64) error
}

// FixedUpdater is implemented by games with a fixed rate simulation step.
type FixedUpdater interface {
	FixedUpdate(fixedDelta float64)
}

// Resizer is notified when the framebuffer changes size.
type Resizer interface {
	OnResize(width, height uint32)
}

// Focuser is notified when the window gains or loses focus.
type Focuser interface {
	OnFocus(focused bool)
}

// Exiter runs when the engine shuts down.
type Exiter interface {
	OnExit() error
}
