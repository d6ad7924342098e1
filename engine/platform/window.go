package platform

import (
	"github.com/spaghettifunk/anima2d/engine/core"
)

type WindowMode int

const (
	WindowModeWindowed WindowMode = iota
	WindowModeFullscreen
	WindowModeBorderlessFullscreen
)

type VSyncMode int

const (
	VSyncOff VSyncMode = iota
	VSyncOn
	VSyncAdaptive
)

type Size struct {
	Width, Height uint32
}

type Position struct {
	X, Y int32
}

// WindowSettings describes the window to create.
type WindowSettings struct {
	Title      string     `toml:"title" yaml:"title"`
	Width      uint32     `toml:"width" yaml:"width"`
	Height     uint32     `toml:"height" yaml:"height"`
	X          int32      `toml:"x" yaml:"x"`
	Y          int32      `toml:"y" yaml:"y"`
	Mode       WindowMode `toml:"mode" yaml:"mode"`
	VSync      VSyncMode  `toml:"vsync" yaml:"vsync"`
	Resizable  bool       `toml:"resizable" yaml:"resizable"`
	Borderless bool       `toml:"borderless" yaml:"borderless"`
	Focused    bool       `toml:"focused" yaml:"focused"`
	Hidden     bool       `toml:"hidden" yaml:"hidden"`
	// GraphicsContext requests an OpenGL context. Leave it off when the
	// render device manages its own surface.
	GraphicsContext bool `toml:"graphics_context" yaml:"graphics_context"`
}

func DefaultWindowSettings() WindowSettings {
	return WindowSettings{
		Title:     "anima2d",
		Width:     1280,
		Height:    720,
		X:         100,
		Y:         100,
		VSync:     VSyncOn,
		Resizable: true,
		Focused:   true,
	}
}

// WindowEvents are the signals every window emits from PollEvents.
type WindowEvents struct {
	Close       core.Signal[struct{}]
	Focus       core.Signal[bool]
	Framebuffer core.Signal[Size]
	Resize      core.Signal[Size]
	Move        core.Signal[Position]
	Key         core.Signal[core.KeyEvent]
	MouseButton core.Signal[core.MouseEvent]
	Cursor      core.Signal[core.MouseEvent]
	Scroll      core.Signal[core.MouseEvent]
}

// Window is the surface the engine presents to.
type Window interface {
	Title() string
	SetTitle(title string)
	Size() Size
	FramebufferSize() Size
	Focused() bool
	ShouldClose() bool
	RequestClose()
	// PollEvents processes pending OS events and emits them on Events.
	PollEvents()
	SwapBuffers()
	Events() *WindowEvents
	Destroy()
}
