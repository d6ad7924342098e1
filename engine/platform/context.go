package platform

import (
	"fmt"
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/anima2d/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Context owns the GLFW library. GLFW is initialised once when the Context is
// created and terminated once the Context is closed and every window it
// created is destroyed.
type Context struct {
	windows int
	closing bool
	done    bool
}

func NewContext() (*Context, error) {
	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("initializing glfw: %w", err)
	}
	core.LogDebug("glfw initialized")
	return &Context{}, nil
}

// CreateWindow opens a window with settings. It must be called from the main
// goroutine.
func (c *Context) CreateWindow(settings WindowSettings) (*GLFWWindow, error) {
	if c.closing {
		return nil, fmt.Errorf("%w: context is closed", core.ErrWindowCreation)
	}
	w, err := newGLFWWindow(c, settings)
	if err != nil {
		return nil, err
	}
	c.windows++
	return w, nil
}

// Windows is the number of live windows created by the context.
func (c *Context) Windows() int {
	return c.windows
}

// Close terminates GLFW, or defers that until the last window is destroyed.
func (c *Context) Close() {
	c.closing = true
	c.terminate()
}

func (c *Context) windowDestroyed() {
	c.windows--
	if c.closing {
		c.terminate()
	}
}

func (c *Context) terminate() {
	if c.done || c.windows > 0 {
		return
	}
	glfw.Terminate()
	c.done = true
	core.LogDebug("glfw terminated")
}
