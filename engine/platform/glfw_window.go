package platform

import (
	"fmt"

	"github.com/go-gl/glfw/v3.3/glfw"

	"github.com/spaghettifunk/anima2d/engine/core"
)

// GLFWWindow is a desktop window backed by GLFW.
type GLFWWindow struct {
	ctx      *Context
	handle   *glfw.Window
	settings WindowSettings
	focused  bool
	events   WindowEvents
}

var _ Window = (*GLFWWindow)(nil)

func boolHint(v bool) int {
	if v {
		return glfw.True
	}
	return glfw.False
}

func newGLFWWindow(ctx *Context, settings WindowSettings) (*GLFWWindow, error) {
	glfw.DefaultWindowHints()
	if settings.GraphicsContext {
		glfw.WindowHint(glfw.ClientAPI, glfw.OpenGLAPI)
		glfw.WindowHint(glfw.ContextVersionMajor, 4)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	} else {
		glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)
	}
	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, boolHint(settings.Resizable))
	glfw.WindowHint(glfw.Decorated, boolHint(!settings.Borderless))
	glfw.WindowHint(glfw.Focused, boolHint(settings.Focused))

	handle, err := glfw.CreateWindow(int(settings.Width), int(settings.Height), settings.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", core.ErrWindowCreation, err)
	}

	w := &GLFWWindow{
		ctx:      ctx,
		handle:   handle,
		settings: settings,
		focused:  settings.Focused,
	}
	if settings.GraphicsContext {
		handle.MakeContextCurrent()
	}
	w.installCallbacks()

	handle.SetPos(int(settings.X), int(settings.Y))
	w.applyMode(settings.Mode)
	w.applyVSync(settings.VSync)
	if !settings.Hidden {
		handle.Show()
	}

	core.LogInfo("window %q created (%dx%d)", settings.Title, settings.Width, settings.Height)
	return w, nil
}

func (w *GLFWWindow) installCallbacks() {
	w.handle.SetCloseCallback(func(_ *glfw.Window) {
		w.events.Close.Emit(struct{}{})
	})
	w.handle.SetFramebufferSizeCallback(func(_ *glfw.Window, width, height int) {
		w.events.Framebuffer.Emit(Size{Width: uint32(width), Height: uint32(height)})
	})
	w.handle.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		w.settings.Width = uint32(width)
		w.settings.Height = uint32(height)
		w.events.Resize.Emit(Size{Width: uint32(width), Height: uint32(height)})
	})
	w.handle.SetFocusCallback(func(_ *glfw.Window, focused bool) {
		w.focused = focused
		w.events.Focus.Emit(focused)
	})
	w.handle.SetPosCallback(func(_ *glfw.Window, x, y int) {
		w.settings.X = int32(x)
		w.settings.Y = int32(y)
		w.events.Move.Emit(Position{X: int32(x), Y: int32(y)})
	})
	w.handle.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		w.events.Key.Emit(core.KeyEvent{
			Key:     translateKey(key),
			Pressed: action != glfw.Release,
			Repeat:  action == glfw.Repeat,
		})
	})
	w.handle.SetMouseButtonCallback(func(_ *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		b, ok := translateButton(button)
		if !ok {
			return
		}
		w.events.MouseButton.Emit(core.MouseEvent{Button: b, Pressed: action == glfw.Press})
	})
	w.handle.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		w.events.Cursor.Emit(core.MouseEvent{X: x, Y: y})
	})
	w.handle.SetScrollCallback(func(_ *glfw.Window, dx, dy float64) {
		w.events.Scroll.Emit(core.MouseEvent{ScrollX: dx, ScrollY: dy})
	})
}

func (w *GLFWWindow) applyMode(mode WindowMode) {
	switch mode {
	case WindowModeFullscreen, WindowModeBorderlessFullscreen:
		monitor := glfw.GetPrimaryMonitor()
		if monitor == nil {
			core.LogWarn("no monitor found, staying windowed")
			return
		}
		vm := monitor.GetVideoMode()
		if mode == WindowModeBorderlessFullscreen {
			w.handle.SetMonitor(nil, 0, 0, vm.Width, vm.Height, vm.RefreshRate)
			return
		}
		w.handle.SetMonitor(monitor, 0, 0, vm.Width, vm.Height, vm.RefreshRate)
	}
}

func (w *GLFWWindow) applyVSync(mode VSyncMode) {
	if !w.settings.GraphicsContext {
		return
	}
	switch mode {
	case VSyncOff:
		glfw.SwapInterval(0)
	case VSyncOn:
		glfw.SwapInterval(1)
	case VSyncAdaptive:
		glfw.SwapInterval(-1)
	}
}

func (w *GLFWWindow) Title() string {
	return w.settings.Title
}

func (w *GLFWWindow) SetTitle(title string) {
	w.settings.Title = title
	w.handle.SetTitle(title)
}

func (w *GLFWWindow) Size() Size {
	return Size{Width: w.settings.Width, Height: w.settings.Height}
}

func (w *GLFWWindow) FramebufferSize() Size {
	width, height := w.handle.GetFramebufferSize()
	return Size{Width: uint32(width), Height: uint32(height)}
}

func (w *GLFWWindow) Focused() bool {
	return w.focused
}

func (w *GLFWWindow) ShouldClose() bool {
	return w.handle.ShouldClose()
}

func (w *GLFWWindow) RequestClose() {
	w.handle.SetShouldClose(true)
}

func (w *GLFWWindow) PollEvents() {
	glfw.PollEvents()
}

// SwapBuffers presents when the window owns an OpenGL context. Without one
// presentation belongs to the render device.
func (w *GLFWWindow) SwapBuffers() {
	if w.settings.GraphicsContext {
		w.handle.SwapBuffers()
	}
}

func (w *GLFWWindow) Events() *WindowEvents {
	return &w.events
}

// Handle exposes the native window for render backends.
func (w *GLFWWindow) Handle() *glfw.Window {
	return w.handle
}

func (w *GLFWWindow) Destroy() {
	if w.handle == nil {
		core.LogWarn("window already destroyed")
		return
	}
	w.handle.Destroy()
	w.handle = nil
	w.ctx.windowDestroyed()
}

func translateButton(b glfw.MouseButton) (core.Button, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return core.BUTTON_LEFT, true
	case glfw.MouseButtonRight:
		return core.BUTTON_RIGHT, true
	case glfw.MouseButtonMiddle:
		return core.BUTTON_MIDDLE, true
	}
	return 0, false
}

func translateKey(k glfw.Key) core.KeyCode {
	switch {
	case k >= glfw.KeyA && k <= glfw.KeyZ:
		return core.KEY_A + core.KeyCode(k-glfw.KeyA)
	case k >= glfw.Key0 && k <= glfw.Key9:
		return core.KEY_0 + core.KeyCode(k-glfw.Key0)
	case k >= glfw.KeyF1 && k <= glfw.KeyF12:
		return core.KEY_F1 + core.KeyCode(k-glfw.KeyF1)
	}
	switch k {
	case glfw.KeySpace:
		return core.KEY_SPACE
	case glfw.KeyEscape:
		return core.KEY_ESCAPE
	case glfw.KeyEnter:
		return core.KEY_ENTER
	case glfw.KeyTab:
		return core.KEY_TAB
	case glfw.KeyBackspace:
		return core.KEY_BACKSPACE
	case glfw.KeyInsert:
		return core.KEY_INSERT
	case glfw.KeyDelete:
		return core.KEY_DELETE
	case glfw.KeyLeft:
		return core.KEY_LEFT
	case glfw.KeyRight:
		return core.KEY_RIGHT
	case glfw.KeyUp:
		return core.KEY_UP
	case glfw.KeyDown:
		return core.KEY_DOWN
	case glfw.KeyHome:
		return core.KEY_HOME
	case glfw.KeyEnd:
		return core.KEY_END
	case glfw.KeyPause:
		return core.KEY_PAUSE
	case glfw.KeyLeftShift:
		return core.KEY_LSHIFT
	case glfw.KeyRightShift:
		return core.KEY_RSHIFT
	case glfw.KeyLeftControl:
		return core.KEY_LCONTROL
	case glfw.KeyRightControl:
		return core.KEY_RCONTROL
	case glfw.KeyMinus:
		return core.KEY_MINUS
	case glfw.KeyEqual:
		return core.KEY_PLUS
	}
	return core.KEY_UNKNOWN
}
