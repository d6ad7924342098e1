package platform

import (
	"github.com/spaghettifunk/anima2d/engine/core"
)

// HeadlessWindow is a window without an OS surface. It is used for offscreen
// runs and tests; callers inject events through the Simulate methods and
// they are delivered on the next PollEvents, like real OS events.
type HeadlessWindow struct {
	settings    WindowSettings
	focused     bool
	shouldClose bool
	destroyed   bool
	swaps       int
	pending     []func()
	events      WindowEvents
}

var _ Window = (*HeadlessWindow)(nil)

func NewHeadlessWindow(settings WindowSettings) *HeadlessWindow {
	return &HeadlessWindow{settings: settings, focused: true}
}

func (w *HeadlessWindow) Title() string         { return w.settings.Title }
func (w *HeadlessWindow) SetTitle(title string) { w.settings.Title = title }

func (w *HeadlessWindow) Size() Size {
	return Size{Width: w.settings.Width, Height: w.settings.Height}
}

func (w *HeadlessWindow) FramebufferSize() Size {
	return w.Size()
}

func (w *HeadlessWindow) Focused() bool     { return w.focused }
func (w *HeadlessWindow) ShouldClose() bool { return w.shouldClose }
func (w *HeadlessWindow) RequestClose()     { w.shouldClose = true }

func (w *HeadlessWindow) PollEvents() {
	pending := w.pending
	w.pending = nil
	for _, fn := range pending {
		fn()
	}
}

func (w *HeadlessWindow) SwapBuffers() {
	w.swaps++
}

// Swaps counts presented frames.
func (w *HeadlessWindow) Swaps() int {
	return w.swaps
}

func (w *HeadlessWindow) Events() *WindowEvents {
	return &w.events
}

func (w *HeadlessWindow) Destroy() {
	w.destroyed = true
}

func (w *HeadlessWindow) Destroyed() bool {
	return w.destroyed
}

// SimulateClose behaves like the user clicking the close button.
func (w *HeadlessWindow) SimulateClose() {
	w.pending = append(w.pending, func() {
		w.shouldClose = true
		w.events.Close.Emit(struct{}{})
	})
}

func (w *HeadlessWindow) SimulateFocus(focused bool) {
	w.pending = append(w.pending, func() {
		w.focused = focused
		w.events.Focus.Emit(focused)
	})
}

func (w *HeadlessWindow) SimulateResize(width, height uint32) {
	w.pending = append(w.pending, func() {
		w.settings.Width = width
		w.settings.Height = height
		size := Size{Width: width, Height: height}
		w.events.Resize.Emit(size)
		w.events.Framebuffer.Emit(size)
	})
}

func (w *HeadlessWindow) SimulateKey(key core.KeyCode, pressed bool) {
	w.pending = append(w.pending, func() {
		w.events.Key.Emit(core.KeyEvent{Key: key, Pressed: pressed})
	})
}

func (w *HeadlessWindow) SimulateMouseButton(button core.Button, pressed bool) {
	w.pending = append(w.pending, func() {
		w.events.MouseButton.Emit(core.MouseEvent{Button: button, Pressed: pressed})
	})
}

func (w *HeadlessWindow) SimulateCursor(x, y float64) {
	w.pending = append(w.pending, func() {
		w.events.Cursor.Emit(core.MouseEvent{X: x, Y: y})
	})
}

func (w *HeadlessWindow) SimulateScroll(dx, dy float64) {
	w.pending = append(w.pending, func() {
		w.events.Scroll.Emit(core.MouseEvent{ScrollX: dx, ScrollY: dy})
	})
}
