package core

type Button uint16

const (
	BUTTON_LEFT Button = iota
	BUTTON_RIGHT
	BUTTON_MIDDLE
	BUTTON_MAX_BUTTONS
)

// Key code definitions, platform independent. The platform layer translates
// its native codes to these.
type KeyCode uint16

const (
	KEY_UNKNOWN   KeyCode = 0x00
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_SHIFT     KeyCode = 0x10
	KEY_PAUSE     KeyCode = 0x13
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_END       KeyCode = 0x23
	KEY_HOME      KeyCode = 0x24
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_INSERT    KeyCode = 0x2D
	KEY_DELETE    KeyCode = 0x2E
	KEY_0         KeyCode = 0x30
	KEY_9         KeyCode = 0x39
	KEY_A         KeyCode = 0x41
	KEY_D         KeyCode = 0x44
	KEY_Q         KeyCode = 0x51
	KEY_S         KeyCode = 0x53
	KEY_W         KeyCode = 0x57
	KEY_Z         KeyCode = 0x5A
	KEY_F1        KeyCode = 0x70
	KEY_F12       KeyCode = 0x7B
	KEY_LSHIFT    KeyCode = 0xA0
	KEY_RSHIFT    KeyCode = 0xA1
	KEY_LCONTROL  KeyCode = 0xA2
	KEY_RCONTROL  KeyCode = 0xA3
	KEY_MINUS     KeyCode = 0xBD
	KEY_PLUS      KeyCode = 0xBB
	KEYS_MAX_KEYS KeyCode = 0x100
)

// KeyEvent is emitted when a key changes state.
type KeyEvent struct {
	Key     KeyCode
	Pressed bool
	Repeat  bool
}

// MouseEvent is emitted for button, motion and wheel changes.
type MouseEvent struct {
	Button  Button
	Pressed bool
	X, Y    float64
	ScrollX float64
	ScrollY float64
}

// Mouse state structure
type MouseState struct {
	X       float64
	Y       float64
	Buttons [BUTTON_MAX_BUTTONS]bool
}

// Keyboard state structure
type KeyboardState struct {
	Keys [KEYS_MAX_KEYS]bool
}

// Input holds current and previous states for keyboard and mouse. The
// previous state is rolled forward once per frame by Update, so WasKeyDown
// answers "was it down last frame".
type Input struct {
	keyboardCurrent  KeyboardState
	keyboardPrevious KeyboardState
	mouseCurrent     MouseState
	mousePrevious    MouseState

	Key    Signal[KeyEvent]
	Button Signal[MouseEvent]
	Moved  Signal[MouseEvent]
	Scroll Signal[MouseEvent]
}

func NewInput() *Input {
	return &Input{}
}

// Update copies current states to previous states.
func (in *Input) Update() {
	in.keyboardPrevious = in.keyboardCurrent
	in.mousePrevious = in.mouseCurrent
}

func (in *Input) IsKeyDown(key KeyCode) bool {
	return key < KEYS_MAX_KEYS && in.keyboardCurrent.Keys[key]
}

func (in *Input) WasKeyDown(key KeyCode) bool {
	return key < KEYS_MAX_KEYS && in.keyboardPrevious.Keys[key]
}

// IsKeyPressed is true only on the frame the key went down.
func (in *Input) IsKeyPressed(key KeyCode) bool {
	return in.IsKeyDown(key) && !in.WasKeyDown(key)
}

func (in *Input) IsKeyReleased(key KeyCode) bool {
	return !in.IsKeyDown(key) && in.WasKeyDown(key)
}

func (in *Input) ProcessKey(key KeyCode, pressed bool) {
	if key >= KEYS_MAX_KEYS {
		return
	}
	repeat := in.keyboardCurrent.Keys[key] == pressed
	in.keyboardCurrent.Keys[key] = pressed
	in.Key.Emit(KeyEvent{Key: key, Pressed: pressed, Repeat: repeat})
}

func (in *Input) IsButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && in.mouseCurrent.Buttons[button]
}

func (in *Input) WasButtonDown(button Button) bool {
	return button < BUTTON_MAX_BUTTONS && in.mousePrevious.Buttons[button]
}

func (in *Input) ProcessButton(button Button, pressed bool) {
	if button >= BUTTON_MAX_BUTTONS {
		return
	}
	// If the state changed, fire an event.
	if in.mouseCurrent.Buttons[button] != pressed {
		in.mouseCurrent.Buttons[button] = pressed
		in.Button.Emit(MouseEvent{
			Button:  button,
			Pressed: pressed,
			X:       in.mouseCurrent.X,
			Y:       in.mouseCurrent.Y,
		})
	}
}

func (in *Input) MousePosition() (float64, float64) {
	return in.mouseCurrent.X, in.mouseCurrent.Y
}

func (in *Input) PreviousMousePosition() (float64, float64) {
	return in.mousePrevious.X, in.mousePrevious.Y
}

func (in *Input) ProcessMouseMove(x, y float64) {
	// Only process if actually different
	if in.mouseCurrent.X != x || in.mouseCurrent.Y != y {
		in.mouseCurrent.X = x
		in.mouseCurrent.Y = y
		in.Moved.Emit(MouseEvent{X: x, Y: y})
	}
}

func (in *Input) ProcessMouseWheel(dx, dy float64) {
	in.Scroll.Emit(MouseEvent{
		X:       in.mouseCurrent.X,
		Y:       in.mouseCurrent.Y,
		ScrollX: dx,
		ScrollY: dy,
	})
}
