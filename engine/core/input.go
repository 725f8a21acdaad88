package core

import "sync"

// Key code definitions
type KeyCode uint16

const (
	KEY_UNKNOWN   KeyCode = 0x00
	KEY_BACKSPACE KeyCode = 0x08
	KEY_TAB       KeyCode = 0x09
	KEY_ENTER     KeyCode = 0x0D
	KEY_ESCAPE    KeyCode = 0x1B
	KEY_SPACE     KeyCode = 0x20
	KEY_LEFT      KeyCode = 0x25
	KEY_UP        KeyCode = 0x26
	KEY_RIGHT     KeyCode = 0x27
	KEY_DOWN      KeyCode = 0x28
	KEY_1         KeyCode = 0x31
	KEY_2         KeyCode = 0x32
	KEY_3         KeyCode = 0x33
	KEY_4         KeyCode = 0x34
	KEY_N         KeyCode = 0x4E
	KEY_P         KeyCode = 0x50
	KEY_R         KeyCode = 0x52
	KEY_ADD       KeyCode = 0x6B
	KEY_SUBTRACT  KeyCode = 0x6D
	KEY_PLUS      KeyCode = 0xBB
	KEY_MINUS     KeyCode = 0xBD
	KEYS_MAX_KEYS KeyCode = 0xFF
)

// Mouse state structure
type MouseState struct {
	X uint16
	Y uint16
}

// Keyboard state structure
type KeyboardState struct {
	Keys [256]bool
}

// Input holds current and previous keyboard and mouse state and turns
// changes into events on its bus.
type Input struct {
	mu               sync.Mutex
	bus              *EventBus
	keyboardCurrent  KeyboardState
	keyboardPrevious KeyboardState
	mouseCurrent     MouseState
	mousePrevious    MouseState
}

func NewInput(bus *EventBus) *Input {
	return &Input{bus: bus}
}

// Update copies current states to previous states. Called once per frame.
func (in *Input) Update() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.keyboardPrevious = in.keyboardCurrent
	in.mousePrevious = in.mouseCurrent
}

func (in *Input) IsKeyDown(key KeyCode) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keyboardCurrent.Keys[key&0xFF]
}

func (in *Input) WasKeyDown(key KeyCode) bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.keyboardPrevious.Keys[key&0xFF]
}

func (in *Input) ProcessKey(key KeyCode, pressed bool) {
	in.mu.Lock()
	changed := in.keyboardCurrent.Keys[key&0xFF] != pressed
	in.keyboardCurrent.Keys[key&0xFF] = pressed
	in.mu.Unlock()

	if !changed {
		return
	}
	code := EVENT_CODE_KEY_RELEASED
	if pressed {
		code = EVENT_CODE_KEY_PRESSED
	}
	in.bus.Fire(EventContext{Type: code, Data: &KeyEvent{KeyCode: key}})
}

func (in *Input) MousePosition() (int32, int32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return int32(in.mouseCurrent.X), int32(in.mouseCurrent.Y)
}

func (in *Input) PreviousMousePosition() (int32, int32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	return int32(in.mousePrevious.X), int32(in.mousePrevious.Y)
}

func (in *Input) ProcessMouseMove(x, y uint16) {
	in.mu.Lock()
	changed := in.mouseCurrent.X != x || in.mouseCurrent.Y != y
	in.mouseCurrent.X = x
	in.mouseCurrent.Y = y
	in.mu.Unlock()

	if changed {
		in.bus.Fire(EventContext{Type: EVENT_CODE_MOUSE_MOVED, Data: &MouseEvent{PosX: x, PosY: y}})
	}
}

func (in *Input) ProcessMouseWheel(zDelta int8) {
	in.bus.Fire(EventContext{Type: EVENT_CODE_MOUSE_WHEEL, Data: &MouseEvent{Scroll: zDelta}})
}
