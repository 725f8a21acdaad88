package platform

import (
	"runtime"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/heritage/engine/core"
)

func init() {
	// GLFW event handling must run on the main OS thread
	runtime.LockOSThread()
}

// Window is a desktop window backed by glfw. It feeds keyboard and mouse
// state into an Input and reports framebuffer resizes on its bus.
type Window struct {
	window *glfw.Window
	bus    *core.EventBus
	input  *core.Input
	width  uint32
	height uint32
}

func NewWindow(bus *core.EventBus, input *core.Input) *Window {
	return &Window{
		bus:   bus,
		input: input,
	}
}

func (w *Window) Startup(applicationName string, x, y, width, height uint32) error {
	if err := glfw.Init(); err != nil {
		core.LogError("failed to initialize glfw: %s", err)
		return err
	}

	glfw.WindowHint(glfw.Visible, glfw.False)
	glfw.WindowHint(glfw.Resizable, glfw.True)
	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	window, err := glfw.CreateWindow(int(width), int(height), applicationName, nil, nil)
	if err != nil {
		core.LogError("failed to create window: %s", err)
		glfw.Terminate()
		return err
	}
	w.window = window
	w.width = width
	w.height = height

	w.window.SetKeyCallback(w.keyCallback)
	w.window.SetCursorPosCallback(w.cursorPosCallback)
	w.window.SetScrollCallback(w.scrollCallback)
	w.window.SetFramebufferSizeCallback(w.framebufferSizeCallback)
	w.window.SetPos(int(x), int(y))
	w.window.Show()

	return nil
}

func (w *Window) Size() (uint32, uint32) {
	return w.width, w.height
}

func (w *Window) Events() *core.EventBus {
	return w.bus
}

func (w *Window) PumpMessages() bool {
	if w.window == nil {
		return false
	}
	glfw.PollEvents()
	if w.window.ShouldClose() {
		w.bus.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return false
	}
	return true
}

func (w *Window) SetTitle(title string) {
	if w.window != nil {
		w.window.SetTitle(title)
	}
}

func (w *Window) Shutdown() error {
	if w.window != nil {
		w.window.Destroy()
		w.window = nil
	}
	glfw.Terminate()
	return nil
}

func (w *Window) keyCallback(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if action == glfw.Repeat {
		return
	}
	code := translateKey(key)
	if code == core.KEY_UNKNOWN {
		return
	}
	w.input.ProcessKey(code, action == glfw.Press)
}

func (w *Window) cursorPosCallback(_ *glfw.Window, xpos, ypos float64) {
	w.input.ProcessMouseMove(uint16(max(0, xpos)), uint16(max(0, ypos)))
}

func (w *Window) scrollCallback(_ *glfw.Window, xoff, yoff float64) {
	switch {
	case yoff > 0:
		w.input.ProcessMouseWheel(1)
	case yoff < 0:
		w.input.ProcessMouseWheel(-1)
	}
}

func (w *Window) framebufferSizeCallback(_ *glfw.Window, width, height int) {
	w.width = uint32(width)
	w.height = uint32(height)
	w.bus.Fire(core.EventContext{
		Type: core.EVENT_CODE_RESIZED,
		Data: &core.ResizeEvent{Width: uint32(width), Height: uint32(height)},
	})
}

var keyMap = map[glfw.Key]core.KeyCode{
	glfw.KeyBackspace:  core.KEY_BACKSPACE,
	glfw.KeyTab:        core.KEY_TAB,
	glfw.KeyEnter:      core.KEY_ENTER,
	glfw.KeyEscape:     core.KEY_ESCAPE,
	glfw.KeySpace:      core.KEY_SPACE,
	glfw.KeyLeft:       core.KEY_LEFT,
	glfw.KeyUp:         core.KEY_UP,
	glfw.KeyRight:      core.KEY_RIGHT,
	glfw.KeyDown:       core.KEY_DOWN,
	glfw.Key1:          core.KEY_1,
	glfw.Key2:          core.KEY_2,
	glfw.Key3:          core.KEY_3,
	glfw.Key4:          core.KEY_4,
	glfw.KeyN:          core.KEY_N,
	glfw.KeyP:          core.KEY_P,
	glfw.KeyR:          core.KEY_R,
	glfw.KeyKPAdd:      core.KEY_ADD,
	glfw.KeyKPSubtract: core.KEY_SUBTRACT,
	glfw.KeyEqual:      core.KEY_PLUS,
	glfw.KeyMinus:      core.KEY_MINUS,
}

func translateKey(key glfw.Key) core.KeyCode {
	if code, ok := keyMap[key]; ok {
		return code
	}
	return core.KEY_UNKNOWN
}
