package platform

import (
	"sync"

	"github.com/spaghettifunk/heritage/engine/core"
)

// Headless is an offscreen surface. Resize is driven by the caller.
type Headless struct {
	mu     sync.Mutex
	bus    *core.EventBus
	width  uint32
	height uint32
	title  string
	closed bool
}

func NewHeadless(width, height uint32) *Headless {
	return &Headless{
		bus:    core.NewEventBus(),
		width:  width,
		height: height,
	}
}

func (h *Headless) Size() (uint32, uint32) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.width, h.height
}

func (h *Headless) Events() *core.EventBus {
	return h.bus
}

func (h *Headless) PumpMessages() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return !h.closed
}

func (h *Headless) SetTitle(title string) {
	h.mu.Lock()
	h.title = title
	h.mu.Unlock()
}

func (h *Headless) Title() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.title
}

// Resize changes the surface size and notifies resize listeners.
func (h *Headless) Resize(width, height uint32) {
	h.mu.Lock()
	changed := width != h.width || height != h.height
	h.width = width
	h.height = height
	h.mu.Unlock()

	if changed {
		h.bus.Fire(core.EventContext{
			Type: core.EVENT_CODE_RESIZED,
			Data: &core.ResizeEvent{Width: width, Height: height},
		})
	}
}

// Close makes the next PumpMessages report false.
func (h *Headless) Close() {
	h.mu.Lock()
	h.closed = true
	h.mu.Unlock()
}

func (h *Headless) Shutdown() error {
	h.Close()
	return nil
}
