package platform

import (
	"github.com/spaghettifunk/heritage/engine/core"
)

// Surface is whatever the viewer draws for: a desktop window or an offscreen
// target. Resize notifications go through its event bus as
// core.EVENT_CODE_RESIZED.
type Surface interface {
	Size() (uint32, uint32)
	Events() *core.EventBus
	// PumpMessages processes pending OS events. It returns false once the
	// surface wants to close.
	PumpMessages() bool
	SetTitle(title string)
	Shutdown() error
}

// ResizeListenerCount reports how many resize listeners are attached to s.
func ResizeListenerCount(s Surface) int {
	return s.Events().Count(core.EVENT_CODE_RESIZED)
}

var (
	_ Surface = (*Headless)(nil)
	_ Surface = (*Window)(nil)
)
