package core

import "sync"

// System event codes. Application should use codes beyond 255.
type EventCode uint16

const (
	// Shuts the application down on the next frame.
	EVENT_CODE_APPLICATION_QUIT EventCode = 0x01

	// Keyboard key pressed. Data: *KeyEvent
	EVENT_CODE_KEY_PRESSED EventCode = 0x02

	// Keyboard key released. Data: *KeyEvent
	EVENT_CODE_KEY_RELEASED EventCode = 0x03

	// Mouse moved. Data: *MouseEvent
	EVENT_CODE_MOUSE_MOVED EventCode = 0x06

	// Mouse wheel. Data: *MouseEvent
	EVENT_CODE_MOUSE_WHEEL EventCode = 0x07

	// Resized/resolution changed from the OS. Data: *ResizeEvent
	EVENT_CODE_RESIZED EventCode = 0x08

	// A model file under the watched models directory changed. Data: *AssetChangedEvent
	EVENT_CODE_ASSET_CHANGED EventCode = 0x09

	MAX_EVENT_CODE EventCode = 0xFF
)

type EventContext struct {
	Type EventCode
	Data interface{}
}

type KeyEvent struct {
	KeyCode KeyCode
}

type MouseEvent struct {
	PosX   uint16
	PosY   uint16
	Scroll int8
}

type ResizeEvent struct {
	Width  uint32
	Height uint32
}

type AssetChangedEvent struct {
	Slug string
	Path string
}

// Should return true if handled.
type FnOnEvent func(ctx EventContext) bool

// ListenerID identifies one registration so it can be removed later.
type ListenerID uint64

type registeredEvent struct {
	id       ListenerID
	callback FnOnEvent
}

// EventBus dispatches events to registered listeners. Each engine and each
// surface owns its own bus; there is no global event state.
type EventBus struct {
	mu         sync.RWMutex
	nextID     ListenerID
	registered map[EventCode][]registeredEvent
}

func NewEventBus() *EventBus {
	return &EventBus{
		registered: make(map[EventCode][]registeredEvent),
	}
}

/**
 * Register to listen for when events are sent with the provided code.
 * @returns the id to pass to Unregister.
 */
func (b *EventBus) Register(code EventCode, onEvent FnOnEvent) ListenerID {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.registered[code] = append(b.registered[code], registeredEvent{
		id:       b.nextID,
		callback: onEvent,
	})
	return b.nextID
}

/**
 * Unregister from listening for when events are sent with the provided code.
 * @returns false if no matching registration is found.
 */
func (b *EventBus) Unregister(code EventCode, id ListenerID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	events := b.registered[code]
	for i, e := range events {
		if e.id == id {
			b.registered[code] = append(events[:i:i], events[i+1:]...)
			if len(b.registered[code]) == 0 {
				delete(b.registered, code)
			}
			return true
		}
	}
	return false
}

/**
 * Fires an event to listeners of the given code. If an event handler returns
 * true, the event is considered handled and is not passed on to any more listeners.
 * Listeners may unregister themselves from inside the callback.
 */
func (b *EventBus) Fire(ctx EventContext) bool {
	b.mu.RLock()
	events := append([]registeredEvent(nil), b.registered[ctx.Type]...)
	b.mu.RUnlock()

	for _, e := range events {
		if e.callback(ctx) {
			return true
		}
	}
	return false
}

// Count returns the listeners registered for code.
func (b *EventBus) Count(code EventCode) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.registered[code])
}

// Total returns the listeners registered across all codes.
func (b *EventBus) Total() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, events := range b.registered {
		n += len(events)
	}
	return n
}
