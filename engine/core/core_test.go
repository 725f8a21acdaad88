package core

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEventBusRegisterFireUnregister(t *testing.T) {
	bus := NewEventBus()

	var got []uint32
	id := bus.Register(EVENT_CODE_RESIZED, func(ctx EventContext) bool {
		got = append(got, ctx.Data.(*ResizeEvent).Width)
		return false
	})
	assert.Equal(t, 1, bus.Count(EVENT_CODE_RESIZED))

	bus.Fire(EventContext{Type: EVENT_CODE_RESIZED, Data: &ResizeEvent{Width: 640, Height: 480}})
	bus.Fire(EventContext{Type: EVENT_CODE_KEY_PRESSED, Data: &KeyEvent{KeyCode: KEY_R}})
	assert.Equal(t, []uint32{640}, got)

	assert.True(t, bus.Unregister(EVENT_CODE_RESIZED, id))
	assert.False(t, bus.Unregister(EVENT_CODE_RESIZED, id))
	assert.Zero(t, bus.Total())
}

func TestEventBusHandledStopsPropagation(t *testing.T) {
	bus := NewEventBus()
	second := false
	bus.Register(EVENT_CODE_KEY_PRESSED, func(EventContext) bool { return true })
	bus.Register(EVENT_CODE_KEY_PRESSED, func(EventContext) bool { second = true; return false })

	assert.True(t, bus.Fire(EventContext{Type: EVENT_CODE_KEY_PRESSED}))
	assert.False(t, second)
}

func TestEventBusUnregisterFromCallback(t *testing.T) {
	bus := NewEventBus()
	var id ListenerID
	id = bus.Register(EVENT_CODE_APPLICATION_QUIT, func(EventContext) bool {
		bus.Unregister(EVENT_CODE_APPLICATION_QUIT, id)
		return false
	})
	bus.Fire(EventContext{Type: EVENT_CODE_APPLICATION_QUIT})
	assert.Zero(t, bus.Count(EVENT_CODE_APPLICATION_QUIT))
}

func TestInputFiresOnChangeOnly(t *testing.T) {
	bus := NewEventBus()
	in := NewInput(bus)
	presses := 0
	bus.Register(EVENT_CODE_KEY_PRESSED, func(EventContext) bool { presses++; return false })

	in.ProcessKey(KEY_R, true)
	in.ProcessKey(KEY_R, true)
	assert.Equal(t, 1, presses)
	assert.True(t, in.IsKeyDown(KEY_R))

	in.Update()
	in.ProcessKey(KEY_R, false)
	assert.True(t, in.WasKeyDown(KEY_R))
	assert.False(t, in.IsKeyDown(KEY_R))
}

func TestMetricsAverage(t *testing.T) {
	m := NewMetrics()
	for i := 0; i < AVG_COUNT*2; i++ {
		m.Update(0.010)
	}
	assert.InDelta(t, 10.0, m.FrameTime(), 1e-9)
	assert.Equal(t, uint64(AVG_COUNT*2), m.TotalFrames())

	for i := 0; i < 100; i++ {
		m.Update(0.016)
	}
	assert.Greater(t, m.FPS(), 0.0)
}

func TestSetLogLevel(t *testing.T) {
	var buf bytes.Buffer
	SetLogOutput(&buf)
	require.NoError(t, SetLogLevel("warn"))
	LogInfo("hidden %d", 1)
	LogWarn("shown %d", 2)
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown 2")

	assert.Error(t, SetLogLevel("loud"))
	require.NoError(t, SetLogLevel("info"))
}

func TestClockDelta(t *testing.T) {
	now := time.Unix(100, 0)
	c := NewClockWithSource(func() time.Time { return now })
	assert.Zero(t, c.Update())

	c.Start()
	now = now.Add(250 * time.Millisecond)
	assert.InDelta(t, 0.25, c.Update(), 1e-9)
	now = now.Add(500 * time.Millisecond)
	assert.InDelta(t, 0.5, c.Update(), 1e-9)
	assert.InDelta(t, 0.75, c.Elapsed(), 1e-9)

	c.Stop()
	now = now.Add(time.Second)
	assert.Zero(t, c.Update())
	assert.InDelta(t, 0.75, c.Elapsed(), 1e-9)
}
