package platform

import (
	"testing"

	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHeadlessResize(t *testing.T) {
	h := NewHeadless(640, 480)
	var got *core.ResizeEvent
	id := h.Events().Register(core.EVENT_CODE_RESIZED, func(ctx core.EventContext) bool {
		got = ctx.Data.(*core.ResizeEvent)
		return true
	})
	assert.Equal(t, 1, ResizeListenerCount(h))

	h.Resize(640, 480)
	assert.Nil(t, got, "same size does not fire")

	h.Resize(800, 600)
	require.NotNil(t, got)
	assert.Equal(t, uint32(800), got.Width)
	w, hh := h.Size()
	assert.Equal(t, uint32(800), w)
	assert.Equal(t, uint32(600), hh)

	assert.True(t, h.Events().Unregister(core.EVENT_CODE_RESIZED, id))
	assert.Equal(t, 0, ResizeListenerCount(h))
}

func TestHeadlessClose(t *testing.T) {
	h := NewHeadless(1, 1)
	h.SetTitle("Taj Mahal")
	assert.Equal(t, "Taj Mahal", h.Title())
	assert.True(t, h.PumpMessages())
	require.NoError(t, h.Shutdown())
	assert.False(t, h.PumpMessages())
}

func TestTranslateKey(t *testing.T) {
	assert.Equal(t, core.KEY_R, translateKey(glfw.KeyR))
	assert.Equal(t, core.KEY_PLUS, translateKey(glfw.KeyEqual))
	assert.Equal(t, core.KEY_UNKNOWN, translateKey(glfw.KeyF12))
}
