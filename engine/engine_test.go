package engine

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spaghettifunk/heritage/engine/config"
	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/spaghettifunk/heritage/engine/viewer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const cubeOBJ = `v 0 0 0
v 1 0 0
v 1 1 0
v 0 1 0
v 0 0 1
v 1 0 1
v 1 1 1
v 0 1 1
f 1 2 3
f 1 3 4
f 5 6 7
f 5 7 8
f 1 2 6
f 1 6 5
`

func testConfig(t *testing.T) *config.Config {
	cfg := config.Default()
	cfg.Renderer.Backend = "headless"
	cfg.Window.Width = 320
	cfg.Window.Height = 240
	cfg.Assets.ModelsDir = t.TempDir()
	cfg.Logging.Level = "error"
	return cfg
}

func newTestEngine(t *testing.T, g *Game) *Engine {
	t.Helper()
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	t.Cleanup(func() { _ = e.Shutdown() })
	return e
}

func TestRunStopsAfterMaxFrames(t *testing.T) {
	g := &Game{
		ApplicationConfig: &ApplicationConfig{Config: testConfig(t), Headless: true, MaxFrames: 5},
		FnInitialize: func(e *Engine) error {
			return e.ShowMonument(context.Background(), "Taj Mahal")
		},
	}
	e := newTestEngine(t, g)

	require.NoError(t, e.Run())
	stats := e.Viewer().Stats()
	assert.Equal(t, uint64(5), stats.Frames)
	assert.Positive(t, stats.LiveGeometries)
	assert.Equal(t, "Taj Mahal", e.Viewer().State().Descriptor.Name)

	require.NoError(t, e.Shutdown())
	assert.Equal(t, EngineStageShutdown, e.Stage())
	assert.Zero(t, e.Events().Total())
	assert.Equal(t, viewer.StageDisposed, e.Viewer().State().Stage)
}

func TestEscapeQuits(t *testing.T) {
	var e *Engine
	frames := 0
	g := &Game{
		ApplicationConfig: &ApplicationConfig{Config: testConfig(t), Headless: true, MaxFrames: 100},
		FnInitialize: func(*Engine) error { return nil },
		FnUpdate: func(float64) error {
			frames++
			if frames == 2 {
				e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_ESCAPE}})
			}
			return nil
		},
	}
	e = newTestEngine(t, g)

	require.NoError(t, e.Run())
	assert.Equal(t, 2, frames)
}

func TestKeysReachViewer(t *testing.T) {
	g := &Game{ApplicationConfig: &ApplicationConfig{Config: testConfig(t), Headless: true}}
	e := newTestEngine(t, g)
	require.NoError(t, e.ShowMonument(context.Background(), "qutub_minar"))

	before := e.Viewer().State().Rotating
	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_R}})
	assert.Equal(t, !before, e.Viewer().State().Rotating)

	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_KEY_PRESSED, Data: &core.KeyEvent{KeyCode: core.KEY_4}})
	assert.Equal(t, viewer.PresetTop, e.Viewer().State().ViewPreset)
}

func TestMinimizeSuspends(t *testing.T) {
	g := &Game{ApplicationConfig: &ApplicationConfig{Config: testConfig(t), Headless: true}}
	e := newTestEngine(t, g)

	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.ResizeEvent{}})
	assert.True(t, e.isSuspended)
	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_RESIZED, Data: &core.ResizeEvent{Width: 640, Height: 480}})
	assert.False(t, e.isSuspended)
}

func TestChangedModelRemounts(t *testing.T) {
	cfg := testConfig(t)
	path := filepath.Join(cfg.Assets.ModelsDir, "stepwell.obj")
	require.NoError(t, os.WriteFile(path, []byte(cubeOBJ), 0o644))

	g := &Game{ApplicationConfig: &ApplicationConfig{Config: cfg, Headless: true}}
	e := newTestEngine(t, g)
	require.NoError(t, e.ShowModel(context.Background(), "Rani ki Vav", path))
	require.Equal(t, uint64(1), e.Viewer().Stats().Generation)

	// unrelated files are ignored
	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_ASSET_CHANGED, Data: &core.AssetChangedEvent{Slug: "other"}})
	e.drainReloads()
	assert.Equal(t, uint64(1), e.Viewer().Stats().Generation)

	e.Events().Fire(core.EventContext{Type: core.EVENT_CODE_ASSET_CHANGED, Data: &core.AssetChangedEvent{Slug: "stepwell", Path: path}})
	e.drainReloads()
	assert.Equal(t, uint64(2), e.Viewer().Stats().Generation)
	assert.Equal(t, "Rani ki Vav", e.Viewer().State().Descriptor.Name)
}

func TestNewRequiresGame(t *testing.T) {
	_, err := New(nil)
	assert.Error(t, err)

	cfg := config.Default()
	cfg.Renderer.Backend = "opengl"
	_, err = New(&Game{ApplicationConfig: &ApplicationConfig{Config: cfg}})
	assert.Error(t, err)
}
