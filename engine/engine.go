package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/spaghettifunk/heritage/engine/assets"
	"github.com/spaghettifunk/heritage/engine/config"
	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/monument"
	"github.com/spaghettifunk/heritage/engine/platform"
	"github.com/spaghettifunk/heritage/engine/renderer"
	"github.com/spaghettifunk/heritage/engine/renderer/headless"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
	"github.com/spaghettifunk/heritage/engine/renderer/software"
	"github.com/spaghettifunk/heritage/engine/renderer/vulkan"
	"github.com/spaghettifunk/heritage/engine/systems"
	"github.com/spaghettifunk/heritage/engine/viewer"
	"golang.org/x/image/colornames"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
	// Engine has released everything
	EngineStageShutdown
)

type Engine struct {
	currentStage Stage
	gameInstance *Game
	config       *config.Config
	isRunning    atomic.Bool
	isSuspended  bool

	bus          *core.EventBus
	input        *core.Input
	surface      platform.Surface
	jobs         *systems.JobSystem
	assetManager *assets.AssetManager
	loader       *assets.Loader
	catalog      *monument.Catalog
	viewer       *viewer.Viewer
	clock        *core.Clock
	metrics      *core.Metrics
	frames       uint64
	lastTitle    time.Time

	current       mountRequest
	pendingReload chan string
	listeners     []listener
}

type mountRequest struct {
	name string
	url  string
}

type listener struct {
	code core.EventCode
	id   core.ListenerID
}

func New(g *Game) (*Engine, error) {
	if g == nil || g.ApplicationConfig == nil {
		return nil, errors.New("game and application config are required")
	}
	cfg := g.ApplicationConfig.Config
	if cfg == nil {
		cfg = config.Default()
		g.ApplicationConfig.Config = cfg
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	catalog, err := monument.DefaultCatalog()
	if err != nil {
		return nil, err
	}

	return &Engine{
		currentStage:  EngineStageUninitialized,
		gameInstance:  g,
		config:        cfg,
		catalog:       catalog,
		clock:         core.NewClock(),
		metrics:       core.NewMetrics(),
		pendingReload: make(chan string, 4),
	}, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing
	cfg := e.config
	app := e.gameInstance.ApplicationConfig

	if err := core.SetLogLevel(cfg.Logging.Level); err != nil {
		return err
	}
	core.SetLogReportCaller(cfg.Logging.Caller)

	if cfg.Renderer.RequireGPU {
		devices, err := vulkan.Probe(cfg.Window.Title)
		if err != nil {
			return err
		}
		core.LogInfo("Vulkan device available: %s", devices[0].Name)
	}

	if app.Headless {
		h := platform.NewHeadless(cfg.Window.Width, cfg.Window.Height)
		e.bus = h.Events()
		e.input = core.NewInput(e.bus)
		e.surface = h
	} else {
		e.bus = core.NewEventBus()
		e.input = core.NewInput(e.bus)
		w := platform.NewWindow(e.bus, e.input)
		if err := w.Startup(cfg.Window.Title, cfg.Window.PosX, cfg.Window.PosY, cfg.Window.Width, cfg.Window.Height); err != nil {
			return fmt.Errorf("%w: %w", core.ErrSetupFailure, err)
		}
		e.surface = w
	}

	e.register(core.EVENT_CODE_APPLICATION_QUIT, e.onEvent)
	e.register(core.EVENT_CODE_KEY_PRESSED, e.onKey)
	e.register(core.EVENT_CODE_MOUSE_WHEEL, e.onScroll)
	e.register(core.EVENT_CODE_RESIZED, e.onResized)
	e.register(core.EVENT_CODE_ASSET_CHANGED, e.onAssetChanged)

	jobs, err := systems.NewJobSystem(max(1, cfg.Assets.Workers), 16)
	if err != nil {
		return err
	}
	e.jobs = jobs

	loader, err := assets.NewLoader(assets.LoaderConfig{
		Origin:    cfg.Assets.Origin,
		ModelsDir: cfg.Assets.ModelsDir,
		FitSize:   cfg.Assets.FitSize,
		Timeout:   cfg.AssetTimeout(),
	})
	if err != nil {
		return err
	}
	e.loader = loader

	e.assetManager = assets.NewAssetManager(e.bus)
	if err := e.assetManager.Initialize(cfg.Assets.ModelsDir, cfg.Assets.Watch && !app.Headless); err != nil {
		return err
	}

	preset, _ := viewer.ParsePreset(strings.ToLower(cfg.Viewer.DefaultPreset))
	e.viewer = viewer.New(viewer.Options{
		NewBackend:  e.backendFactory(),
		Loader:      e.loader,
		Jobs:        e.jobs,
		Catalog:     e.catalog,
		ClearColour: clearColour(cfg.Renderer.ClearColour),
		AutoRotate:  cfg.Viewer.AutoRotate,
		RotateSpeed: float64(cfg.Viewer.RotateSpeed),
		Preset:      preset,
		ShowGround:  cfg.Viewer.ShowGround,
		Camera: viewer.CameraConfig{
			FOV:             math.DegToRad(cfg.Viewer.FOV),
			Near:            cfg.Viewer.Near,
			Far:             cfg.Viewer.Far,
			MinDistance:     float64(cfg.Viewer.MinDistance),
			MaxDistance:     float64(cfg.Viewer.MaxDistance),
			SpringFrequency: cfg.Viewer.SpringFrequency,
			SpringDamping:   cfg.Viewer.SpringDamping,
		},
	})

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(e); err != nil {
			return err
		}
	}
	if e.gameInstance.FnOnResize != nil {
		w, h := e.surface.Size()
		if err := e.gameInstance.FnOnResize(w, h); err != nil {
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

func (e *Engine) backendFactory() func() renderer.RendererBackend {
	switch e.config.Renderer.Backend {
	case "headless":
		return func() renderer.RendererBackend { return headless.New() }
	default:
		return func() renderer.RendererBackend { return software.New() }
	}
}

func clearColour(name string) math.Vec4 {
	if c, ok := colornames.Map[name]; ok {
		return metadata.ColourFrom(c)
	}
	return metadata.ColourFrom(colornames.Midnightblue)
}

// ShowMonument mounts name, using the catalog's model file when the entry
// has one and the procedural builder otherwise.
func (e *Engine) ShowMonument(ctx context.Context, name string) error {
	url := ""
	if entry, ok := e.catalog.Lookup(name); ok {
		name = entry.Name
		url = entry.Model
	}
	return e.ShowModel(ctx, name, url)
}

// ShowModel mounts name with the OBJ at url, or procedurally when url is empty.
func (e *Engine) ShowModel(ctx context.Context, name, url string) error {
	e.current = mountRequest{name: name, url: url}
	if url == "" {
		return e.viewer.Mount(ctx, e.surface, name)
	}
	return e.viewer.MountModel(ctx, e.surface, name, url)
}

func (e *Engine) Run() error {
	e.currentStage = EngineStageRunning
	e.isRunning.Store(true)
	e.clock.Start()

	var targetFrameSeconds float64
	if fps := e.config.Renderer.TargetFPS; fps > 0 {
		targetFrameSeconds = 1.0 / float64(fps)
	}
	maxFrames := e.gameInstance.ApplicationConfig.MaxFrames

	for e.isRunning.Load() {
		if !e.surface.PumpMessages() {
			e.isRunning.Store(false)
			break
		}
		if e.isSuspended {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		// Update clock and get delta time.
		delta := e.clock.Update()
		frameStartTime := time.Now()

		e.drainReloads()

		if e.gameInstance.FnUpdate != nil {
			if err := e.gameInstance.FnUpdate(delta); err != nil {
				core.LogError("Game update failed, shutting down.")
				return err
			}
		}

		if err := e.viewer.Frame(delta); err != nil && !errors.Is(err, core.ErrNotMounted) {
			core.LogError("frame failed: %s", err)
			return err
		}

		// Call the game's render routine.
		if e.gameInstance.FnRender != nil {
			if err := e.gameInstance.FnRender(delta); err != nil {
				core.LogError("Game render failed, shutting down.")
				return err
			}
		}

		// Figure out how long the frame took and, if below the target, give
		// the rest back to the OS.
		frameElapsedTime := time.Since(frameStartTime).Seconds()
		e.metrics.Update(frameElapsedTime)
		if remaining := targetFrameSeconds - frameElapsedTime; remaining > 0 && !e.gameInstance.ApplicationConfig.Headless {
			time.Sleep(time.Duration(remaining * float64(time.Second)))
		}

		e.updateTitle()

		// Input state copying should always be the last thing in the frame.
		e.input.Update()

		e.frames++
		if maxFrames > 0 && e.frames >= maxFrames {
			e.isRunning.Store(false)
		}
	}
	return nil
}

// Quit stops the loop after the current frame. Safe from any goroutine.
func (e *Engine) Quit() {
	e.isRunning.Store(false)
}

func (e *Engine) Shutdown() error {
	if e.currentStage == EngineStageShutdown {
		return nil
	}
	e.currentStage = EngineStageShuttingDown

	if e.gameInstance.FnShutdown != nil {
		if err := e.gameInstance.FnShutdown(); err != nil {
			core.LogError("game shutdown failed: %s", err)
		}
	}
	if e.viewer != nil {
		e.viewer.Unmount()
	}
	var errs []error
	if e.assetManager != nil {
		errs = append(errs, e.assetManager.Shutdown())
	}
	if e.jobs != nil {
		errs = append(errs, e.jobs.Shutdown())
	}
	if e.bus != nil {
		for _, l := range e.listeners {
			e.bus.Unregister(l.code, l.id)
		}
		e.listeners = nil
	}
	if e.surface != nil {
		errs = append(errs, e.surface.Shutdown())
	}
	e.currentStage = EngineStageShutdown
	return errors.Join(errs...)
}

func (e *Engine) Viewer() *viewer.Viewer {
	return e.viewer
}

func (e *Engine) Catalog() *monument.Catalog {
	return e.catalog
}

func (e *Engine) Surface() platform.Surface {
	return e.surface
}

func (e *Engine) Events() *core.EventBus {
	return e.bus
}

func (e *Engine) Metrics() *core.Metrics {
	return e.metrics
}

func (e *Engine) Assets() *assets.AssetManager {
	return e.assetManager
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) register(code core.EventCode, fn core.FnOnEvent) {
	id := e.bus.Register(code, fn)
	e.listeners = append(e.listeners, listener{code: code, id: id})
}

func (e *Engine) updateTitle() {
	if time.Since(e.lastTitle) < time.Second {
		return
	}
	e.lastTitle = time.Now()
	state := e.viewer.State()
	title := fmt.Sprintf("%s | %s | %.0f fps", e.config.Window.Title, state.Descriptor.Name, e.metrics.FPS())
	if state.Loading {
		title += " | loading"
	}
	if state.Err != nil {
		title += " | " + state.Err.Error()
	}
	e.surface.SetTitle(title)
}

// drainReloads remounts the current monument when its model file changed.
// The watcher fires on its own goroutine, so the work is queued for the loop.
func (e *Engine) drainReloads() {
	for {
		select {
		case slug := <-e.pendingReload:
			if e.current.url == "" || assets.SlugFor(e.current.url) != slug {
				continue
			}
			core.LogInfo("model %s changed, reloading", slug)
			if err := e.ShowModel(context.Background(), e.current.name, e.current.url); err != nil {
				core.LogError("reload failed: %s", err)
			}
		default:
			return
		}
	}
}

func (e *Engine) onEvent(context core.EventContext) bool {
	switch context.Type {
	case core.EVENT_CODE_APPLICATION_QUIT:
		core.LogInfo("EVENT_CODE_APPLICATION_QUIT recieved, shutting down.")
		e.Quit()
		return true
	}
	return false
}

func (e *Engine) onKey(context core.EventContext) bool {
	ke, ok := context.Data.(*core.KeyEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	if ke.KeyCode == core.KEY_ESCAPE {
		// NOTE: Technically firing an event to itself, but there may be other listeners.
		e.bus.Fire(core.EventContext{Type: core.EVENT_CODE_APPLICATION_QUIT})
		return true
	}
	return e.viewer.HandleKey(ke.KeyCode)
}

func (e *Engine) onScroll(context core.EventContext) bool {
	me, ok := context.Data.(*core.MouseEvent)
	if !ok {
		return false
	}
	e.viewer.HandleScroll(me.Scroll)
	return true
}

func (e *Engine) onResized(context core.EventContext) bool {
	se, ok := context.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", context.Type)
		return false
	}
	// Handle minimization
	if se.Width == 0 || se.Height == 0 {
		if !e.isSuspended {
			core.LogInfo("Window minimized, suspending application.")
		}
		e.isSuspended = true
		return false
	}
	if e.isSuspended {
		core.LogInfo("Window restored, resuming application.")
		e.isSuspended = false
	}
	core.LogDebug("Window resize: %d, %d", se.Width, se.Height)
	if e.gameInstance.FnOnResize != nil {
		if err := e.gameInstance.FnOnResize(se.Width, se.Height); err != nil {
			core.LogError(err.Error())
		}
	}
	// the viewer has its own listener
	return false
}

func (e *Engine) onAssetChanged(context core.EventContext) bool {
	ae, ok := context.Data.(*core.AssetChangedEvent)
	if !ok {
		return false
	}
	select {
	case e.pendingReload <- ae.Slug:
	default:
	}
	return false
}
