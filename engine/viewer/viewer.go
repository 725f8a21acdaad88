// Package viewer runs one monument viewing session: it owns the renderer,
// scene graph, camera rig and lights between Mount and Unmount.
package viewer

import (
	"context"
	"errors"
	"fmt"
	stdmath "math"
	"sync"
	"sync/atomic"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spaghettifunk/heritage/engine/assets"
	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/spaghettifunk/heritage/engine/geometry"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/monument"
	"github.com/spaghettifunk/heritage/engine/platform"
	"github.com/spaghettifunk/heritage/engine/renderer"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
	"github.com/spaghettifunk/heritage/engine/scene"
	"github.com/spaghettifunk/heritage/engine/systems"
	"golang.org/x/image/colornames"
)

type Stage uint8

const (
	// No session has been mounted yet
	StageIdle Stage = iota
	// Renderer and scene are being created
	StageInitializing
	// Mounted; the first frame has not run yet
	StageReady
	// Mounted and auto-rotating
	StageRotating
	// Mounted with rotation off
	StagePaused
	// Setup failed; see State().Err
	StageError
	// Unmounted
	StageDisposed
)

func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageInitializing:
		return "initializing"
	case StageReady:
		return "ready"
	case StageRotating:
		return "rotating"
	case StagePaused:
		return "paused"
	case StageError:
		return "error"
	case StageDisposed:
		return "disposed"
	default:
		return "unknown"
	}
}

// State is a snapshot of the session as seen by the UI.
type State struct {
	Session    string
	Stage      Stage
	Monument   monument.Identity
	Descriptor monument.Descriptor
	Rotating   bool
	ViewPreset Preset
	Loading    bool
	// Fraction of the model downloaded, or -1 while the size is unknown.
	Progress float64
	Err      error
}

type Stats struct {
	Generation     uint64
	StaleDiscarded uint64
	Frames         uint64
	LiveGeometries int
	LiveMaterials  int
	Frame          metadata.FrameStats
}

// AssetLoader fetches an external model. *assets.Loader implements it.
type AssetLoader interface {
	Load(ctx context.Context, url string, progress assets.ProgressFunc) (*scene.Node, error)
}

type Options struct {
	// NewBackend is called once per mount; the viewer owns what it returns.
	NewBackend  func() renderer.RendererBackend
	Loader      AssetLoader
	Jobs        *systems.JobSystem
	Catalog     *monument.Catalog
	Camera      CameraConfig
	Lights      []metadata.Light
	ClearColour math.Vec4
	AutoRotate  bool
	RotateSpeed float64 // radians per second
	Preset      Preset
	ShowGround  bool
}

type loadResult struct {
	generation uint64
	node       *scene.Node
	err        error
}

type Viewer struct {
	options Options
	logger  *log.Logger

	mu         sync.Mutex
	stage      Stage
	session    uuid.UUID
	identity   monument.Identity
	descriptor monument.Descriptor
	rotating   bool
	preset     Preset
	loading    bool
	loadErr    error
	frames     uint64

	generation     atomic.Uint64
	staleDiscarded atomic.Uint64
	loaded         atomic.Int64
	total          atomic.Int64
	completions    chan loadResult

	surface    platform.Surface
	resizeID   core.ListenerID
	hasResize  bool
	renderer   *renderer.Renderer
	root       *scene.Node
	group      *scene.Node
	ground     *scene.Node
	indicator  *scene.Node
	rig        *CameraRig
	lights     []metadata.Light
	cancelLoad context.CancelFunc
}

func New(options Options) *Viewer {
	if options.Lights == nil {
		options.Lights = DefaultLights()
	}
	if options.Preset == "" {
		options.Preset = Preset3D
	}
	return &Viewer{
		options:     options,
		logger:      core.NewLogger("viewer"),
		stage:       StageIdle,
		rotating:    options.AutoRotate,
		preset:      options.Preset,
		completions: make(chan loadResult, 8),
	}
}

// Mount tears down any previous session and shows the procedural model
// selected for name.
func (v *Viewer) Mount(ctx context.Context, surface platform.Surface, name string) error {
	return v.mount(ctx, surface, name, "")
}

// MountModel shows a placeholder for name and loads the OBJ at url in the
// background. Load failures are reported through State().Err and an error
// indicator mesh; they do not fail the mount.
func (v *Viewer) MountModel(ctx context.Context, surface platform.Surface, name, url string) error {
	if url == "" {
		return fmt.Errorf("%w: empty model url", core.ErrAssetLoad)
	}
	return v.mount(ctx, surface, name, url)
}

func (v *Viewer) mount(ctx context.Context, surface platform.Surface, name, url string) error {
	v.teardown()

	gen := v.generation.Add(1)
	identity := monument.Identify(name)
	descriptor := v.resolve(identity)

	v.mu.Lock()
	v.session = uuid.New()
	v.stage = StageInitializing
	v.identity = identity
	v.descriptor = descriptor
	v.loadErr = nil
	v.loading = false
	v.frames = 0
	v.mu.Unlock()

	v.logger = core.NewLogger("viewer", "session", v.session.String())
	v.logger.Info("mounting", "monument", descriptor.Name, "kind", identity.Kind, "generation", gen)

	if err := v.setup(ctx, surface, identity, url, gen); err != nil {
		v.teardown()
		v.mu.Lock()
		v.stage = StageError
		v.loadErr = err
		v.mu.Unlock()
		v.logger.Error("mount failed", "err", err)
		return err
	}

	v.mu.Lock()
	v.stage = StageReady
	v.mu.Unlock()
	return nil
}

func (v *Viewer) setup(ctx context.Context, surface platform.Surface, identity monument.Identity, url string, gen uint64) error {
	if v.options.NewBackend == nil {
		return fmt.Errorf("%w: no rendering backend configured", core.ErrSetupFailure)
	}
	width, height := surface.Size()
	v.surface = surface
	v.renderer = renderer.New(v.options.NewBackend())
	if err := v.renderer.Initialize(&metadata.RendererBackendConfig{
		ApplicationName: identity.Name,
		Width:           width,
		Height:          height,
		ClearColour:     v.options.ClearColour,
	}); err != nil {
		return err
	}

	v.resizeID = surface.Events().Register(core.EVENT_CODE_RESIZED, v.onResized)
	v.hasResize = true

	v.rig = NewCameraRig(v.options.Camera)
	v.rig.Aspect = aspect(width, height)
	v.lights = v.options.Lights

	v.root = scene.NewNode("scene")
	v.group = scene.NewNode("monument")
	v.root.Add(v.group)

	if url == "" {
		monument.BuilderFor(identity.Kind)(v.group)
	} else {
		v.group.Add(placeholder())
		if err := v.startLoad(ctx, url, gen); err != nil {
			v.showLoadError(err)
		}
	}
	v.placeGround()
	v.rig.Fit(v.group.BoundingBox())
	v.rig.SetPreset(v.preset)
	v.rig.Snap()

	if err := v.renderer.Acquire(v.root); err != nil {
		return fmt.Errorf("%w: %w", core.ErrSetupFailure, err)
	}
	return nil
}

func (v *Viewer) startLoad(ctx context.Context, url string, gen uint64) error {
	if v.options.Loader == nil || v.options.Jobs == nil {
		return fmt.Errorf("%w: no asset loader configured", core.ErrAssetLoad)
	}
	loadCtx, cancel := context.WithCancel(ctx)
	v.cancelLoad = cancel
	v.loaded.Store(0)
	v.total.Store(-1)
	v.mu.Lock()
	v.loading = true
	v.mu.Unlock()

	progress := func(loaded, total int64) {
		if v.generation.Load() != gen {
			return
		}
		v.loaded.Store(loaded)
		v.total.Store(total)
	}

	var node *scene.Node
	deliver := func(r loadResult) {
		select {
		case v.completions <- r:
		case <-loadCtx.Done():
			v.staleDiscarded.Add(1)
		}
	}
	return v.options.Jobs.Submit(loadCtx, systems.JobTask{
		Name: url,
		Run: func(ctx context.Context) error {
			var err error
			node, err = v.options.Loader.Load(ctx, url, progress)
			return err
		},
		OnComplete: func() {
			deliver(loadResult{generation: gen, node: node})
		},
		OnFailure: func(err error) {
			if errors.Is(err, context.Canceled) {
				v.staleDiscarded.Add(1)
				return
			}
			deliver(loadResult{generation: gen, err: err})
		},
	})
}

// Frame runs one step of the render loop: it applies finished loads, moves
// the camera and draws.
func (v *Viewer) Frame(deltaTime float64) error {
	v.mu.Lock()
	stage := v.stage
	v.mu.Unlock()
	switch stage {
	case StageReady, StageRotating, StagePaused:
	default:
		return core.ErrNotMounted
	}

	v.drainCompletions()

	v.mu.Lock()
	rotating := v.rotating
	if rotating {
		v.stage = StageRotating
	} else {
		v.stage = StagePaused
	}
	v.frames++
	v.mu.Unlock()

	if rotating {
		v.rig.Orbit(v.options.RotateSpeed*deltaTime, 0)
	}
	v.rig.Update(deltaTime)

	packet := v.renderer.BuildPacket(v.root, v.rig.CameraData(), v.lights, deltaTime)
	return v.renderer.DrawFrame(packet)
}

func (v *Viewer) drainCompletions() {
	for {
		select {
		case r := <-v.completions:
			v.applyResult(r)
		default:
			return
		}
	}
}

func (v *Viewer) applyResult(r loadResult) {
	if r.generation != v.generation.Load() {
		v.staleDiscarded.Add(1)
		v.logger.Debug("discarding stale load", "generation", r.generation)
		return
	}
	v.mu.Lock()
	v.loading = false
	v.mu.Unlock()

	if r.err != nil {
		v.showLoadError(r.err)
		return
	}

	v.clearGroup()
	v.group.Add(r.node)
	v.placeGround()
	if err := v.renderer.Acquire(v.root); err != nil {
		v.showLoadError(fmt.Errorf("%w: %w", core.ErrAssetLoad, err))
		return
	}
	v.rig.Fit(v.group.BoundingBox())
	v.rig.SetPreset(v.preset)
	v.rig.Snap()
	v.logger.Info("model ready", "meshes", len(v.group.Meshes()))
}

// showLoadError swaps the group contents for the error indicator.
func (v *Viewer) showLoadError(err error) {
	v.mu.Lock()
	v.loadErr = err
	v.loading = false
	v.mu.Unlock()
	v.logger.Error("model load failed", "err", err)

	v.clearGroup()
	v.indicator = errorIndicator()
	v.group.Add(v.indicator)
	if v.renderer != nil {
		if err := v.renderer.Acquire(v.root); err != nil {
			v.logger.Error("failed to upload error indicator", "err", err)
		}
	}
}

func (v *Viewer) clearGroup() {
	if v.renderer != nil {
		v.renderer.Release(v.group)
	}
	v.group.Clear()
	v.indicator = nil
}

// placeGround puts a disc under the group, sized to its footprint.
func (v *Viewer) placeGround() {
	if !v.options.ShowGround {
		return
	}
	if v.ground != nil {
		if v.renderer != nil {
			v.renderer.Release(v.ground)
		}
		v.root.Remove(v.ground)
	}
	box := v.group.BoundingBox()
	size := box.Size()
	radius := 0.75 * max(size.X, size.Z, 1)
	v.ground = scene.NewMeshNode("ground", geometry.Disc(radius, 48), metadata.NewMaterial("ground", colornames.Darkolivegreen, 1, 0))
	v.ground.Transform.SetPosition(math.NewVec3(box.Center().X, box.Min.Y-0.01, box.Center().Z))
	v.root.Add(v.ground)
}

// Unmount releases the renderer, every scene resource and the resize
// listener. It is safe to call on a partial or failed mount and more than
// once.
func (v *Viewer) Unmount() {
	v.teardown()
	v.mu.Lock()
	if v.stage != StageIdle {
		v.stage = StageDisposed
	}
	v.mu.Unlock()
}

func (v *Viewer) teardown() {
	if v.cancelLoad != nil {
		v.cancelLoad()
		v.cancelLoad = nil
	}
	if v.hasResize && v.surface != nil {
		v.surface.Events().Unregister(core.EVENT_CODE_RESIZED, v.resizeID)
		v.hasResize = false
	}
	if v.renderer != nil {
		if err := v.renderer.Shutdown(); err != nil {
			v.logger.Error("renderer shutdown failed", "err", err)
		}
		v.renderer = nil
	}
	if v.root != nil {
		v.root.Clear()
	}
	v.root, v.group, v.ground, v.indicator = nil, nil, nil, nil
	v.surface = nil
}

func (v *Viewer) onResized(ctx core.EventContext) bool {
	e, ok := ctx.Data.(*core.ResizeEvent)
	if !ok {
		core.LogError("wrong event associated with the event type `%d`", ctx.Type)
		return false
	}
	if e.Width == 0 || e.Height == 0 {
		return false
	}
	if v.rig != nil {
		v.rig.Aspect = aspect(e.Width, e.Height)
	}
	if v.renderer != nil {
		if err := v.renderer.OnResize(e.Width, e.Height); err != nil {
			v.logger.Error("resize failed", "err", err)
		}
	}
	return false
}

// SetRotation toggles auto-rotation without rebuilding the scene.
func (v *Viewer) SetRotation(enabled bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.rotating = enabled
	switch v.stage {
	case StageRotating, StagePaused:
		if enabled {
			v.stage = StageRotating
		} else {
			v.stage = StagePaused
		}
	}
}

// SetViewPreset points the camera rig at one of the fixed views.
func (v *Viewer) SetViewPreset(p Preset) {
	v.mu.Lock()
	v.preset = p
	v.mu.Unlock()
	if v.rig != nil {
		v.rig.SetPreset(p)
	}
}

func (v *Viewer) Zoom(delta float64) {
	if v.rig != nil {
		v.rig.Zoom(delta)
	}
}

func (v *Viewer) Orbit(dAzimuth, dPolar float64) {
	if v.rig != nil {
		v.rig.Orbit(dAzimuth, dPolar)
	}
}

// Camera exposes the rig of the current session, nil when unmounted.
func (v *Viewer) Camera() *CameraRig {
	return v.rig
}

// Scene returns the root of the current scene graph, nil when unmounted.
func (v *Viewer) Scene() *scene.Node {
	return v.root
}

func (v *Viewer) State() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	s := State{
		Session:    v.session.String(),
		Stage:      v.stage,
		Monument:   v.identity,
		Descriptor: v.descriptor,
		Rotating:   v.rotating,
		ViewPreset: v.preset,
		Loading:    v.loading,
		Progress:   -1,
		Err:        v.loadErr,
	}
	if total := v.total.Load(); total > 0 {
		s.Progress = stdmath.Min(1, float64(v.loaded.Load())/float64(total))
	}
	return s
}

func (v *Viewer) Stats() Stats {
	v.mu.Lock()
	frames := v.frames
	v.mu.Unlock()
	s := Stats{
		Generation:     v.generation.Load(),
		StaleDiscarded: v.staleDiscarded.Load(),
		Frames:         frames,
	}
	if v.renderer != nil {
		s.LiveGeometries = v.renderer.LiveGeometries()
		s.LiveMaterials = v.renderer.LiveMaterials()
		s.Frame = v.renderer.Stats()
	}
	return s
}

func (v *Viewer) resolve(id monument.Identity) monument.Descriptor {
	if v.options.Catalog != nil {
		return v.options.Catalog.Resolve(id)
	}
	return monument.Resolve(id.Name)
}

func placeholder() *scene.Node {
	n := scene.NewMeshNode("placeholder", geometry.Box(1, 1, 1), metadata.NewMaterial("placeholder", colornames.Lightgray, 1, 0))
	n.Transform.SetPosition(math.NewVec3(0, 0.5, 0))
	return n
}

func errorIndicator() *scene.Node {
	n := scene.NewMeshNode("error-indicator", geometry.Box(1, 1, 1), metadata.NewMaterial("error-indicator", colornames.Red, 1, 0))
	n.Transform.SetPosition(math.NewVec3(0, 0.5, 0))
	return n
}

func aspect(width, height uint32) float32 {
	if height == 0 {
		return 1
	}
	return float32(width) / float32(height)
}
