// Package headless is a rendering backend that draws nothing. It keeps the
// same resource bookkeeping as a real backend, which makes it useful for
// batch runs and for checking that callers release what they create.
package headless

import (
	"fmt"
	"sync"

	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
)

type Backend struct {
	// FailInitialize, when set, is returned by Initialize.
	FailInitialize error

	mu          sync.Mutex
	initialized bool
	nextID      uint32
	geometries  map[uint32]*metadata.Geometry
	materials   map[uint32]*metadata.Material
	width       uint32
	height      uint32
	inFrame     bool
	stats       metadata.FrameStats
	created     int
	destroyed   int
}

func New() *Backend {
	return &Backend{
		geometries: make(map[uint32]*metadata.Geometry),
		materials:  make(map[uint32]*metadata.Material),
	}
}

func (b *Backend) Initialize(config *metadata.RendererBackendConfig) error {
	if b.FailInitialize != nil {
		return b.FailInitialize
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.initialized = true
	b.width, b.height = config.Width, config.Height
	return nil
}

func (b *Backend) Shutdown() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.initialized {
		return fmt.Errorf("headless backend is not initialized")
	}
	b.initialized = false
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.width, b.height = width, height
	return nil
}

func (b *Backend) BeginFrame(packet *metadata.RenderPacket) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.inFrame {
		return fmt.Errorf("BeginFrame called twice without EndFrame")
	}
	b.inFrame = true
	b.stats.TrianglesDrawn = 0
	b.stats.MeshesTested = 0
	return nil
}

func (b *Backend) DrawGeometry(data *metadata.GeometryRenderData) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.stats.MeshesTested++
	b.stats.TrianglesDrawn += data.Geometry.TriangleCount()
}

func (b *Backend) EndFrame(deltaTime float64) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.inFrame {
		return fmt.Errorf("EndFrame called without BeginFrame")
	}
	b.inFrame = false
	b.stats.FrameNumber++
	return nil
}

func (b *Backend) CreateGeometry(geometry *metadata.Geometry) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if geometry.InternalID != metadata.InvalidID {
		return fmt.Errorf("geometry %s is already uploaded", geometry.Name)
	}
	b.nextID++
	geometry.InternalID = b.nextID
	b.geometries[b.nextID] = geometry
	b.created++
	return nil
}

func (b *Backend) DestroyGeometry(geometry *metadata.Geometry) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.geometries[geometry.InternalID]; ok {
		delete(b.geometries, geometry.InternalID)
		b.destroyed++
	}
	geometry.InternalID = metadata.InvalidID
}

func (b *Backend) CreateMaterial(material *metadata.Material) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if material.InternalID != metadata.InvalidID {
		return fmt.Errorf("material %s is already uploaded", material.Name)
	}
	b.nextID++
	material.InternalID = b.nextID
	b.materials[b.nextID] = material
	b.created++
	return nil
}

func (b *Backend) DestroyMaterial(material *metadata.Material) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.materials[material.InternalID]; ok {
		delete(b.materials, material.InternalID)
		b.destroyed++
	}
	material.InternalID = metadata.InvalidID
}

func (b *Backend) Stats() metadata.FrameStats {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.stats
}

// Live returns how many geometries and materials are still uploaded.
func (b *Backend) Live() (geometries, materials int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.geometries), len(b.materials)
}

// Totals returns how many resources were ever created and destroyed.
func (b *Backend) Totals() (created, destroyed int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.created, b.destroyed
}

func (b *Backend) Initialized() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.initialized
}

func (b *Backend) Size() (uint32, uint32) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.width, b.height
}
