package renderer

import (
	"fmt"

	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
	"github.com/spaghettifunk/heritage/engine/scene"
)

// Renderer is the frontend over one backend. It remembers every geometry and
// material it uploaded so that Shutdown can release whatever is still live.
type Renderer struct {
	backend     RendererBackend
	initialized bool
	geometries  map[*metadata.Geometry]struct{}
	materials   map[*metadata.Material]struct{}
}

func New(backend RendererBackend) *Renderer {
	return &Renderer{
		backend:    backend,
		geometries: make(map[*metadata.Geometry]struct{}),
		materials:  make(map[*metadata.Material]struct{}),
	}
}

// Initialize creates the backend context. Failures wrap core.ErrSetupFailure.
func (r *Renderer) Initialize(config *metadata.RendererBackendConfig) error {
	if err := r.backend.Initialize(config); err != nil {
		return fmt.Errorf("%w: %w", core.ErrSetupFailure, err)
	}
	r.initialized = true
	return nil
}

// Shutdown releases every live resource and then the backend itself. It is
// safe to call more than once.
func (r *Renderer) Shutdown() error {
	for g := range r.geometries {
		r.backend.DestroyGeometry(g)
		delete(r.geometries, g)
	}
	for m := range r.materials {
		r.backend.DestroyMaterial(m)
		delete(r.materials, m)
	}
	if !r.initialized {
		return nil
	}
	r.initialized = false
	return r.backend.Shutdown()
}

func (r *Renderer) OnResize(width, height uint32) error {
	if !r.initialized {
		return nil
	}
	return r.backend.Resized(width, height)
}

// Acquire uploads the geometry and material of every mesh under node that is
// not live yet.
func (r *Renderer) Acquire(node *scene.Node) error {
	if !r.initialized {
		return core.ErrNotMounted
	}
	for _, mesh := range node.Meshes() {
		if _, ok := r.geometries[mesh.Geometry]; !ok {
			if err := r.backend.CreateGeometry(mesh.Geometry); err != nil {
				return fmt.Errorf("failed to create geometry %s: %w", mesh.Geometry.Name, err)
			}
			r.geometries[mesh.Geometry] = struct{}{}
		}
		if mesh.Material == nil {
			continue
		}
		if _, ok := r.materials[mesh.Material]; !ok {
			if err := r.backend.CreateMaterial(mesh.Material); err != nil {
				return fmt.Errorf("failed to create material %s: %w", mesh.Material.Name, err)
			}
			r.materials[mesh.Material] = struct{}{}
		}
	}
	return nil
}

// Release destroys the backend resources of every mesh under node.
func (r *Renderer) Release(node *scene.Node) {
	for _, mesh := range node.Meshes() {
		if _, ok := r.geometries[mesh.Geometry]; ok {
			r.backend.DestroyGeometry(mesh.Geometry)
			delete(r.geometries, mesh.Geometry)
		}
		if _, ok := r.materials[mesh.Material]; ok {
			r.backend.DestroyMaterial(mesh.Material)
			delete(r.materials, mesh.Material)
		}
	}
}

// BuildPacket collects a render packet for every visible, uploaded mesh
// under root.
func (r *Renderer) BuildPacket(root *scene.Node, camera metadata.CameraData, lights []metadata.Light, deltaTime float64) *metadata.RenderPacket {
	packet := &metadata.RenderPacket{
		DeltaTime: deltaTime,
		Camera:    camera,
		Lights:    lights,
	}
	root.Traverse(func(node *scene.Node, world math.Mat4) bool {
		if !node.Visible {
			return false
		}
		if node.Mesh == nil {
			return true
		}
		if _, ok := r.geometries[node.Mesh.Geometry]; !ok {
			return true
		}
		packet.Geometries = append(packet.Geometries, metadata.GeometryRenderData{
			Model:    world,
			Geometry: node.Mesh.Geometry,
			Material: node.Mesh.Material,
		})
		return true
	})
	return packet
}

// DrawFrame hands one packet to the backend.
func (r *Renderer) DrawFrame(packet *metadata.RenderPacket) error {
	if !r.initialized {
		return core.ErrNotMounted
	}
	if err := r.backend.BeginFrame(packet); err != nil {
		core.LogError(err.Error())
		return err
	}
	for i := range packet.Geometries {
		r.backend.DrawGeometry(&packet.Geometries[i])
	}
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("backend EndFrame failed")
		return err
	}
	return nil
}

func (r *Renderer) Stats() metadata.FrameStats {
	return r.backend.Stats()
}

// LiveGeometries returns the number of geometries currently uploaded.
func (r *Renderer) LiveGeometries() int {
	return len(r.geometries)
}

// LiveMaterials returns the number of materials currently uploaded.
func (r *Renderer) LiveMaterials() int {
	return len(r.materials)
}
