// Package software rasterizes frames on the CPU with the trophy renderer.
package software

import (
	"fmt"
	stdmath "math"

	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/render"
)

type Backend struct {
	fb         *render.Framebuffer
	camera     *render.Camera
	rasterizer *render.Rasterizer
	clear      render.Color

	nextID     uint32
	geometries map[uint32]*metadata.Geometry
	materials  map[uint32]*metadata.Material

	lights  []metadata.Light
	stats   metadata.FrameStats
	inFrame bool
}

func New() *Backend {
	return &Backend{
		geometries: make(map[uint32]*metadata.Geometry),
		materials:  make(map[uint32]*metadata.Material),
	}
}

func (b *Backend) Initialize(config *metadata.RendererBackendConfig) error {
	if config.Width == 0 || config.Height == 0 {
		return fmt.Errorf("invalid framebuffer size %dx%d", config.Width, config.Height)
	}
	b.fb = render.NewFramebuffer(int(config.Width), int(config.Height))
	b.camera = render.NewCamera()
	b.camera.SetAspectRatio(float64(config.Width) / float64(config.Height))
	b.rasterizer = render.NewRasterizer(b.camera, b.fb)
	// closed solids plus a depth buffer; both windings are drawn
	b.rasterizer.DisableBackfaceCulling = true
	b.clear = toColour(config.ClearColour)

	core.LogInfo("software renderer initialized (%dx%d)", config.Width, config.Height)
	return nil
}

func (b *Backend) Shutdown() error {
	b.rasterizer = nil
	b.camera = nil
	b.fb = nil
	return nil
}

func (b *Backend) Resized(width, height uint32) error {
	if b.fb == nil {
		return fmt.Errorf("software backend is not initialized")
	}
	// a minimized window reports 0x0; keep the old buffer until it returns
	if width == 0 || height == 0 {
		return nil
	}
	b.fb = render.NewFramebuffer(int(width), int(height))
	b.rasterizer = render.NewRasterizer(b.camera, b.fb)
	b.rasterizer.DisableBackfaceCulling = true
	b.camera.SetAspectRatio(float64(width) / float64(height))
	return nil
}

func (b *Backend) BeginFrame(packet *metadata.RenderPacket) error {
	if b.fb == nil {
		return fmt.Errorf("software backend is not initialized")
	}
	if b.inFrame {
		return fmt.Errorf("BeginFrame called twice without EndFrame")
	}
	b.inFrame = true

	cam := packet.Camera
	position := cam.Position
	// looking straight down the up axis has no defined orientation
	if cam.Target.Sub(position).Normalized().Cross(math.NewVec3Up()).Length() < 1e-4 {
		position.Z += 1e-3 * (cam.Target.Distance(position) + 1)
	}
	b.camera.SetFOV(float64(cam.FOV))
	b.camera.SetClipPlanes(float64(cam.Near), float64(cam.Far))
	b.camera.SetPosition(toVec3(position))
	b.camera.LookAt(toVec3(cam.Target))
	b.rasterizer.InvalidateFrustum()

	b.lights = packet.Lights
	b.stats.TrianglesDrawn = 0
	b.stats.MeshesTested = 0
	b.stats.MeshesCulled = 0

	b.fb.Clear(b.clear)
	b.rasterizer.ClearDepth()
	return nil
}

func (b *Backend) DrawGeometry(data *metadata.GeometryRenderData) {
	g := data.Geometry
	if g == nil || len(g.Indices) == 0 {
		return
	}
	b.stats.MeshesTested++

	world := g.Extents.Transform(data.Model)
	if !b.rasterizer.IsVisible(render.AABB{Min: toVec3(world.Min), Max: toVec3(world.Max)}) {
		b.stats.MeshesCulled++
		return
	}

	base := math.NewVec4(0.8, 0.8, 0.8, 1)
	if data.Material != nil {
		base = data.Material.DiffuseColour
	}

	for i := 0; i+2 < len(g.Indices); i += 3 {
		p0 := g.Vertices[g.Indices[i]].Position.Transform(data.Model)
		p1 := g.Vertices[g.Indices[i+1]].Position.Transform(data.Model)
		p2 := g.Vertices[g.Indices[i+2]].Position.Transform(data.Model)

		normal := p1.Sub(p0).Cross(p2.Sub(p0))
		if normal.LengthSquared() == 0 {
			continue
		}
		lit := Shade(base, normal.Normalized(), b.lights)
		b.rasterizer.DrawTriangleFlat(toVec3(p0), toVec3(p1), toVec3(p2), toColour(lit))
		b.stats.TrianglesDrawn++
	}
}

func (b *Backend) EndFrame(deltaTime float64) error {
	if !b.inFrame {
		return fmt.Errorf("EndFrame called without BeginFrame")
	}
	b.inFrame = false
	b.stats.FrameNumber++
	return nil
}

func (b *Backend) CreateGeometry(geometry *metadata.Geometry) error {
	if geometry.InternalID != metadata.InvalidID {
		return fmt.Errorf("geometry %s is already uploaded", geometry.Name)
	}
	b.nextID++
	geometry.InternalID = b.nextID
	b.geometries[b.nextID] = geometry
	return nil
}

func (b *Backend) DestroyGeometry(geometry *metadata.Geometry) {
	delete(b.geometries, geometry.InternalID)
	geometry.InternalID = metadata.InvalidID
}

func (b *Backend) CreateMaterial(material *metadata.Material) error {
	if material.InternalID != metadata.InvalidID {
		return fmt.Errorf("material %s is already uploaded", material.Name)
	}
	b.nextID++
	material.InternalID = b.nextID
	b.materials[b.nextID] = material
	return nil
}

func (b *Backend) DestroyMaterial(material *metadata.Material) {
	delete(b.materials, material.InternalID)
	material.InternalID = metadata.InvalidID
}

func (b *Backend) Stats() metadata.FrameStats {
	return b.stats
}

// Framebuffer exposes the last rendered frame.
func (b *Backend) Framebuffer() *render.Framebuffer {
	return b.fb
}

// Shade lights a flat face with the given world-space normal. Ambient lights
// add their intensity, directional lights add a Lambert term.
func Shade(base math.Vec4, normal math.Vec3, lights []metadata.Light) math.Vec4 {
	if len(lights) == 0 {
		return base
	}
	var r, g, b float32
	for _, l := range lights {
		var k float32
		switch l.Kind {
		case metadata.LightKindAmbient:
			k = l.Intensity
		case metadata.LightKindDirectional:
			toLight := l.Direction.MulScalar(-1).Normalized()
			k = l.Intensity * max(0, normal.Dot(toLight))
		}
		r += k * l.Colour.X
		g += k * l.Colour.Y
		b += k * l.Colour.Z
	}
	return math.NewVec4(
		math.Clamp(base.X*r, 0, 1),
		math.Clamp(base.Y*g, 0, 1),
		math.Clamp(base.Z*b, 0, 1),
		base.W,
	)
}

func toVec3(v math.Vec3) math3d.Vec3 {
	return math3d.V3(float64(v.X), float64(v.Y), float64(v.Z))
}

func toColour(c math.Vec4) render.Color {
	return render.RGB(channel(c.X), channel(c.Y), channel(c.Z))
}

func channel(v float32) uint8 {
	return uint8(stdmath.Round(float64(math.Clamp(v, 0, 1)) * 255))
}
