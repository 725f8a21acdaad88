package renderer

import "github.com/spaghettifunk/heritage/engine/renderer/metadata"

// RendererBackend is implemented by every rendering backend. A backend is
// owned by exactly one Renderer and is never shared.
type RendererBackend interface {
	Initialize(config *metadata.RendererBackendConfig) error
	Shutdown() error
	Resized(width, height uint32) error
	BeginFrame(packet *metadata.RenderPacket) error
	DrawGeometry(data *metadata.GeometryRenderData)
	EndFrame(deltaTime float64) error
	CreateGeometry(geometry *metadata.Geometry) error
	DestroyGeometry(geometry *metadata.Geometry)
	CreateMaterial(material *metadata.Material) error
	DestroyMaterial(material *metadata.Material)
	Stats() metadata.FrameStats
}
