package metadata

import "github.com/spaghettifunk/heritage/engine/math"

type RendererBackendConfig struct {
	ApplicationName string
	Width           uint32
	Height          uint32
	ClearColour     math.Vec4
}

type LightKind uint8

const (
	LightKindAmbient LightKind = iota
	LightKindDirectional
)

/**
 * @brief A light in the scene. Directional lights shine along Direction,
 * ambient lights ignore it.
 */
type Light struct {
	Name      string
	Kind      LightKind
	Direction math.Vec3
	Colour    math.Vec4
	Intensity float32
}

/**
 * @brief The camera state needed to draw one frame.
 */
type CameraData struct {
	Position math.Vec3
	Target   math.Vec3
	Up       math.Vec3
	// Vertical field of view in radians.
	FOV  float32
	Near float32
	Far  float32
}

type GeometryRenderData struct {
	Model    math.Mat4
	Geometry *Geometry
	Material *Material
}

/**
 * @brief Everything the backend needs to draw a single frame.
 */
type RenderPacket struct {
	DeltaTime  float64
	Camera     CameraData
	Lights     []Light
	Geometries []GeometryRenderData
}

// FrameStats reports what the backend did with the last packet.
type FrameStats struct {
	FrameNumber    uint64
	TrianglesDrawn int
	MeshesTested   int
	MeshesCulled   int
}
