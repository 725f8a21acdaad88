package metadata

import (
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/taigrr/trophy/pkg/math3d"
)

/** @brief Marks a backend handle that has not been created yet. */
const InvalidID uint32 = 4294967295

/**
 * @brief Represents the configuration for a geometry.
 */
type GeometryConfig struct {
	/** @brief An array of Vertices. */
	Vertices []math.Vertex3D
	/** @brief An array of Indices. Every three make a counter-clockwise triangle. */
	Indices []uint32
	/** @brief The Name of the geometry. */
	Name string
}

/**
 * @brief Represents actual geometry in the world.
 * Typically (but not always, depending on use) paired with a material.
 */
type Geometry struct {
	/** @brief The internal geometry identifier, used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief The geometry generation. Incremented every time the geometry changes. */
	Generation uint16
	/** @brief The center of the geometry in local coordinates. */
	Center math.Vec3
	/** @brief The extents of the geometry in local coordinates. */
	Extents math.Extents3D
	/** @brief The geometry name. */
	Name string

	Vertices []math.Vertex3D
	Indices  []uint32
}

// NewGeometry builds a geometry from config and computes its extents.
func NewGeometry(config *GeometryConfig) *Geometry {
	g := &Geometry{
		InternalID: InvalidID,
		Name:       config.Name,
		Vertices:   config.Vertices,
		Indices:    config.Indices,
	}
	g.RecalculateExtents()
	return g
}

// RecalculateExtents refreshes Extents and Center from the vertex positions.
func (g *Geometry) RecalculateExtents() {
	e := math.NewExtentsEmpty()
	for _, v := range g.Vertices {
		e = e.ExpandPoint(v.Position)
	}
	g.Extents = e
	g.Center = e.Center()
	g.Generation++
}

// The methods below satisfy render.MeshRenderer and render.BoundedMeshRenderer
// from github.com/taigrr/trophy/pkg/render.

func (g *Geometry) VertexCount() int {
	return len(g.Vertices)
}

func (g *Geometry) TriangleCount() int {
	return len(g.Indices) / 3
}

func (g *Geometry) GetVertex(i int) (pos, normal math3d.Vec3, uv math3d.Vec2) {
	v := g.Vertices[i]
	return toVec3(v.Position), toVec3(v.Normal), math3d.V2(float64(v.Texcoord.X), float64(v.Texcoord.Y))
}

func (g *Geometry) GetFace(i int) [3]int {
	return [3]int{int(g.Indices[i*3]), int(g.Indices[i*3+1]), int(g.Indices[i*3+2])}
}

func (g *Geometry) GetBounds() (min, max math3d.Vec3) {
	return toVec3(g.Extents.Min), toVec3(g.Extents.Max)
}

func toVec3(v math.Vec3) math3d.Vec3 {
	return math3d.V3(float64(v.X), float64(v.Y), float64(v.Z))
}
