package metadata

import (
	"testing"

	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/stretchr/testify/assert"
	"golang.org/x/image/colornames"
)

func triangle() *GeometryConfig {
	return &GeometryConfig{
		Name: "tri",
		Vertices: []math.Vertex3D{
			{Position: math.NewVec3(-1, 0, 0)},
			{Position: math.NewVec3(1, 0, 0)},
			{Position: math.NewVec3(0, 2, 1)},
		},
		Indices: []uint32{0, 1, 2},
	}
}

func TestNewGeometryExtents(t *testing.T) {
	g := NewGeometry(triangle())
	assert.Equal(t, InvalidID, g.InternalID)
	assert.Equal(t, math.NewVec3(-1, 0, 0), g.Extents.Min)
	assert.Equal(t, math.NewVec3(1, 2, 1), g.Extents.Max)
	assert.Equal(t, math.NewVec3(0, 1, 0.5), g.Center)
}

func TestGeometryMeshRenderer(t *testing.T) {
	g := NewGeometry(triangle())
	assert.Equal(t, 3, g.VertexCount())
	assert.Equal(t, 1, g.TriangleCount())
	assert.Equal(t, [3]int{0, 1, 2}, g.GetFace(0))

	pos, _, _ := g.GetVertex(2)
	assert.InDelta(t, 2.0, pos.Y, 1e-9)

	min, max := g.GetBounds()
	assert.InDelta(t, -1.0, min.X, 1e-9)
	assert.InDelta(t, 1.0, max.Z, 1e-9)
}

func TestMaterialColour(t *testing.T) {
	m := NewMaterial("marble", colornames.White, 0.3, 0.1)
	r, g, b, a := m.RGBA8()
	assert.Equal(t, [4]uint8{255, 255, 255, 255}, [4]uint8{r, g, b, a})

	m = NewMaterial("red", colornames.Red, 1, 0)
	assert.InDelta(t, 1.0, m.DiffuseColour.X, 1e-6)
	assert.InDelta(t, 0.0, m.DiffuseColour.Y, 1e-6)
}
