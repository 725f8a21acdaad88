package geometry

import (
	"testing"

	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const eps = 1e-4

// assertOutwardWinding checks every non-degenerate triangle faces the same
// way as its vertex normals.
func assertOutwardWinding(t *testing.T, g *metadata.Geometry) {
	t.Helper()
	require.Zero(t, len(g.Indices)%3)
	for i := 0; i < g.TriangleCount(); i++ {
		f := g.GetFace(i)
		v0, v1, v2 := g.Vertices[f[0]], g.Vertices[f[1]], g.Vertices[f[2]]
		face := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
		if face.Length() < 1e-6 {
			continue
		}
		avg := v0.Normal.Add(v1.Normal).Add(v2.Normal)
		require.GreaterOrEqual(t, face.Dot(avg), float32(-eps), "%s triangle %d winds inward", g.Name, i)
	}
}

func assertExtents(t *testing.T, g *metadata.Geometry, min, max math.Vec3) {
	t.Helper()
	assert.True(t, g.Extents.Min.Compare(min, eps), "%s min %v, want %v", g.Name, g.Extents.Min, min)
	assert.True(t, g.Extents.Max.Compare(max, eps), "%s max %v, want %v", g.Name, g.Extents.Max, max)
}

func TestBox(t *testing.T) {
	g := Box(10, 0.5, 4)
	assert.Equal(t, 24, g.VertexCount())
	assert.Equal(t, 12, g.TriangleCount())
	assertExtents(t, g, math.NewVec3(-5, -0.25, -2), math.NewVec3(5, 0.25, 2))
	assertOutwardWinding(t, g)
}

func TestSphere(t *testing.T) {
	g := Sphere(2, 16, 12)
	assertExtents(t, g, math.NewVec3(-2, -2, -2), math.NewVec3(2, 2, 2))
	assertOutwardWinding(t, g)
}

func TestHemisphereIsUpperHalf(t *testing.T) {
	g := Hemisphere(2, 32, 16)
	assert.InDelta(t, 0, g.Extents.Min.Y, eps)
	assert.InDelta(t, 2, g.Extents.Max.Y, eps)
	assert.InDelta(t, 2, g.Extents.Max.X, eps)
	assertOutwardWinding(t, g)
}

func TestCylinderFrustum(t *testing.T) {
	g := Cylinder(0.5, 1, 4, 24)
	assertExtents(t, g, math.NewVec3(-1, -2, -1), math.NewVec3(1, 2, 1))
	assertOutwardWinding(t, g)

	// a narrower top ring
	for _, v := range g.Vertices {
		if v.Position.Y > 2-eps {
			r := math.NewVec3(v.Position.X, 0, v.Position.Z).Length()
			assert.LessOrEqual(t, r, float32(0.5+eps))
		}
	}
}

func TestConeAndPyramid(t *testing.T) {
	cone := Cone(0.15, 1.2, 16)
	assert.InDelta(t, 0.6, cone.Extents.Max.Y, eps)
	assert.InDelta(t, -0.6, cone.Extents.Min.Y, eps)
	assertOutwardWinding(t, cone)

	pyramid := Cone(3, 2, 4)
	// four sides plus a four-triangle base fan
	assert.Equal(t, 4+4, pyramid.TriangleCount())
	assertOutwardWinding(t, pyramid)
}

func TestTorusLiesFlat(t *testing.T) {
	g := Torus(1.5, 0.1, 8, 32)
	assertExtents(t, g, math.NewVec3(-1.6, -0.1, -1.6), math.NewVec3(1.6, 0.1, 1.6))
	assertOutwardWinding(t, g)
}

func TestDisc(t *testing.T) {
	g := Disc(12, 48)
	assert.InDelta(t, 0, g.Extents.Size().Y, eps)
	assert.InDelta(t, 24, g.Extents.Size().X, 0.01)
	assertOutwardWinding(t, g)
}

func TestSegmentCountsAreClamped(t *testing.T) {
	assert.NotZero(t, Sphere(1, 0, 0).TriangleCount())
	assert.NotZero(t, Cylinder(1, 1, 1, 1).TriangleCount())
	assert.NotZero(t, Torus(1, 0.2, 0, 0).TriangleCount())
}
