package scene

import (
	"testing"

	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/colornames"
)

func unitCube(name string) *Node {
	var verts []math.Vertex3D
	for _, x := range []float32{-0.5, 0.5} {
		for _, y := range []float32{-0.5, 0.5} {
			for _, z := range []float32{-0.5, 0.5} {
				verts = append(verts, math.Vertex3D{Position: math.NewVec3(x, y, z)})
			}
		}
	}
	g := metadata.NewGeometry(&metadata.GeometryConfig{Name: name, Vertices: verts, Indices: []uint32{0, 1, 2}})
	return NewMeshNode(name, g, metadata.NewMaterial(name, colornames.Gray, 1, 0))
}

func TestAddRemove(t *testing.T) {
	root := NewNode("root")
	a := NewNode("a")
	b := NewNode("b")
	root.Add(a)
	a.Add(b)

	assert.Same(t, root, a.Parent())
	assert.Same(t, b, root.Find("b"))

	// re-parenting detaches from the old parent
	root.Add(b)
	assert.Empty(t, a.Children())
	assert.Len(t, root.Children(), 2)

	assert.True(t, root.Remove(a))
	assert.False(t, root.Remove(a))
	assert.Nil(t, a.Parent())
}

func TestBoundingBoxFollowsTransforms(t *testing.T) {
	root := NewNode("root")
	group := NewNode("group")
	group.Transform.SetPosition(math.NewVec3(0, 10, 0))
	root.Add(group)

	cube := unitCube("cube")
	cube.Transform.SetUniformScale(2)
	cube.Transform.SetPosition(math.NewVec3(3, 0, 0))
	group.Add(cube)

	box := root.BoundingBox()
	require.False(t, box.IsEmpty())
	assert.True(t, box.Min.Compare(math.NewVec3(2, 9, -1), 1e-5), "min %v", box.Min)
	assert.True(t, box.Max.Compare(math.NewVec3(4, 11, 1), 1e-5), "max %v", box.Max)
}

func TestEmptyGroupHasEmptyBox(t *testing.T) {
	assert.True(t, NewNode("empty").BoundingBox().IsEmpty())
}

func TestMeshesAndClear(t *testing.T) {
	root := NewNode("root")
	root.Add(unitCube("a"))
	root.Add(unitCube("b"))
	assert.Len(t, root.Meshes(), 2)

	root.Clear()
	assert.Empty(t, root.Meshes())
}
