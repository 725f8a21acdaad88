package export

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/qmuntal/gltf"
	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/spaghettifunk/heritage/engine/monument"
	"github.com/spaghettifunk/heritage/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentHasOneNodePerMesh(t *testing.T) {
	group := scene.NewNode("taj")
	monument.BuildTajMahal(group)

	doc, err := Document(group)
	require.NoError(t, err)
	meshes := len(group.Meshes())
	assert.Len(t, doc.Meshes, meshes)
	assert.Len(t, doc.Nodes, meshes)
	assert.Len(t, doc.Materials, meshes)
	assert.Len(t, doc.Scenes[0].Nodes, meshes)
	assert.Equal(t, generator, doc.Asset.Generator)
}

func TestWriteGLBRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "qutub.glb")
	require.NoError(t, Monument("Qutub Minar", path))

	doc, err := gltf.Open(path)
	require.NoError(t, err)
	names := map[string]bool{}
	for _, m := range doc.Meshes {
		names[m.Name] = true
	}
	assert.True(t, names["finial"])
	assert.True(t, names["section-0"])
}

func TestEmptySceneIsRejected(t *testing.T) {
	_, err := Document(scene.NewNode("empty"))
	assert.ErrorIs(t, err, core.ErrDegenerateGeometry)
}

func TestCatalogExport(t *testing.T) {
	catalog, err := monument.DefaultCatalog()
	require.NoError(t, err)
	dir := t.TempDir()

	paths, err := Catalog(context.Background(), catalog, dir, 3)
	require.NoError(t, err)
	require.Len(t, paths, len(catalog.Monuments))
	for i, p := range paths {
		assert.Equal(t, filepath.Join(dir, catalog.Monuments[i].Slug+".glb"), p)
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
}

func TestCatalogExportCancelled(t *testing.T) {
	catalog, err := monument.DefaultCatalog()
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = Catalog(ctx, catalog, t.TempDir(), 1)
	assert.ErrorIs(t, err, context.Canceled)
}
