package assets

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/taigrr/trophy/pkg/math3d"
	"github.com/taigrr/trophy/pkg/models"
)

const wedgeOBJ = `# wedge
v 0 0 0
v 2 0 0
v 2 4 0
v 0 4 0
v 0 0 1
f 1 2 3
f 1 3 4
f 1 2 5
`

const pointOBJ = `v 1 1 1
v 1 1 1
v 1 1 1
f 1 2 3
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func newLoader(t *testing.T, origin, modelsDir string) *Loader {
	t.Helper()
	l, err := NewLoader(LoaderConfig{Origin: origin, ModelsDir: modelsDir, FitSize: 5, Timeout: 5 * time.Second})
	require.NoError(t, err)
	return l
}

func TestResolve(t *testing.T) {
	dir := t.TempDir()
	local := writeFile(t, dir, "konark.obj", wedgeOBJ)
	l := newLoader(t, "http://models.example/static", dir)

	tests := []struct {
		name string
		raw  string
		want Source
	}{
		{"absolute http", "https://cdn.example/m.obj", Source{Remote: "https://cdn.example/m.obj"}},
		{"file url", "file://" + filepath.ToSlash(local), Source{Local: local}},
		{"local path", local, Source{Local: local}},
		{"models dir", "models/konark.obj", Source{Local: local}},
		{"leading slash", "/models/other.obj", Source{Remote: "http://models.example/static/models/other.obj"}},
		{"no leading slash", "models/other.obj", Source{Remote: "http://models.example/static/models/other.obj"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := l.Resolve(tt.raw)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := l.Resolve("  ")
	assert.Error(t, err)

	_, err = newLoader(t, "", "").Resolve("nowhere.obj")
	assert.Error(t, err)
}

func TestLoadFitsAndCentres(t *testing.T) {
	dir := t.TempDir()
	p := writeFile(t, dir, "wedge.obj", wedgeOBJ)
	l := newLoader(t, "", "")

	var loaded, total int64
	node, err := l.Load(context.Background(), p, func(l, tt int64) { loaded, total = l, tt })
	require.NoError(t, err)
	require.NotNil(t, node)
	assert.Equal(t, total, loaded)
	assert.Positive(t, total)

	box := node.BoundingBox()
	size := box.Size()
	assert.InDelta(t, 5.0, size.MaxComponent(), 1e-4)
	assert.InDelta(t, 2.5, size.X, 1e-4)
	center := box.Center()
	assert.InDelta(t, 0, center.X, 1e-4)
	assert.InDelta(t, 0, center.Y, 1e-4)
	assert.InDelta(t, 0, center.Z, 1e-4)
	assert.Len(t, node.Meshes(), 1)
}

func TestLoadOverHTTPReportsProgress(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/wedge.obj" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Length", strconv.Itoa(len(wedgeOBJ)))
		_, _ = w.Write([]byte(wedgeOBJ))
	}))
	defer srv.Close()
	l := newLoader(t, srv.URL, "")

	var calls int
	var last, total int64
	node, err := l.Load(context.Background(), "/models/wedge.obj", func(l, tt int64) {
		calls++
		last, total = l, tt
	})
	require.NoError(t, err)
	assert.NotNil(t, node)
	assert.Positive(t, calls)
	assert.Equal(t, int64(len(wedgeOBJ)), last)
	assert.Equal(t, int64(len(wedgeOBJ)), total)

	_, err = l.Load(context.Background(), "models/missing.obj", nil)
	assert.ErrorIs(t, err, core.ErrAssetLoad)
}

func TestLoadFailures(t *testing.T) {
	dir := t.TempDir()
	l := newLoader(t, "", "")

	_, err := l.Load(context.Background(), writeFile(t, dir, "point.obj", pointOBJ), nil)
	assert.ErrorIs(t, err, core.ErrAssetLoad, "zero-size mesh")

	_, err = l.Load(context.Background(), writeFile(t, dir, "empty.obj", "# nothing\n"), nil)
	assert.ErrorIs(t, err, core.ErrAssetLoad, "empty mesh")

	_, err = l.Load(context.Background(), filepath.Join(dir, "absent.obj"), nil)
	assert.ErrorIs(t, err, core.ErrAssetLoad)
}

func TestLoadCancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()
	l := newLoader(t, srv.URL, "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := l.Load(ctx, "slow.obj", nil)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestDegenerateMesh(t *testing.T) {
	l := newLoader(t, "", "")
	mesh := models.NewMesh("flat")
	for i := 0; i < 3; i++ {
		mesh.Vertices = append(mesh.Vertices, models.MeshVertex{Position: math3d.V3(1, 1, 1)})
	}
	mesh.Faces = append(mesh.Faces, models.Face{V: [3]int{0, 1, 2}})

	_, err := l.buildNode("flat", mesh)
	assert.ErrorIs(t, err, core.ErrDegenerateGeometry)

	_, err = GeometryFromMesh("none", models.NewMesh("none"))
	assert.ErrorIs(t, err, core.ErrDegenerateGeometry)

	mesh.Faces = append(mesh.Faces, models.Face{V: [3]int{0, 1, 7}})
	_, err = GeometryFromMesh("bad", mesh)
	assert.Error(t, err)
}

func TestAssetManagerIndexesAndWatches(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Konark.obj", wedgeOBJ)
	writeFile(t, dir, "notes.txt", "skip")

	bus := core.NewEventBus()
	changed := make(chan *core.AssetChangedEvent, 4)
	bus.Register(core.EVENT_CODE_ASSET_CHANGED, func(ctx core.EventContext) bool {
		select {
		case changed <- ctx.Data.(*core.AssetChangedEvent):
		default:
		}
		return true
	})

	am := NewAssetManager(bus)
	require.NoError(t, am.Initialize(dir, true))
	defer am.Shutdown()

	a, ok := am.Lookup("konark")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "Konark.obj"), a.Path)
	assert.Len(t, am.List(), 1)

	writeFile(t, dir, "red-fort.obj", wedgeOBJ)
	select {
	case ev := <-changed:
		assert.Equal(t, "red-fort", ev.Slug)
	case <-time.After(5 * time.Second):
		t.Fatal("no asset changed event")
	}
	_, ok = am.Lookup("red-fort")
	assert.True(t, ok)

	require.NoError(t, am.Shutdown())
	require.NoError(t, am.Shutdown())
}

func TestAssetManagerMissingDir(t *testing.T) {
	am := NewAssetManager(core.NewEventBus())
	require.NoError(t, am.Initialize(filepath.Join(t.TempDir(), "absent"), false))
	assert.Empty(t, am.List())
}

func TestSlugFor(t *testing.T) {
	assert.Equal(t, "taj-mahal", SlugFor("/x/Taj-Mahal.OBJ"))
}
