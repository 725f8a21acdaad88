package assets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
	"github.com/spaghettifunk/heritage/engine/scene"
	"github.com/taigrr/trophy/pkg/models"
	"golang.org/x/image/colornames"
)

// ProgressFunc reports bytes loaded so far. total is -1 when unknown.
type ProgressFunc func(loaded, total int64)

type LoaderConfig struct {
	// Origin resolves relative model URLs, e.g. "http://localhost:8080".
	Origin string
	// ModelsDir is searched for a local copy before going to the network.
	ModelsDir string
	// FitSize is the largest bounding box dimension of a loaded model.
	FitSize float32
	Timeout time.Duration
}

// Loader fetches OBJ models from disk or HTTP and turns them into scene
// nodes sized for the viewer.
type Loader struct {
	origin    *url.URL
	modelsDir string
	fitSize   float32
	client    *http.Client
	logger    *log.Logger
}

func NewLoader(config LoaderConfig) (*Loader, error) {
	l := &Loader{
		modelsDir: config.ModelsDir,
		fitSize:   config.FitSize,
		client:    &http.Client{Timeout: config.Timeout},
		logger:    core.NewLogger("assets"),
	}
	if l.fitSize <= 0 {
		l.fitSize = 5
	}
	if config.Origin != "" {
		u, err := url.Parse(config.Origin)
		if err != nil {
			return nil, fmt.Errorf("invalid asset origin %q: %w", config.Origin, err)
		}
		l.origin = u
	}
	return l, nil
}

// Source is where a model URL points after resolution. Exactly one of the
// fields is set.
type Source struct {
	Remote string
	Local  string
}

// Resolve maps a model URL to a local file or a remote URL. Absolute http(s)
// and file:// URLs are taken as is. Anything else is looked up on disk, then
// in the models directory, and finally resolved against the origin with or
// without a leading slash.
func (l *Loader) Resolve(raw string) (Source, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Source{}, errors.New("empty model url")
	}

	if u, err := url.Parse(raw); err == nil {
		switch u.Scheme {
		case "http", "https":
			return Source{Remote: u.String()}, nil
		case "file":
			p := u.Path
			if p == "" {
				p = u.Opaque
			}
			return Source{Local: filepath.FromSlash(p)}, nil
		}
	}

	if _, err := os.Stat(raw); err == nil {
		return Source{Local: raw}, nil
	}
	if l.modelsDir != "" {
		candidate := filepath.Join(l.modelsDir, path.Base(filepath.ToSlash(raw)))
		if _, err := os.Stat(candidate); err == nil {
			return Source{Local: candidate}, nil
		}
	}
	if l.origin != nil {
		return Source{Remote: l.origin.JoinPath(strings.TrimPrefix(raw, "/")).String()}, nil
	}
	return Source{}, fmt.Errorf("cannot resolve %q: not a local file and no origin configured", raw)
}

// Load fetches and parses the OBJ at rawURL. On success the returned node is
// scaled so that its largest dimension equals the fit size and centred on the
// origin. Every failure wraps core.ErrAssetLoad.
func (l *Loader) Load(ctx context.Context, rawURL string, progress ProgressFunc) (*scene.Node, error) {
	if progress == nil {
		progress = func(int64, int64) {}
	}

	src, err := l.Resolve(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", core.ErrAssetLoad, err)
	}

	file := src.Local
	if src.Remote != "" {
		tmp, err := l.download(ctx, src.Remote, progress)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrAssetLoad, err)
		}
		defer os.Remove(tmp)
		file = tmp
	} else {
		info, err := os.Stat(file)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", core.ErrAssetLoad, err)
		}
		progress(info.Size(), info.Size())
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	mesh, err := models.LoadOBJ(file)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to parse %s: %w", core.ErrAssetLoad, rawURL, err)
	}

	name := strings.TrimSuffix(path.Base(filepath.ToSlash(rawURL)), path.Ext(rawURL))
	node, err := l.buildNode(name, mesh)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", core.ErrAssetLoad, rawURL, err)
	}
	l.logger.Info("model loaded", "url", rawURL, "vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount())
	return node, nil
}

func (l *Loader) download(ctx context.Context, remote string, progress ProgressFunc) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, remote, nil)
	if err != nil {
		return "", err
	}
	resp, err := l.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("GET %s: %s", remote, resp.Status)
	}

	tmp, err := os.CreateTemp("", "heritage-*.obj")
	if err != nil {
		return "", err
	}
	reader := &progressReader{r: resp.Body, total: resp.ContentLength, fn: progress}
	if _, err := io.Copy(tmp, reader); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	return tmp.Name(), nil
}

type progressReader struct {
	r      io.Reader
	loaded int64
	total  int64
	fn     ProgressFunc
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.loaded += int64(n)
		p.fn(p.loaded, p.total)
	}
	return n, err
}

func (l *Loader) buildNode(name string, mesh *models.Mesh) (*scene.Node, error) {
	geometry, err := GeometryFromMesh(name, mesh)
	if err != nil {
		return nil, err
	}

	size := geometry.Extents.Size()
	maxDim := size.MaxComponent()
	if maxDim <= 0 || !math.IsFinite(maxDim) {
		return nil, fmt.Errorf("%w: largest dimension is %v", core.ErrDegenerateGeometry, maxDim)
	}

	scale := l.fitSize / maxDim
	center := geometry.Extents.Center()

	root := scene.NewNode("model:" + name)
	child := scene.NewMeshNode(name, geometry, metadata.NewMaterial(name, colornames.Tan, 0.8, 0))
	child.Transform.SetUniformScale(scale)
	child.Transform.SetPosition(center.MulScalar(-scale))
	root.Add(child)
	return root, nil
}

// GeometryFromMesh copies a parsed trophy mesh into engine geometry.
func GeometryFromMesh(name string, mesh *models.Mesh) (*metadata.Geometry, error) {
	if mesh == nil || len(mesh.Vertices) == 0 || len(mesh.Faces) == 0 {
		return nil, fmt.Errorf("%w: mesh has no triangles", core.ErrDegenerateGeometry)
	}

	vertices := make([]math.Vertex3D, len(mesh.Vertices))
	for i, v := range mesh.Vertices {
		vertices[i] = math.Vertex3D{
			Position: math.NewVec3(float32(v.Position.X), float32(v.Position.Y), float32(v.Position.Z)),
			Normal:   math.NewVec3(float32(v.Normal.X), float32(v.Normal.Y), float32(v.Normal.Z)),
			Texcoord: math.NewVec2(float32(v.UV.X), float32(v.UV.Y)),
		}
	}
	indices := make([]uint32, 0, len(mesh.Faces)*3)
	for _, f := range mesh.Faces {
		for _, idx := range f.V {
			if idx < 0 || idx >= len(vertices) {
				return nil, fmt.Errorf("face index %d out of range", idx)
			}
			indices = append(indices, uint32(idx))
		}
	}

	return metadata.NewGeometry(&metadata.GeometryConfig{
		Name:     name,
		Vertices: vertices,
		Indices:  indices,
	}), nil
}
