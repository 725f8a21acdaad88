// Package export writes monument scenes to binary glTF files.
package export

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"
	"github.com/spaghettifunk/heritage/engine/core"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/monument"
	"github.com/spaghettifunk/heritage/engine/scene"
	"golang.org/x/sync/errgroup"
)

const generator = "heritage monument viewer"

// Document converts every visible mesh under root into a glTF document. Each
// mesh becomes one node with its world transform baked into the vertices.
func Document(root *scene.Node) (*gltf.Document, error) {
	doc := gltf.NewDocument()
	doc.Asset.Generator = generator

	root.Traverse(func(node *scene.Node, world math.Mat4) bool {
		if !node.Visible {
			return false
		}
		if node.Mesh == nil || node.Mesh.Geometry == nil || len(node.Mesh.Geometry.Indices) == 0 {
			return true
		}
		g := node.Mesh.Geometry

		positions := make([][3]float32, len(g.Vertices))
		normals := make([][3]float32, len(g.Vertices))
		for i, v := range g.Vertices {
			p := v.Position.Transform(world)
			n := v.Normal.TransformDirection(world).Normalized()
			positions[i] = [3]float32{p.X, p.Y, p.Z}
			normals[i] = [3]float32{n.X, n.Y, n.Z}
		}

		posAccessor := modeler.WritePosition(doc, positions)
		normalAccessor := modeler.WriteNormal(doc, normals)
		indicesAccessor := modeler.WriteIndices(doc, g.Indices)

		prim := &gltf.Primitive{
			Attributes: map[string]uint32{
				gltf.POSITION: uint32(posAccessor),
				gltf.NORMAL:   uint32(normalAccessor),
			},
			Indices: gltf.Index(uint32(indicesAccessor)),
		}

		if m := node.Mesh.Material; m != nil {
			c := m.DiffuseColour
			doc.Materials = append(doc.Materials, &gltf.Material{
				Name: m.Name,
				PBRMetallicRoughness: &gltf.PBRMetallicRoughness{
					BaseColorFactor: &[4]float32{c.X, c.Y, c.Z, c.W},
					MetallicFactor:  gltf.Float(m.Metalness),
					RoughnessFactor: gltf.Float(m.Roughness),
				},
				AlphaMode: gltf.AlphaOpaque,
			})
			prim.Material = gltf.Index(uint32(len(doc.Materials) - 1))
		}

		doc.Meshes = append(doc.Meshes, &gltf.Mesh{Name: node.Name, Primitives: []*gltf.Primitive{prim}})
		doc.Nodes = append(doc.Nodes, &gltf.Node{Name: node.Name, Mesh: gltf.Index(uint32(len(doc.Meshes) - 1))})
		doc.Scenes[0].Nodes = append(doc.Scenes[0].Nodes, uint32(len(doc.Nodes)-1))
		return true
	})

	if len(doc.Meshes) == 0 {
		return nil, fmt.Errorf("%w: scene %s has no meshes", core.ErrDegenerateGeometry, root.Name)
	}
	return doc, nil
}

// WriteGLB saves the scene under root as a .glb file.
func WriteGLB(root *scene.Node, path string) error {
	doc, err := Document(root)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return gltf.SaveBinary(doc, path)
}

// Monument builds the procedural model for name and writes it to path.
func Monument(name, path string) error {
	group := scene.NewNode(name)
	monument.SelectBuilder(name)(group)
	return WriteGLB(group, path)
}

// Catalog writes one <slug>.glb per catalog entry into dir, building up to
// parallelism monuments at a time. It returns the written paths in catalog
// order.
func Catalog(ctx context.Context, catalog *monument.Catalog, dir string, parallelism int) ([]string, error) {
	if parallelism < 1 {
		parallelism = 1
	}
	paths := make([]string, len(catalog.Monuments))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(parallelism)
	for i, entry := range catalog.Monuments {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			group := scene.NewNode(entry.Slug)
			monument.BuilderFor(monument.ParseKind(entry.Kind))(group)
			path := filepath.Join(dir, entry.Slug+".glb")
			if err := WriteGLB(group, path); err != nil {
				return fmt.Errorf("export %s: %w", entry.Slug, err)
			}
			core.LogDebug("exported %s to %s", entry.Name, path)
			paths[i] = path
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return paths, nil
}
