// Package geometry generates the parametric solids monuments are built from.
// All solids are centred on the origin with +Y up, and every triangle winds
// counter-clockwise when seen from outside.
package geometry

import (
	stdmath "math"

	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
)

// Box generates an axis-aligned box with the given full dimensions.
func Box(width, height, depth float32) *metadata.Geometry {
	half := math.NewVec3(width*0.5, height*0.5, depth*0.5)

	// normal, u and v satisfy u x v = normal so the quads wind outward.
	faces := [6][3]math.Vec3{
		{{X: 1}, {Z: -1}, {Y: 1}},
		{{X: -1}, {Z: 1}, {Y: 1}},
		{{Y: 1}, {X: 1}, {Z: -1}},
		{{Y: -1}, {X: 1}, {Z: 1}},
		{{Z: 1}, {X: 1}, {Y: 1}},
		{{Z: -1}, {X: -1}, {Y: 1}},
	}
	corners := [4][2]float32{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}

	vertices := make([]math.Vertex3D, 0, 24)
	indices := make([]uint32, 0, 36)
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(len(vertices))
		for _, c := range corners {
			p := n.Add(u.MulScalar(c[0])).Add(v.MulScalar(c[1])).Mul(half)
			vertices = append(vertices, math.Vertex3D{
				Position: p,
				Normal:   n,
				Texcoord: math.NewVec2((c[0]+1)*0.5, (c[1]+1)*0.5),
			})
		}
		indices = append(indices, base, base+1, base+2, base, base+2, base+3)
	}

	return metadata.NewGeometry(&metadata.GeometryConfig{
		Name:     "box",
		Vertices: vertices,
		Indices:  indices,
	})
}

// SphereConfig describes a sphere or a slice of one. Theta is measured from
// the +Y pole, so ThetaLength = pi/2 gives the upper hemisphere.
type SphereConfig struct {
	Radius         float32
	WidthSegments  int
	HeightSegments int
	PhiStart       float32
	PhiLength      float32
	ThetaStart     float32
	ThetaLength    float32
}

// Sphere generates a full UV sphere.
func Sphere(radius float32, widthSegments, heightSegments int) *metadata.Geometry {
	return SphereSlice(SphereConfig{
		Radius:         radius,
		WidthSegments:  widthSegments,
		HeightSegments: heightSegments,
		PhiLength:      math.K_PI_2,
		ThetaLength:    math.K_PI,
	})
}

// Hemisphere generates the upper half of a sphere, open at the bottom.
func Hemisphere(radius float32, widthSegments, heightSegments int) *metadata.Geometry {
	g := SphereSlice(SphereConfig{
		Radius:         radius,
		WidthSegments:  widthSegments,
		HeightSegments: heightSegments,
		PhiLength:      math.K_PI_2,
		ThetaLength:    math.K_HALF_PI,
	})
	g.Name = "hemisphere"
	return g
}

// SphereSlice generates the part of a sphere described by config.
func SphereSlice(config SphereConfig) *metadata.Geometry {
	ws := max(config.WidthSegments, 3)
	hs := max(config.HeightSegments, 2)
	thetaEnd := min(config.ThetaStart+config.ThetaLength, math.K_PI)

	var vertices []math.Vertex3D
	grid := make([][]uint32, hs+1)

	for iy := 0; iy <= hs; iy++ {
		v := float32(iy) / float32(hs)
		theta := float64(config.ThetaStart + v*config.ThetaLength)
		grid[iy] = make([]uint32, ws+1)

		for ix := 0; ix <= ws; ix++ {
			u := float32(ix) / float32(ws)
			phi := float64(config.PhiStart + u*config.PhiLength)

			normal := math.NewVec3(
				float32(-stdmath.Cos(phi)*stdmath.Sin(theta)),
				float32(stdmath.Cos(theta)),
				float32(stdmath.Sin(phi)*stdmath.Sin(theta)),
			)
			grid[iy][ix] = uint32(len(vertices))
			vertices = append(vertices, math.Vertex3D{
				Position: normal.MulScalar(config.Radius),
				Normal:   normal,
				Texcoord: math.NewVec2(u, 1-v),
			})
		}
	}

	var indices []uint32
	for iy := 0; iy < hs; iy++ {
		for ix := 0; ix < ws; ix++ {
			a := grid[iy][ix+1]
			b := grid[iy][ix]
			c := grid[iy+1][ix]
			d := grid[iy+1][ix+1]

			// skip the zero-area triangles that touch a pole
			if iy != 0 || config.ThetaStart > 0 {
				indices = append(indices, a, b, d)
			}
			if iy != hs-1 || thetaEnd < math.K_PI {
				indices = append(indices, b, c, d)
			}
		}
	}

	return metadata.NewGeometry(&metadata.GeometryConfig{
		Name:     "sphere",
		Vertices: vertices,
		Indices:  indices,
	})
}

// Cylinder generates a capped frustum. radiusTop and radiusBottom may
// differ; a zero radius collapses that end to a point and drops its cap.
func Cylinder(radiusTop, radiusBottom, height float32, radialSegments int) *metadata.Geometry {
	rs := max(radialSegments, 3)
	halfHeight := height * 0.5
	slope := (radiusBottom - radiusTop) / height

	var vertices []math.Vertex3D
	var indices []uint32

	// torso: row 0 is the top ring, row 1 the bottom ring
	rows := [2][]uint32{}
	for y := 0; y <= 1; y++ {
		radius := float32(y)*(radiusBottom-radiusTop) + radiusTop
		for x := 0; x <= rs; x++ {
			u := float32(x) / float32(rs)
			theta := float64(u * math.K_PI_2)
			sin := float32(stdmath.Sin(theta))
			cos := float32(stdmath.Cos(theta))

			rows[y] = append(rows[y], uint32(len(vertices)))
			vertices = append(vertices, math.Vertex3D{
				Position: math.NewVec3(radius*sin, -float32(y)*height+halfHeight, radius*cos),
				Normal:   math.NewVec3(sin, slope, cos).Normalized(),
				Texcoord: math.NewVec2(u, 1-float32(y)),
			})
		}
	}
	for x := 0; x < rs; x++ {
		a := rows[0][x]
		b := rows[1][x]
		c := rows[1][x+1]
		d := rows[0][x+1]
		if radiusTop > 0 {
			indices = append(indices, a, b, d)
		}
		if radiusBottom > 0 {
			indices = append(indices, b, c, d)
		}
	}

	if radiusTop > 0 {
		vertices, indices = appendCap(vertices, indices, radiusTop, halfHeight, rs, true)
	}
	if radiusBottom > 0 {
		vertices, indices = appendCap(vertices, indices, radiusBottom, -halfHeight, rs, false)
	}

	return metadata.NewGeometry(&metadata.GeometryConfig{
		Name:     "cylinder",
		Vertices: vertices,
		Indices:  indices,
	})
}

func appendCap(vertices []math.Vertex3D, indices []uint32, radius, y float32, segments int, top bool) ([]math.Vertex3D, []uint32) {
	normal := math.NewVec3Up()
	if !top {
		normal = math.NewVec3Down()
	}

	center := uint32(len(vertices))
	vertices = append(vertices, math.Vertex3D{
		Position: math.NewVec3(0, y, 0),
		Normal:   normal,
		Texcoord: math.NewVec2(0.5, 0.5),
	})

	ring := uint32(len(vertices))
	for x := 0; x <= segments; x++ {
		theta := float64(float32(x) / float32(segments) * math.K_PI_2)
		sin := float32(stdmath.Sin(theta))
		cos := float32(stdmath.Cos(theta))
		vertices = append(vertices, math.Vertex3D{
			Position: math.NewVec3(radius*sin, y, radius*cos),
			Normal:   normal,
			Texcoord: math.NewVec2(sin*0.5+0.5, cos*0.5+0.5),
		})
	}

	for x := uint32(0); x < uint32(segments); x++ {
		i := ring + x
		if top {
			indices = append(indices, i, i+1, center)
		} else {
			indices = append(indices, i+1, i, center)
		}
	}
	return vertices, indices
}

// Cone generates a capped cone with its apex on +Y. Four radial segments
// give a square pyramid.
func Cone(radius, height float32, radialSegments int) *metadata.Geometry {
	g := Cylinder(0, radius, height, radialSegments)
	g.Name = "cone"
	return g
}

// Torus generates a ring lying in the XZ plane around the Y axis.
func Torus(radius, tube float32, radialSegments, tubularSegments int) *metadata.Geometry {
	rs := max(radialSegments, 3)
	ts := max(tubularSegments, 3)

	var vertices []math.Vertex3D
	for j := 0; j <= rs; j++ {
		for i := 0; i <= ts; i++ {
			u := float64(i) / float64(ts) * 2 * stdmath.Pi
			v := float64(j) / float64(rs) * 2 * stdmath.Pi

			// generated around Z then turned to lie flat: (x, y, z) -> (x, z, -y)
			x := (float64(radius) + float64(tube)*stdmath.Cos(v)) * stdmath.Cos(u)
			y := (float64(radius) + float64(tube)*stdmath.Cos(v)) * stdmath.Sin(u)
			z := float64(tube) * stdmath.Sin(v)
			cx := float64(radius) * stdmath.Cos(u)
			cy := float64(radius) * stdmath.Sin(u)

			position := math.NewVec3(float32(x), float32(z), float32(-y))
			center := math.NewVec3(float32(cx), 0, float32(-cy))
			vertices = append(vertices, math.Vertex3D{
				Position: position,
				Normal:   position.Sub(center).Normalized(),
				Texcoord: math.NewVec2(float32(i)/float32(ts), float32(j)/float32(rs)),
			})
		}
	}

	var indices []uint32
	stride := uint32(ts + 1)
	for j := uint32(1); j <= uint32(rs); j++ {
		for i := uint32(1); i <= uint32(ts); i++ {
			a := stride*j + i - 1
			b := stride*(j-1) + i - 1
			c := stride*(j-1) + i
			d := stride*j + i
			indices = append(indices, a, b, d, b, c, d)
		}
	}

	return metadata.NewGeometry(&metadata.GeometryConfig{
		Name:     "torus",
		Vertices: vertices,
		Indices:  indices,
	})
}

// Disc generates a flat circle in the XZ plane facing +Y.
func Disc(radius float32, segments int) *metadata.Geometry {
	vertices, indices := appendCap(nil, nil, radius, 0, max(segments, 3), true)
	return metadata.NewGeometry(&metadata.GeometryConfig{
		Name:     "disc",
		Vertices: vertices,
		Indices:  indices,
	})
}
