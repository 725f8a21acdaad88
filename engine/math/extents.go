package math

import m "math"

// NewExtentsEmpty returns inverted extents that any Expand call will replace.
func NewExtentsEmpty() Extents3D {
	inf := float32(m.Inf(1))
	return Extents3D{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether nothing has been added to the extents yet.
func (e Extents3D) IsEmpty() bool {
	return e.Min.X > e.Max.X || e.Min.Y > e.Max.Y || e.Min.Z > e.Max.Z
}

func (e Extents3D) ExpandPoint(p Vec3) Extents3D {
	return Extents3D{Min: e.Min.Min(p), Max: e.Max.Max(p)}
}

func (e Extents3D) Union(other Extents3D) Extents3D {
	if other.IsEmpty() {
		return e
	}
	if e.IsEmpty() {
		return other
	}
	return Extents3D{Min: e.Min.Min(other.Min), Max: e.Max.Max(other.Max)}
}

func (e Extents3D) Size() Vec3 {
	if e.IsEmpty() {
		return NewVec3Zero()
	}
	return e.Max.Sub(e.Min)
}

func (e Extents3D) Center() Vec3 {
	if e.IsEmpty() {
		return NewVec3Zero()
	}
	return e.Min.Add(e.Max).MulScalar(0.5)
}

// Transform returns the axis-aligned box enclosing e after transforming its
// eight corners by mat.
func (e Extents3D) Transform(mat Mat4) Extents3D {
	if e.IsEmpty() {
		return e
	}
	out := NewExtentsEmpty()
	for i := 0; i < 8; i++ {
		corner := Vec3{e.Min.X, e.Min.Y, e.Min.Z}
		if i&1 != 0 {
			corner.X = e.Max.X
		}
		if i&2 != 0 {
			corner.Y = e.Max.Y
		}
		if i&4 != 0 {
			corner.Z = e.Max.Z
		}
		out = out.ExpandPoint(corner.Transform(mat))
	}
	return out
}

// IsDegenerate reports whether any axis has a non-positive or non-finite extent.
func (e Extents3D) IsDegenerate() bool {
	s := e.Size()
	for _, v := range []float32{s.X, s.Y, s.Z} {
		if !IsFinite(v) || v <= 0 {
			return true
		}
	}
	return false
}
