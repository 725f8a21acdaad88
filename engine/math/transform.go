package math

// Transform is a position/rotation/scale triple with a cached local matrix.
// Hierarchy lives in the scene graph, not here.
type Transform struct {
	Position Vec3
	Rotation Quaternion
	Scale    Vec3

	local Mat4
	dirty bool
}

func NewTransform() Transform {
	return Transform{
		Position: NewVec3Zero(),
		Rotation: NewQuatIdentity(),
		Scale:    NewVec3One(),
		local:    NewMat4Identity(),
	}
}

func TransformFromPosition(position Vec3) Transform {
	t := NewTransform()
	t.SetPosition(position)
	return t
}

func (t *Transform) SetPosition(position Vec3) {
	t.Position = position
	t.dirty = true
}

func (t *Transform) Translate(translation Vec3) {
	t.Position = t.Position.Add(translation)
	t.dirty = true
}

func (t *Transform) SetRotation(rotation Quaternion) {
	t.Rotation = rotation
	t.dirty = true
}

func (t *Transform) Rotate(rotation Quaternion) {
	t.Rotation = t.Rotation.Mul(rotation)
	t.dirty = true
}

func (t *Transform) SetScale(scale Vec3) {
	t.Scale = scale
	t.dirty = true
}

// SetUniformScale sets the same scale factor on all three axes.
func (t *Transform) SetUniformScale(s float32) {
	t.SetScale(Vec3{s, s, s})
}

// Local returns scale, then rotation, then translation as one matrix.
func (t *Transform) Local() Mat4 {
	if t.dirty || t.local == (Mat4{}) {
		s := NewMat4Scale(t.Scale)
		t.local = s.Mul(t.Rotation.ToMat4()).Mul(NewMat4Translation(t.Position))
		t.dirty = false
	}
	return t.local
}
