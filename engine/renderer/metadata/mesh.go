package metadata

// Mesh pairs one geometry with the material it is drawn with.
type Mesh struct {
	Geometry *Geometry
	Material *Material
}

func NewMesh(geometry *Geometry, material *Material) *Mesh {
	return &Mesh{Geometry: geometry, Material: material}
}
