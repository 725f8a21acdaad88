package metadata

import (
	"image/color"

	"github.com/spaghettifunk/heritage/engine/math"
)

/**
 * @brief A flat-shaded surface description. Every mesh owns its own material
 * so disposing one mesh never affects another.
 */
type Material struct {
	/** @brief The internal material id. Used by the renderer backend to map to internal resources. */
	InternalID uint32
	/** @brief The material generation. Incremented every time the material is changed. */
	Generation uint32
	/** @brief The material name. */
	Name string
	/** @brief The diffuse colour, RGBA in [0, 1]. */
	DiffuseColour math.Vec4
	Roughness     float32
	Metalness     float32
}

// NewMaterial creates a material from any image/color value, such as the
// entries of golang.org/x/image/colornames.
func NewMaterial(name string, c color.Color, roughness, metalness float32) *Material {
	return &Material{
		InternalID:    InvalidID,
		Name:          name,
		DiffuseColour: ColourFrom(c),
		Roughness:     roughness,
		Metalness:     metalness,
	}
}

// ColourFrom converts a color.Color into a normalized RGBA vector.
func ColourFrom(c color.Color) math.Vec4 {
	r, g, b, a := c.RGBA()
	return math.NewVec4(float32(r)/0xffff, float32(g)/0xffff, float32(b)/0xffff, float32(a)/0xffff)
}

// RGBA8 returns the diffuse colour as 8-bit channels.
func (m *Material) RGBA8() (r, g, b, a uint8) {
	c := m.DiffuseColour
	return to8(c.X), to8(c.Y), to8(c.Z), to8(c.W)
}

func to8(v float32) uint8 {
	return uint8(math.Clamp(v, 0, 1)*255 + 0.5)
}
