package viewer

import (
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
)

// DefaultLights is the rig every session starts with: soft ambient light, a
// key light from above front-right and a weaker fill from the opposite side.
func DefaultLights() []metadata.Light {
	white := math.NewVec4(1, 1, 1, 1)
	return []metadata.Light{
		{
			Name:      "ambient",
			Kind:      metadata.LightKindAmbient,
			Colour:    white,
			Intensity: 0.4,
		},
		{
			Name:      "key",
			Kind:      metadata.LightKindDirectional,
			Direction: math.NewVec3(-10, -20, -10).Normalized(),
			Colour:    white,
			Intensity: 0.8,
		},
		{
			Name:      "fill",
			Kind:      metadata.LightKindDirectional,
			Direction: math.NewVec3(10, -10, 10).Normalized(),
			Colour:    math.NewVec4(0.9, 0.9, 1, 1),
			Intensity: 0.3,
		},
	}
}
