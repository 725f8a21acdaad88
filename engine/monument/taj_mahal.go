package monument

import (
	"fmt"
	"image/color"

	"github.com/spaghettifunk/heritage/engine/geometry"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/renderer/metadata"
	"github.com/spaghettifunk/heritage/engine/scene"
	"golang.org/x/image/colornames"
)

const (
	tajPlatformSize   float32 = 10
	tajPlatformHeight float32 = 0.5
	tajHallSize       float32 = 6
	tajHallHeight     float32 = 3
	tajDomeRadius     float32 = 2
	tajSpireRadius    float32 = 0.15
	tajSpireHeight    float32 = 1.2
	tajMinaretOffset  float32 = 4.5
	tajMinaretHeight  float32 = 5
)

// BuildTajMahal emits a base platform, the main hall, a hemispherical dome
// with a spire and four corner minarets with caps.
func BuildTajMahal(group *scene.Node) {
	hallTop := tajPlatformHeight + tajHallHeight

	add(group, "platform", geometry.Box(tajPlatformSize, tajPlatformHeight, tajPlatformSize),
		colornames.Wheat, math.NewVec3(0, tajPlatformHeight/2, 0))

	add(group, "hall", geometry.Box(tajHallSize, tajHallHeight, tajHallSize),
		colornames.Ivory, math.NewVec3(0, tajPlatformHeight+tajHallHeight/2, 0))

	add(group, "dome", geometry.Hemisphere(tajDomeRadius, 32, 16),
		colornames.Whitesmoke, math.NewVec3(0, hallTop, 0))

	add(group, "spire", geometry.Cone(tajSpireRadius, tajSpireHeight, 12),
		colornames.Gold, math.NewVec3(0, hallTop+tajDomeRadius+tajSpireHeight/2, 0))

	corners := [4][2]float32{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
	for i, c := range corners {
		x, z := c[0]*tajMinaretOffset, c[1]*tajMinaretOffset

		add(group, fmt.Sprintf("minaret-%d", i), geometry.Cylinder(0.25, 0.3, tajMinaretHeight, 16),
			colornames.Ivory, math.NewVec3(x, tajPlatformHeight+tajMinaretHeight/2, z))

		add(group, fmt.Sprintf("minaret-%d-cap", i), geometry.Hemisphere(0.4, 16, 8),
			colornames.Whitesmoke, math.NewVec3(x, tajPlatformHeight+tajMinaretHeight, z))
	}
}

// add creates a mesh node with its own material and attaches it to group.
func add(group *scene.Node, name string, g *metadata.Geometry, c color.Color, position math.Vec3) *scene.Node {
	g.Name = name
	n := scene.NewMeshNode(name, g, metadata.NewMaterial(name, c, 0.7, 0.1))
	n.Transform.SetPosition(position)
	group.Add(n)
	return n
}
