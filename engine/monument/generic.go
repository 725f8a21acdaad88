package monument

import (
	"github.com/spaghettifunk/heritage/engine/geometry"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/scene"
	"golang.org/x/image/colornames"
)

// BuildGeneric emits a box body with a door and a square pyramidal roof.
func BuildGeneric(group *scene.Node) {
	add(group, "body", geometry.Box(4, 3, 4), colornames.Tan, math.NewVec3(0, 1.5, 0))

	add(group, "door", geometry.Box(0.8, 1.4, 0.1), colornames.Sienna, math.NewVec3(0, 0.7, 2.05))

	roof := add(group, "roof", geometry.Cone(3.2, 2, 4), colornames.Firebrick, math.NewVec3(0, 4, 0))
	roof.Transform.SetRotation(math.NewQuatFromAxisAngle(math.NewVec3Up(), math.K_QUARTER_PI, true))
}
