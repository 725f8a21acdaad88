package monument

import (
	"fmt"

	"github.com/spaghettifunk/heritage/engine/geometry"
	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/scene"
	"golang.org/x/image/colornames"
)

const (
	qutubSections      = 5
	qutubBaseRadius    float32 = 1.5
	qutubBaseHeight    float32 = 4
	qutubRadiusStep    float32 = 0.15
	qutubHeightStep    float32 = 0.12
	qutubTopTaper      float32 = 0.85
	qutubPlinthHeight  float32 = 0.4
	qutubFinialHeight  float32 = 1.2
	qutubBalconyTube   float32 = 0.12
	qutubBalconyMargin float32 = 0.15
)

// QutubSection returns the bottom radius and height of section i. Each
// section is narrower and shorter than the one below it.
func QutubSection(i int) (radius, height float32) {
	radius = qutubBaseRadius * (1 - qutubRadiusStep*float32(i))
	height = qutubBaseHeight * (1 - qutubHeightStep*float32(i))
	return radius, height
}

// BuildQutubMinar emits a plinth, a tower of tapering frustum sections with
// a balcony ring at each section top and a finial.
func BuildQutubMinar(group *scene.Node) {
	add(group, "plinth", geometry.Cylinder(qutubBaseRadius+0.5, qutubBaseRadius+0.7, qutubPlinthHeight, 24),
		colornames.Burlywood, math.NewVec3(0, qutubPlinthHeight/2, 0))

	y := qutubPlinthHeight
	var top float32
	for i := 0; i < qutubSections; i++ {
		bottom, height := QutubSection(i)
		top = bottom * qutubTopTaper

		// alternate sandstone tones like the real tower's bands
		c := colornames.Indianred
		if i%2 == 1 {
			c = colornames.Sandybrown
		}
		add(group, fmt.Sprintf("section-%d", i), geometry.Cylinder(top, bottom, height, 24),
			c, math.NewVec3(0, y+height/2, 0))
		y += height

		add(group, fmt.Sprintf("balcony-%d", i), geometry.Torus(top+qutubBalconyMargin, qutubBalconyTube, 8, 32),
			colornames.Saddlebrown, math.NewVec3(0, y, 0))
	}

	add(group, "finial", geometry.Cone(top*0.6, qutubFinialHeight, 12),
		colornames.Darkgoldenrod, math.NewVec3(0, y+qutubFinialHeight/2, 0))
}
