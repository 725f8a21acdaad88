package monument

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/spaghettifunk/heritage/engine/math"
	"github.com/spaghettifunk/heritage/engine/scene"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func funcPointer(b Builder) uintptr {
	return reflect.ValueOf(b).Pointer()
}

func TestIdentifyRouting(t *testing.T) {
	tests := []struct {
		input string
		want  Kind
	}{
		{"Taj Mahal", KindTajMahal},
		{"TAJ", KindTajMahal},
		{"the mahal at agra", KindTajMahal},
		{"Qutub Minar", KindQutubMinar},
		{"qutub_minar", KindQutubMinar},
		{"MINAR", KindQutubMinar},
		// taj/mahal keywords are checked first
		{"Qutub Mahal", KindTajMahal},
		{"Red Fort", KindGeneric},
		{"", KindGeneric},
		{"   ", KindGeneric},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%q", tt.input), func(t *testing.T) {
			id := Identify(tt.input)
			assert.Equal(t, tt.want, id.Kind)
			assert.Equal(t, tt.input, id.Name)
			assert.Equal(t, funcPointer(BuilderFor(tt.want)), funcPointer(SelectBuilder(tt.input)))
		})
	}
}

func TestKindRoundTrip(t *testing.T) {
	for _, k := range []Kind{KindGeneric, KindTajMahal, KindQutubMinar} {
		assert.Equal(t, k, ParseKind(k.String()))
	}
	assert.Equal(t, KindGeneric, ParseKind("pagoda"))
}

func build(b Builder) *scene.Node {
	group := scene.NewNode("monument")
	b(group)
	return group
}

func TestBuildersHaveNonDegenerateBounds(t *testing.T) {
	for name, b := range map[string]Builder{
		"taj":     BuildTajMahal,
		"qutub":   BuildQutubMinar,
		"generic": BuildGeneric,
	} {
		t.Run(name, func(t *testing.T) {
			box := build(b).BoundingBox()
			require.False(t, box.IsDegenerate(), "bounds %v", box)
			size := box.Size()
			assert.Greater(t, size.X, float32(0))
			assert.Greater(t, size.Y, float32(0))
			assert.Greater(t, size.Z, float32(0))
			// everything stands on the ground plane
			assert.InDelta(t, 0, box.Min.Y, 1e-4)
		})
	}
}

func TestBuildersAreDeterministic(t *testing.T) {
	for _, b := range []Builder{BuildTajMahal, BuildQutubMinar, BuildGeneric} {
		a, c := build(b), build(b)
		assert.Equal(t, a.BoundingBox(), c.BoundingBox())
		assert.Equal(t, len(a.Meshes()), len(c.Meshes()))
	}
}

func TestBuildersUseFreshMaterials(t *testing.T) {
	seen := map[interface{}]bool{}
	for _, m := range build(BuildTajMahal).Meshes() {
		require.False(t, seen[m.Material], "material %s shared", m.Material.Name)
		seen[m.Material] = true
	}
}

func TestTajMahalScenario(t *testing.T) {
	group := build(SelectBuilder("Taj Mahal"))

	assert.NotNil(t, group.Find("dome"))
	assert.NotNil(t, group.Find("platform"))
	assert.NotNil(t, group.Find("spire"))
	minarets := 0
	for _, c := range group.Children() {
		if strings.HasPrefix(c.Name, "minaret-") && !strings.HasSuffix(c.Name, "-cap") {
			minarets++
		}
	}
	assert.Equal(t, 4, minarets)

	// minarets are symmetric around the vertical axis
	var sum math.Vec3
	for i := 0; i < 4; i++ {
		sum = sum.Add(group.Find(fmt.Sprintf("minaret-%d", i)).Transform.Position)
	}
	assert.InDelta(t, 0, sum.X, 1e-5)
	assert.InDelta(t, 0, sum.Z, 1e-5)

	d := Resolve("Taj Mahal")
	assert.Equal(t, "Taj Mahal", d.Name)
	assert.Equal(t, "1632-1653", d.Era)
	assert.Equal(t, "Mughal Architecture", d.Style)
	assert.Equal(t, "Agra, Uttar Pradesh", d.Location)
	assert.NotEmpty(t, d.Description)
}

func TestQutubMinarScenario(t *testing.T) {
	group := build(SelectBuilder("qutub_minar"))

	var prevRadius, prevHeight float32
	for i := 0; i < 5; i++ {
		require.NotNil(t, group.Find(fmt.Sprintf("section-%d", i)), "section %d", i)
		require.NotNil(t, group.Find(fmt.Sprintf("balcony-%d", i)), "balcony %d", i)

		r, h := QutubSection(i)
		if i > 0 {
			assert.Less(t, r, prevRadius)
			assert.Less(t, h, prevHeight)
		}
		prevRadius, prevHeight = r, h

		// each section's top ring is narrower than its bottom
		ext := group.Find(fmt.Sprintf("section-%d", i)).Mesh.Geometry.Extents
		assert.InDelta(t, r, ext.Max.X, 1e-4)
	}
	assert.Nil(t, group.Find("section-5"))
	assert.NotNil(t, group.Find("finial"))

	d := Resolve("qutub_minar")
	assert.Equal(t, "Qutub Minar", d.Name)
	assert.Equal(t, "1199-1220", d.Era)
}

func TestGenericScenario(t *testing.T) {
	group := build(SelectBuilder("Red Fort"))
	assert.NotNil(t, group.Find("body"))
	assert.NotNil(t, group.Find("roof"))

	d := Resolve("Red Fort")
	assert.Equal(t, "Red Fort", d.Name)
	assert.Equal(t, "Traditional Indian Architecture", d.Style)

	assert.Equal(t, "Unknown Monument", Resolve("").Name)
}

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(c.Monuments), 3)

	e, ok := c.Lookup("konark-sun-temple")
	require.True(t, ok)
	assert.Equal(t, "models/konark.obj", e.Model)

	e, ok = c.Lookup("red fort")
	require.True(t, ok)
	assert.Equal(t, "red-fort", e.Slug)

	_, ok = c.Lookup("Atlantis")
	assert.False(t, ok)
}

func TestLoadCatalogValidation(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{"duplicate slug", `
monuments:
  - {slug: taj, kind: taj_mahal, name: Taj}
  - {slug: taj, kind: qutub_minar, name: Qutub}
`, "duplicate slug"},
		{"missing qutub", `
monuments:
  - {slug: taj, kind: taj_mahal, name: Taj}
`, "no qutub_minar entry"},
		{"unknown field", `
monuments:
  - {slug: taj, kind: taj_mahal, name: Taj, height: 73}
`, "failed to parse catalog"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadCatalog(strings.NewReader(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}
