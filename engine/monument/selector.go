package monument

import "github.com/spaghettifunk/heritage/engine/scene"

// Builder populates group with the meshes of one monument. Builders are
// deterministic, keep no reference to group and leave its bounding box with
// a positive extent on every axis.
type Builder func(group *scene.Node)

// SelectBuilder never fails: names that match nothing get BuildGeneric.
func SelectBuilder(name string) Builder {
	return BuilderFor(Identify(name).Kind)
}

func BuilderFor(kind Kind) Builder {
	switch kind {
	case KindTajMahal:
		return BuildTajMahal
	case KindQutubMinar:
		return BuildQutubMinar
	default:
		return BuildGeneric
	}
}
