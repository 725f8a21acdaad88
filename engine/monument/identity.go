// Package monument maps monument names to procedural builders and to
// descriptive metadata. Both go through Identify so they can never disagree.
package monument

import "strings"

type Kind uint8

const (
	KindGeneric Kind = iota
	KindTajMahal
	KindQutubMinar
)

func (k Kind) String() string {
	switch k {
	case KindTajMahal:
		return "taj_mahal"
	case KindQutubMinar:
		return "qutub_minar"
	default:
		return "generic"
	}
}

// ParseKind is the inverse of Kind.String. Unknown values map to KindGeneric.
func ParseKind(s string) Kind {
	switch s {
	case "taj_mahal":
		return KindTajMahal
	case "qutub_minar":
		return KindQutubMinar
	default:
		return KindGeneric
	}
}

// Identity is the result of matching a free-text name. Name keeps the raw
// input so generic monuments can still be labelled.
type Identity struct {
	Kind Kind
	Name string
}

// Identify matches name case-insensitively. Taj Mahal keywords are checked
// before Qutub Minar keywords, so "Qutub Mahal" is a Taj Mahal.
func Identify(name string) Identity {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "taj") || strings.Contains(lower, "mahal"):
		return Identity{Kind: KindTajMahal, Name: name}
	case strings.Contains(lower, "qutub") || strings.Contains(lower, "minar"):
		return Identity{Kind: KindQutubMinar, Name: name}
	default:
		return Identity{Kind: KindGeneric, Name: name}
	}
}
