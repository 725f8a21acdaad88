package monument

import (
	_ "embed"
	"fmt"
	"io"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

const unknownMonument = "Unknown Monument"

// Descriptor is the static, display-only metadata of a monument.
type Descriptor struct {
	Name        string `yaml:"name" json:"name"`
	Location    string `yaml:"location" json:"location"`
	Era         string `yaml:"era" json:"era"`
	Style       string `yaml:"style" json:"style"`
	Description string `yaml:"description" json:"description"`
}

// Entry is one monument in the catalog.
type Entry struct {
	Slug       string `yaml:"slug"`
	Kind       string `yaml:"kind"`
	Model      string `yaml:"model,omitempty"`
	Descriptor `yaml:",inline"`
}

// Catalog is the list of monuments the viewer knows about.
type Catalog struct {
	Monuments []Entry `yaml:"monuments"`
}

//go:embed catalog.yaml
var catalogYAML []byte

var (
	defaultCatalogOnce sync.Once
	defaultCatalog     *Catalog
	defaultCatalogErr  error
)

// DefaultCatalog returns the catalog embedded in the binary.
func DefaultCatalog() (*Catalog, error) {
	defaultCatalogOnce.Do(func() {
		defaultCatalog, defaultCatalogErr = LoadCatalog(strings.NewReader(string(catalogYAML)))
	})
	return defaultCatalog, defaultCatalogErr
}

// LoadCatalog decodes a YAML catalog and checks that slugs are unique and
// that both procedural monuments are described.
func LoadCatalog(r io.Reader) (*Catalog, error) {
	var c Catalog
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&c); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	seen := make(map[string]bool, len(c.Monuments))
	for _, e := range c.Monuments {
		if e.Slug == "" || e.Name == "" {
			return nil, fmt.Errorf("catalog entry %q: slug and name are required", e.Name)
		}
		if seen[e.Slug] {
			return nil, fmt.Errorf("catalog entry %q: duplicate slug", e.Slug)
		}
		seen[e.Slug] = true
	}
	for _, k := range []Kind{KindTajMahal, KindQutubMinar} {
		if _, ok := c.ByKind(k); !ok {
			return nil, fmt.Errorf("catalog has no %s entry", k)
		}
	}
	return &c, nil
}

// ByKind returns the first entry with the given kind.
func (c *Catalog) ByKind(k Kind) (Entry, bool) {
	for _, e := range c.Monuments {
		if ParseKind(e.Kind) == k && k != KindGeneric {
			return e, true
		}
	}
	return Entry{}, false
}

// Lookup finds an entry by slug or by case-insensitive name.
func (c *Catalog) Lookup(nameOrSlug string) (Entry, bool) {
	for _, e := range c.Monuments {
		if e.Slug == nameOrSlug || strings.EqualFold(e.Name, nameOrSlug) {
			return e, true
		}
	}
	return Entry{}, false
}

// Resolve returns the descriptor for id. The two procedural monuments come
// from the catalog, everything else gets a generic descriptor named after
// the raw input.
func (c *Catalog) Resolve(id Identity) Descriptor {
	if e, ok := c.ByKind(id.Kind); ok {
		return e.Descriptor
	}
	return genericDescriptor(id.Name)
}

// Resolve returns the metadata for a free-text monument name using the
// embedded catalog.
func Resolve(name string) Descriptor {
	c, err := DefaultCatalog()
	if err != nil {
		// unreadable catalog; every name gets a generic descriptor
		return genericDescriptor(name)
	}
	return c.Resolve(Identify(name))
}

func genericDescriptor(name string) Descriptor {
	if strings.TrimSpace(name) == "" {
		name = unknownMonument
	}
	return Descriptor{
		Name:        name,
		Location:    "India",
		Era:         "Historical",
		Style:       "Traditional Indian Architecture",
		Description: fmt.Sprintf("%s is one of the many historic monuments of India.", name),
	}
}
