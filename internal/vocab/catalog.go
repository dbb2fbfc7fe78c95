// catalog.go loads the localized term catalog backing a Provider.
//
// Separated from vocab.go so the YAML shape and its validation live apart
// from the runtime lookups. The built-in Web Literacy catalog is embedded in
// the binary; callers may supply their own through Load.

package vocab

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed weblit.yaml
var weblitYAML []byte

var (
	// ErrInvalidCatalog is returned when a catalog is structurally unusable.
	ErrInvalidCatalog = errors.New("invalid vocabulary catalog")
	// ErrUnsupported is returned when a language has no terms in the catalog.
	ErrUnsupported = errors.New("unsupported language")
)

// Catalog is the on-disk form of a controlled vocabulary.
type Catalog struct {
	Namespace string                       `yaml:"namespace"`
	Default   string                       `yaml:"default"`
	Colors    map[string]string            `yaml:"colors,omitempty"`
	Languages map[string]map[string]string `yaml:"languages"` // language -> id -> label
}

// Load decodes and validates a catalog.
func Load(r io.Reader) (*Catalog, error) {
	var cat Catalog
	if err := yaml.NewDecoder(r).Decode(&cat); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}
	if err := cat.Validate(); err != nil {
		return nil, err
	}
	return &cat, nil
}

// Validate checks that the catalog has a namespace and that its default
// language is present.
func (c *Catalog) Validate() error {
	if c.Namespace == "" {
		return fmt.Errorf("%w: missing namespace", ErrInvalidCatalog)
	}
	if len(c.Languages) == 0 {
		return fmt.Errorf("%w: no languages", ErrInvalidCatalog)
	}
	if _, ok := c.Languages[c.Default]; !ok {
		return fmt.Errorf("%w: default language %q has no terms", ErrInvalidCatalog, c.Default)
	}
	return nil
}

// languages returns the catalog's language keys in sorted order.
func (c *Catalog) languages() []string {
	langs := make([]string, 0, len(c.Languages))
	for l := range c.Languages {
		langs = append(langs, l)
	}
	sort.Strings(langs)
	return langs
}

var weblit = sync.OnceValues(func() (*Catalog, error) {
	return Load(bytes.NewReader(weblitYAML))
})

// Weblit returns the embedded Web Literacy catalog. The embedded data is
// part of the binary, so a decode failure is a build defect and panics.
func Weblit() *Catalog {
	cat, err := weblit()
	if err != nil {
		panic("vocab: embedded catalog: " + err.Error())
	}
	return cat
}
