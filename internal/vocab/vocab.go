// Package vocab provides the controlled vocabulary behind tag suggestions.
//
// A Provider exposes one active language at a time. Switching language
// replaces the whole term set; terms from different languages are never
// merged. Lookups are by tag identifier (e.g. "weblit-search"), which is
// the stored form of a vocabulary tag, while Label is what gets displayed.
package vocab

import (
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/language"
)

// Term is one controlled-vocabulary entry in the active language.
type Term struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

// Provider serves the terms of a catalog for the active language.
// Safe for concurrent use.
type Provider struct {
	cat   *Catalog
	keys  map[string]string // lowercased language -> catalog key
	order []string          // catalog keys, sorted

	mu    sync.RWMutex
	lang  string
	terms map[string]Term
}

// NewProvider creates a provider for cat with the catalog default active.
func NewProvider(cat *Catalog) *Provider {
	p := &Provider{
		cat:   cat,
		keys:  make(map[string]string, len(cat.Languages)),
		order: cat.languages(),
	}
	for _, l := range p.order {
		p.keys[strings.ToLower(l)] = l
	}
	p.lang = cat.Default
	p.terms = p.build(cat.Default)
	return p
}

// NewWeblit creates a provider over the embedded Web Literacy catalog.
func NewWeblit() *Provider {
	return NewProvider(Weblit())
}

// SetLanguage activates the terms for code. It reports false, leaving the
// current language and terms untouched, when code is not supported.
func (p *Provider) SetLanguage(code string) bool {
	key, ok := p.resolve(code)
	if !ok {
		return false
	}
	terms := p.build(key)

	p.mu.Lock()
	p.lang = key
	p.terms = terms
	p.mu.Unlock()
	return true
}

// Supported reports whether code names a catalog language.
func (p *Provider) Supported(code string) bool {
	_, ok := p.resolve(code)
	return ok
}

// resolve maps a user-supplied code onto a catalog key. Exact matches are
// case-insensitive; otherwise the code is canonicalized as a BCP 47 tag
// ("pt_br" -> "pt-BR") and tried again.
func (p *Provider) resolve(code string) (string, bool) {
	code = strings.TrimSpace(code)
	if code == "" {
		return "", false
	}
	if key, ok := p.keys[strings.ToLower(code)]; ok {
		return key, true
	}
	tag, err := language.Parse(code)
	if err != nil {
		return "", false
	}
	key, ok := p.keys[strings.ToLower(tag.String())]
	return key, ok
}

func (p *Provider) build(key string) map[string]Term {
	labels := p.cat.Languages[key]
	terms := make(map[string]Term, len(labels))
	for id, label := range labels {
		terms[id] = Term{ID: id, Label: label, Color: p.cat.Colors[id]}
	}
	return terms
}

// Language returns the active catalog language.
func (p *Provider) Language() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lang
}

// Default returns the catalog's fallback language.
func (p *Provider) Default() string { return p.cat.Default }

// Namespace returns the identifier prefix shared by all terms ("weblit").
func (p *Provider) Namespace() string { return p.cat.Namespace }

// SupportedLanguages returns the catalog languages, sorted.
func (p *Provider) SupportedLanguages() []string {
	out := make([]string, len(p.order))
	copy(out, p.order)
	return out
}

// AllTerms returns the active terms sorted by identifier.
func (p *Provider) AllTerms() []Term {
	p.mu.RLock()
	terms := make([]Term, 0, len(p.terms))
	for _, t := range p.terms {
		terms = append(terms, t)
	}
	p.mu.RUnlock()

	sort.Slice(terms, func(i, j int) bool { return terms[i].ID < terms[j].ID })
	return terms
}

// Lookup returns the active term for id.
func (p *Provider) Lookup(id string) (Term, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	t, ok := p.terms[id]
	return t, ok
}

// Term returns the localized label for id, or "" if id is not a vocabulary tag.
func (p *Provider) Term(id string) string {
	t, _ := p.Lookup(id)
	return t.Label
}

// Color returns the display color for id, or "" if none is defined.
func (p *Provider) Color(id string) string {
	return p.cat.Colors[id]
}
