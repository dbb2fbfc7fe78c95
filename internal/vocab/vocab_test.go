package vocab

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
namespace: weblit
default: en-US
colors:
  weblit-create: "#00FF00"
languages:
  en-US:
    weblit-create: Create
    weblit-search: Search
  fr:
    weblit-create: Créer
    weblit-search: Recherche
`

func newTestProvider(t *testing.T) *Provider {
	t.Helper()
	cat, err := Load(strings.NewReader(testCatalog))
	require.NoError(t, err)
	return NewProvider(cat)
}

func TestWeblitCatalog(t *testing.T) {
	p := NewWeblit()

	assert.Equal(t, "en-US", p.Language())
	assert.Equal(t, "weblit", p.Namespace())
	assert.Equal(t, []string{"de", "en-US", "es", "fr", "pt-BR"}, p.SupportedLanguages())
	assert.Len(t, p.AllTerms(), 15)

	// Every language carries the same identifiers.
	want := p.AllTerms()
	for _, l := range p.SupportedLanguages() {
		require.True(t, p.SetLanguage(l), l)
		got := p.AllTerms()
		require.Len(t, got, len(want), l)
		for i := range want {
			assert.Equal(t, want[i].ID, got[i].ID, l)
		}
	}
}

func TestSetLanguage(t *testing.T) {
	t.Run("supported language switches labels", func(t *testing.T) {
		p := newTestProvider(t)

		require.True(t, p.SetLanguage("fr"))
		assert.Equal(t, "fr", p.Language())
		assert.Equal(t, "Créer", p.Term("weblit-create"))
	})

	t.Run("unsupported language keeps previous terms", func(t *testing.T) {
		p := newTestProvider(t)
		require.True(t, p.SetLanguage("fr"))

		assert.False(t, p.SetLanguage("xx-YY"))
		assert.Equal(t, "fr", p.Language())
		assert.Equal(t, "Créer", p.Term("weblit-create"))
	})

	t.Run("case and separator are normalised", func(t *testing.T) {
		p := newTestProvider(t)

		assert.True(t, p.SetLanguage("EN-us"))
		assert.Equal(t, "en-US", p.Language())
		assert.True(t, p.SetLanguage("en_US"))
		assert.Equal(t, "en-US", p.Language())
	})

	t.Run("empty code rejected", func(t *testing.T) {
		p := newTestProvider(t)
		assert.False(t, p.SetLanguage(""))
		assert.False(t, p.SetLanguage("   "))
	})
}

func TestSupported(t *testing.T) {
	p := newTestProvider(t)

	for _, code := range []string{"en-US", "fr", "EN_us"} {
		assert.True(t, p.Supported(code), code)
	}
	for _, code := range []string{"", "de", "xx-YY", "fr-CA"} {
		assert.False(t, p.Supported(code), code)
	}
	assert.Equal(t, "en-US", p.Language(), "checking does not switch")
}

func TestLookup(t *testing.T) {
	p := newTestProvider(t)

	term, ok := p.Lookup("weblit-create")
	require.True(t, ok)
	assert.Equal(t, Term{ID: "weblit-create", Label: "Create", Color: "#00FF00"}, term)
	assert.Equal(t, "#00FF00", p.Color("weblit-create"))
	assert.Equal(t, "", p.Color("weblit-search"))

	_, ok = p.Lookup("fun")
	assert.False(t, ok)
	assert.Equal(t, "", p.Term("fun"))
}

func TestAllTerms_IsACopy(t *testing.T) {
	p := newTestProvider(t)

	terms := p.AllTerms()
	terms[0].Label = "mutated"

	assert.NotEqual(t, "mutated", p.AllTerms()[0].Label)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"malformed", "languages: [1, 2"},
		{"no namespace", "default: en\nlanguages:\n  en:\n    a: A\n"},
		{"no languages", "namespace: x\ndefault: en\n"},
		{"default missing", "namespace: x\ndefault: de\nlanguages:\n  en:\n    a: A\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(strings.NewReader(tt.yaml))
			assert.ErrorIs(t, err, ErrInvalidCatalog)
		})
	}
}

func TestMatch(t *testing.T) {
	p := NewWeblit()

	tests := []struct {
		name  string
		prefs []string
		want  string
	}{
		{"exact", []string{"fr"}, "fr"},
		{"posix locale", []string{"pt_BR.UTF-8"}, "pt-BR"},
		{"region falls back to base", []string{"fr-CA"}, "fr"},
		{"first usable preference wins", []string{"", "C", "es"}, "es"},
		{"nothing close", []string{"ja"}, ""},
		{"no preferences", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.Match(tt.prefs...))
		})
	}
}

func TestFromLocale(t *testing.T) {
	assert.Equal(t, "fr-FR", FromLocale("fr_FR.UTF-8"))
	assert.Equal(t, "de-DE", FromLocale("de_DE@euro"))
	assert.Equal(t, "en", FromLocale("en"))
	assert.Equal(t, "", FromLocale("C"))
	assert.Equal(t, "", FromLocale("POSIX.UTF-8"))
}

func TestClosest(t *testing.T) {
	p := NewWeblit()

	assert.Equal(t, "fr", p.Closest("fx"))
	assert.Equal(t, "pt-BR", p.Closest("pt-BX"))
	// Closest is a hint only.
	assert.Equal(t, "en-US", p.Language())
}
