package taglist

import (
	"strings"
	"testing"

	"github.com/jpl-au/tagger/internal/vocab"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCatalog = `
namespace: weblit
default: en-US
colors:
  weblit-create: "#4FC3F7"
languages:
  en-US:
    weblit-create: Create
    weblit-search: Search
  fr:
    weblit-create: Créer
    weblit-search: Rechercher
`

func newProvider(t *testing.T) *vocab.Provider {
	t.Helper()
	cat, err := vocab.Load(strings.NewReader(testCatalog))
	require.NoError(t, err)
	return vocab.NewProvider(cat)
}

// countingSink records every value it receives.
type countingSink struct {
	values []string
}

func (s *countingSink) SetValue(v string) { s.values = append(s.values, v) }

type event struct {
	kind  string
	value string
	tags  []Tag
}

type recordingSurface struct {
	events []event
}

func (r *recordingSurface) ChipAdded(t Tag) {
	r.events = append(r.events, event{kind: "add", value: t.Value})
}

func (r *recordingSurface) ChipRemoved(v string) {
	r.events = append(r.events, event{kind: "remove", value: v})
}

func (r *recordingSurface) Relabel(tags []Tag) {
	r.events = append(r.events, event{kind: "relabel", tags: tags})
}

func TestAddText(t *testing.T) {
	t.Run("free text", func(t *testing.T) {
		sink := &countingSink{}
		m := New(newProvider(t), sink, nil)

		tag, ok := m.AddText("kittens")
		require.True(t, ok)
		assert.Equal(t, Tag{Label: "kittens", Value: "kittens"}, tag)
		assert.Equal(t, []string{"kittens"}, m.Tags())
		assert.Equal(t, []string{"kittens"}, sink.values)
	})

	t.Run("vocabulary identifier takes localized label", func(t *testing.T) {
		m := New(newProvider(t), &countingSink{}, nil)

		tag, ok := m.AddText("weblit-create")
		require.True(t, ok)
		assert.Equal(t, "Create", tag.Label)
		assert.Equal(t, "weblit-create", tag.Value)
		assert.True(t, tag.Vocabulary)
		assert.Equal(t, "#4FC3F7", tag.Color)
	})

	t.Run("empty is a no-op", func(t *testing.T) {
		sink := &countingSink{}
		m := New(newProvider(t), sink, nil)

		_, ok := m.AddText("")
		assert.False(t, ok)
		assert.Empty(t, m.Tags())
		assert.Empty(t, sink.values, "sink must not be touched")
	})
}

func TestAddTag(t *testing.T) {
	t.Run("label kept", func(t *testing.T) {
		m := New(newProvider(t), &countingSink{}, nil)

		tag, ok := m.AddTag(Tag{Label: "Make things", Value: "weblit-create"})
		require.True(t, ok)
		assert.Equal(t, "Make things", tag.Label)
		assert.True(t, tag.Vocabulary)
	})

	t.Run("empty label defaults to value", func(t *testing.T) {
		m := New(newProvider(t), &countingSink{}, nil)

		tag, ok := m.AddTag(Tag{Value: "#fun"})
		require.True(t, ok)
		assert.Equal(t, "#fun", tag.Label)
		assert.False(t, tag.Vocabulary)
	})

	t.Run("empty label on vocabulary term uses term label", func(t *testing.T) {
		m := New(newProvider(t), &countingSink{}, nil)

		tag, _ := m.AddTag(Tag{Value: "weblit-search"})
		assert.Equal(t, "Search", tag.Label)
	})

	t.Run("empty value is a no-op", func(t *testing.T) {
		sink := &countingSink{}
		m := New(newProvider(t), sink, nil)

		_, ok := m.AddTag(Tag{Label: "nothing", Value: ""})
		assert.False(t, ok)
		assert.Zero(t, m.Len())
		assert.Empty(t, sink.values)
	})
}

func TestDuplicatesAllowed(t *testing.T) {
	m := New(newProvider(t), &countingSink{}, nil)

	m.AddText("a")
	m.AddText("a")

	assert.Equal(t, []string{"a", "a"}, m.Tags())
	assert.Equal(t, "a, a", m.Value())
}

func TestRemove(t *testing.T) {
	t.Run("removes every occurrence", func(t *testing.T) {
		sink := &countingSink{}
		m := New(newProvider(t), sink, nil)
		m.AddText("a")
		m.AddText("b")
		m.AddText("a")

		n := m.Remove("a")

		assert.Equal(t, 2, n)
		assert.Equal(t, []string{"b"}, m.Tags())
		assert.Equal(t, "b", sink.values[len(sink.values)-1])
	})

	t.Run("missing value leaves sink and surface alone", func(t *testing.T) {
		field := NewField("")
		changes := 0
		field.OnChange(func(string) { changes++ })
		surf := &recordingSurface{}
		m := New(newProvider(t), field, surf)
		m.AddText("a")

		assert.Zero(t, m.Remove("zzz"))
		assert.Equal(t, []string{"a"}, m.Tags())
		assert.Equal(t, "a", field.Value())
		assert.Equal(t, 1, changes)
		assert.Len(t, surf.events, 1)
	})
}

func TestTagsIsCopy(t *testing.T) {
	m := New(newProvider(t), &countingSink{}, nil)
	m.AddText("a")
	m.AddText("b")

	got := m.Tags()
	got[0] = "mutated"

	assert.Equal(t, []string{"a", "b"}, m.Tags())

	chips := m.Chips()
	chips[0].Label = "mutated"
	assert.Equal(t, "a", m.Chips()[0].Label)
}

func TestSerialization(t *testing.T) {
	tests := []struct {
		name string
		add  []string
		want string
	}{
		{"single", []string{"a"}, "a"},
		{"several", []string{"a", "weblit-create", "#fun"}, "a, weblit-create, #fun"},
		{"values with commas kept literal", []string{"x,y", "z"}, "x,y, z"},
		{"empty candidates skipped", []string{"a", "", "b"}, "a, b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			field := NewField("")
			m := New(newProvider(t), field, nil)
			for _, v := range tt.add {
				m.AddText(v)
			}
			assert.Equal(t, tt.want, field.Value())
			assert.Equal(t, tt.want, m.Value())
		})
	}
}

func TestSurface(t *testing.T) {
	surf := &recordingSurface{}
	m := New(newProvider(t), &countingSink{}, surf)

	m.AddText("a")
	m.AddText("weblit-create")
	m.Remove("a")

	require.Len(t, surf.events, 3)
	assert.Equal(t, event{kind: "add", value: "a"}, surf.events[0])
	assert.Equal(t, event{kind: "add", value: "weblit-create"}, surf.events[1])
	assert.Equal(t, event{kind: "remove", value: "a"}, surf.events[2])
}

func TestRelabel(t *testing.T) {
	p := newProvider(t)
	surf := &recordingSurface{}
	sink := &countingSink{}
	m := New(p, sink, surf)

	m.AddText("weblit-create")
	m.AddTag(Tag{Label: "Free", Value: "free"})
	require.True(t, p.SetLanguage("fr"))

	m.Relabel()

	chips := m.Chips()
	assert.Equal(t, "Créer", chips[0].Label)
	assert.Equal(t, "Free", chips[1].Label)
	assert.Len(t, sink.values, 2, "relabel does not touch the sink")

	last := surf.events[len(surf.events)-1]
	assert.Equal(t, "relabel", last.kind)
	assert.Equal(t, chips, last.tags)
}

func TestField(t *testing.T) {
	f := NewField("start")
	assert.Equal(t, "start", f.Value())

	var seen []string
	f.OnChange(func(v string) { seen = append(seen, "first:"+v) })
	f.OnChange(func(v string) { seen = append(seen, "second:"+v) })

	f.SetValue("a, b")
	f.SetValue("a, b")

	assert.Equal(t, "a, b", f.Value())
	assert.Equal(t, []string{"first:a, b", "second:a, b", "first:a, b", "second:a, b"}, seen)
}
