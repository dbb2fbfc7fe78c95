// Package taglist manages the ordered tags attached to one field.
//
// The list holds tag values in insertion order; that order is also the
// display order and the serialization order. After every mutation the
// output sink receives the values joined with ", ".
//
// Two behaviours are deliberate and covered by tests: adding a value that
// is already present appends a duplicate, and Remove drops every occurrence
// of a value, not just the first.
package taglist

import (
	"strings"
	"sync"

	"github.com/jpl-au/tagger/internal/vocab"
)

// Separator joins values in the serialized form.
const Separator = ", "

// Tag is a committed tag. Value is the stored form; Label is what a chip
// shows. Vocabulary tags carry their term color.
type Tag struct {
	Label      string `json:"label"`
	Value      string `json:"value"`
	Vocabulary bool   `json:"vocabulary,omitempty"`
	Color      string `json:"color,omitempty"`
}

// Lookup resolves a value against the controlled vocabulary.
type Lookup interface {
	Lookup(id string) (vocab.Term, bool)
}

// Sink receives the serialized tag list after every mutation.
type Sink interface {
	SetValue(v string)
}

// Surface is told about chip changes so it can keep its rendering in step
// with the list. Chips are correlated with list entries by value.
type Surface interface {
	ChipAdded(t Tag)
	ChipRemoved(value string)
	Relabel(tags []Tag)
}

// Manager owns one tag list. All mutation is serialized, and the sink and
// surface are notified in mutation order.
type Manager struct {
	vocab   Lookup
	sink    Sink
	surface Surface // may be nil

	mu   sync.Mutex
	tags []Tag
}

// New creates an empty Manager. surface may be nil.
func New(v Lookup, sink Sink, surface Surface) *Manager {
	return &Manager{vocab: v, sink: sink, surface: surface, tags: []Tag{}}
}

// AddText commits raw input text. If the text is a vocabulary identifier
// the tag takes the term's localized label. It reports false, changing
// nothing, when the text is empty.
func (m *Manager) AddText(raw string) (Tag, bool) {
	return m.add(Tag{Label: raw, Value: raw}, true)
}

// AddTag commits an explicit {label, value} record, typically a selected
// suggestion. The label is kept; the vocabulary is consulted only for
// styling. It reports false when the value is empty.
func (m *Manager) AddTag(t Tag) (Tag, bool) {
	return m.add(t, false)
}

func (m *Manager) add(t Tag, relabel bool) (Tag, bool) {
	if t.Value == "" {
		return Tag{}, false
	}
	if term, ok := m.vocab.Lookup(t.Value); ok {
		t.Vocabulary = true
		t.Color = term.Color
		if relabel || t.Label == "" {
			t.Label = term.Label
		}
	}
	if t.Label == "" {
		t.Label = t.Value
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.tags = append(m.tags, t)
	m.sync()
	if m.surface != nil {
		m.surface.ChipAdded(t)
	}
	return t, true
}

// Remove drops every occurrence of value and resynchronizes the sink.
// It returns how many entries were removed. Removing an absent value
// leaves the sink untouched.
func (m *Manager) Remove(value string) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	kept := m.tags[:0:0]
	for _, t := range m.tags {
		if t.Value != value {
			kept = append(kept, t)
		}
	}
	n := len(m.tags) - len(kept)
	if n == 0 {
		return 0
	}
	m.tags = kept
	m.sync()
	if m.surface != nil {
		m.surface.ChipRemoved(value)
	}
	return n
}

// Tags returns a copy of the current values in order.
func (m *Manager) Tags() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.tags))
	for i, t := range m.tags {
		out[i] = t.Value
	}
	return out
}

// Chips returns a copy of the current tags with their labels.
func (m *Manager) Chips() []Tag {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]Tag, len(m.tags))
	copy(out, m.tags)
	return out
}

// Value returns the serialized form of the list.
func (m *Manager) Value() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.serialize()
}

// Len returns the number of entries, duplicates included.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.tags)
}

// Relabel refreshes vocabulary labels after a language change and hands
// the result to the surface. The list values and the sink are unchanged.
func (m *Manager) Relabel() {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, t := range m.tags {
		if !t.Vocabulary {
			continue
		}
		if term, ok := m.vocab.Lookup(t.Value); ok {
			m.tags[i].Label = term.Label
		}
	}
	if m.surface != nil {
		out := make([]Tag, len(m.tags))
		copy(out, m.tags)
		m.surface.Relabel(out)
	}
}

func (m *Manager) serialize() string {
	values := make([]string, len(m.tags))
	for i, t := range m.tags {
		values[i] = t.Value
	}
	return strings.Join(values, Separator)
}

// sync pushes the serialized list to the sink. Caller holds m.mu.
func (m *Manager) sync() {
	m.sink.SetValue(m.serialize())
}
