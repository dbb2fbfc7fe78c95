// Package render is the default display for a tagger: a board of chips that
// tracks the tag list through the taglist.Surface hooks.
//
// Vocabulary chips and free chips are kept in separate groups unless the
// board was created in mixed mode, in which case one group holds every chip
// in insertion order. The board only mirrors the list; it never mutates it.
package render

import (
	"fmt"
	"strings"
	"sync"

	"github.com/charmbracelet/glamour"

	"github.com/jpl-au/tagger/internal/taglist"
)

// Group is a titled run of chips.
type Group struct {
	Title string        `json:"title"`
	Chips []taglist.Tag `json:"chips"`
}

// Board renders the chips of one tag list.
type Board struct {
	mix bool

	mu    sync.Mutex
	chips []taglist.Tag
}

// NewBoard creates an empty board. mix puts vocabulary and free chips in a
// single group.
func NewBoard(mix bool) *Board {
	return &Board{mix: mix}
}

// ChipAdded implements taglist.Surface.
func (b *Board) ChipAdded(t taglist.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chips = append(b.chips, t)
}

// ChipRemoved implements taglist.Surface. Every chip carrying value goes,
// matching the list's all-occurrence removal.
func (b *Board) ChipRemoved(value string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	kept := b.chips[:0:0]
	for _, c := range b.chips {
		if c.Value != value {
			kept = append(kept, c)
		}
	}
	b.chips = kept
}

// Relabel implements taglist.Surface.
func (b *Board) Relabel(tags []taglist.Tag) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.chips = append(b.chips[:0:0], tags...)
}

// Len returns the number of chips shown.
func (b *Board) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.chips)
}

// Groups returns the chips grouped for display. Empty groups are omitted.
func (b *Board) Groups() []Group {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.mix {
		if len(b.chips) == 0 {
			return nil
		}
		return []Group{{Title: "Tags", Chips: append([]taglist.Tag(nil), b.chips...)}}
	}

	var vocab, free []taglist.Tag
	for _, c := range b.chips {
		if c.Vocabulary {
			vocab = append(vocab, c)
		} else {
			free = append(free, c)
		}
	}
	var groups []Group
	if len(vocab) > 0 {
		groups = append(groups, Group{Title: "Vocabulary", Chips: vocab})
	}
	if len(free) > 0 {
		groups = append(groups, Group{Title: "Free", Chips: free})
	}
	return groups
}

// String renders the board as plain text, one group per line. Chips show
// their label; a free tag's label is the text as typed, so no "#" is added
// (remote terms already carry theirs):
//
//	Vocabulary: [Create] [Search]
//	Free: [kittens] [#fun]
func (b *Board) String() string {
	var sb strings.Builder
	for _, g := range b.Groups() {
		sb.WriteString(g.Title)
		sb.WriteString(":")
		for _, c := range g.Chips {
			fmt.Fprintf(&sb, " [%s]", c.Label)
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// Markdown renders the board as markdown. Vocabulary chips show their
// identifier when it differs from the label.
func (b *Board) Markdown() string {
	groups := b.Groups()
	if len(groups) == 0 {
		return "_No tags._\n"
	}
	var sb strings.Builder
	for i, g := range groups {
		if i > 0 {
			sb.WriteString("\n")
		}
		fmt.Fprintf(&sb, "### %s\n\n", g.Title)
		for _, c := range g.Chips {
			switch {
			case c.Label != c.Value && c.Color != "":
				fmt.Fprintf(&sb, "- **%s** `%s` %s\n", c.Label, c.Value, c.Color)
			case c.Label != c.Value:
				fmt.Fprintf(&sb, "- **%s** `%s`\n", c.Label, c.Value)
			default:
				fmt.Fprintf(&sb, "- %s\n", c.Label)
			}
		}
	}
	return sb.String()
}

// Terminal renders the markdown form with glamour. On a render failure the
// raw markdown is returned.
func (b *Board) Terminal() string {
	md := b.Markdown()
	out, err := glamour.Render(md, "dark")
	if err != nil {
		return md
	}
	return out
}
