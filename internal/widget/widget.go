// Package widget assembles one tagger instance: an input binding, a tag
// list synchronized to an output sink, a display, and the suggestion flow
// between them.
//
// Each Widget owns all of its state. Several widgets may run side by side
// (the MCP server hosts many at once); they share nothing unless the caller
// passes the same dependencies to each.
package widget

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jpl-au/tagger/internal/log"
	"github.com/jpl-au/tagger/internal/render"
	"github.com/jpl-au/tagger/internal/resolver"
	"github.com/jpl-au/tagger/internal/search"
	"github.com/jpl-au/tagger/internal/taglist"
	"github.com/jpl-au/tagger/internal/vocab"
)

// ErrConfig is returned by New when a required binding is missing.
var ErrConfig = errors.New("tagger configuration error")

// DefaultMinLength is the number of characters typed before suggestions
// are requested.
const DefaultMinLength = 1

// Input is the text field the user types into.
type Input interface {
	Text() string
	SetText(s string)
}

// Options configures a Widget. Input and Output are required.
type Options struct {
	Input   Input
	Output  taglist.Sink
	Display taglist.Surface // nil creates a render.Board

	MixTags    bool   // show vocabulary and free tags in one group
	Lang       string // preferred language
	SystemLang string // language reported by the environment, e.g. $LANG
	MinLength  int    // 0 means DefaultMinLength

	// Vocab must not be shared with a widget using another language.
	// nil creates a provider over the built-in catalog.
	Vocab    *vocab.Provider
	Searcher search.Searcher // nil disables remote suggestions
	Timeout  time.Duration   // 0 means search.DefaultTimeout

	// OnSuggest receives each delivered suggestion list. It runs on the
	// goroutine that completed the search.
	OnSuggest func([]resolver.Suggestion)
}

// Widget is a single tagger instance.
type Widget struct {
	id        string
	input     Input
	display   taglist.Surface
	vocab     *vocab.Provider
	resolver  *resolver.Resolver
	tags      *taglist.Manager
	minLength int
	onSuggest func([]resolver.Suggestion)

	mu          sync.Mutex
	state       State
	blurArmed   bool
	focused     int
	suggestions []resolver.Suggestion
	request     uint64 // bumped by every Keystroke and close
}

// New validates opts and creates a Widget. A missing Input or Output is
// reported once through the audit log and returned as ErrConfig.
func New(opts Options) (*Widget, error) {
	if err := check(opts); err != nil {
		log.Event("widget:new", "init").Write(err)
		return nil, err
	}

	w := &Widget{
		id:        uuid.NewString(),
		input:     opts.Input,
		display:   opts.Display,
		vocab:     opts.Vocab,
		minLength: opts.MinLength,
		onSuggest: opts.OnSuggest,
		state:     Idle,
		blurArmed: true,
		focused:   -1,
	}
	if w.display == nil {
		w.display = render.NewBoard(opts.MixTags)
	}
	if w.vocab == nil {
		w.vocab = vocab.NewWeblit()
	}
	if w.minLength <= 0 {
		w.minLength = DefaultMinLength
	}

	var ropts []resolver.Option
	if opts.Timeout > 0 {
		ropts = append(ropts, resolver.WithTimeout(opts.Timeout))
	}
	w.resolver = resolver.New(w.vocab, opts.Searcher, ropts...)
	w.tags = taglist.New(w.vocab, opts.Output, w.display)

	lang := w.initLanguage(opts.Lang, opts.SystemLang)
	log.Event("widget:new", "init").Widget(w.id).Resolved(lang).
		Detail("requested", opts.Lang).Write(nil)
	return w, nil
}

func check(opts Options) error {
	var missing []string
	if opts.Input == nil {
		missing = append(missing, "input")
	}
	if opts.Output == nil {
		missing = append(missing, "output")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrConfig, strings.Join(missing, " and "))
	}
	return nil
}

// initLanguage applies the fallback chain: the preferred language, then
// the environment's language, then the catalog default. Each preference
// may select a catalog language by its base ("fr-CA" selects "fr").
func (w *Widget) initLanguage(lang, system string) string {
	if m := w.vocab.Match(lang); m != "" && w.vocab.SetLanguage(m) {
		return w.vocab.Language()
	}
	if m := w.vocab.Match(system); m != "" && w.vocab.SetLanguage(m) {
		return w.vocab.Language()
	}
	w.vocab.SetLanguage(w.vocab.Default())
	return w.vocab.Language()
}

// ID returns the widget's unique identifier.
func (w *Widget) ID() string { return w.id }

// Display returns the surface the widget renders to.
func (w *Widget) Display() taglist.Surface { return w.display }

// Vocab returns the widget's vocabulary provider.
func (w *Widget) Vocab() *vocab.Provider { return w.vocab }

// Resolver returns the widget's suggestion resolver.
func (w *Widget) Resolver() *resolver.Resolver { return w.resolver }

// MinLength returns the characters required before suggesting.
func (w *Widget) MinLength() int { return w.minLength }

// Language returns the active vocabulary language.
func (w *Widget) Language() string { return w.vocab.Language() }

// SetLanguage switches the vocabulary language and relabels existing
// vocabulary chips. It reports false, changing nothing, for an unsupported
// code.
func (w *Widget) SetLanguage(code string) bool {
	if !w.vocab.Supported(code) {
		log.Event("widget:lang", "lang").Widget(w.id).
			Write(fmt.Errorf("%w: %s", vocab.ErrUnsupported, code))
		return false
	}
	w.vocab.SetLanguage(code)
	w.tags.Relabel()
	log.Event("widget:lang", "lang").Widget(w.id).Resolved(w.vocab.Language()).Write(nil)
	return true
}

// CommitInput adds the current input text as a tag and clears the input.
// Empty input is a no-op.
func (w *Widget) CommitInput() (taglist.Tag, bool) {
	w.closeSuggestions()
	t, ok := w.tags.AddText(w.input.Text())
	if !ok {
		return t, false
	}
	w.input.SetText("")
	w.logAdd(t)
	return t, true
}

// CommitSuggestion adds a suggestion record as a tag, keeping its label,
// and clears the input.
func (w *Widget) CommitSuggestion(s resolver.Suggestion) (taglist.Tag, bool) {
	w.closeSuggestions()
	t, ok := w.tags.AddTag(taglist.Tag{Label: s.Label, Value: s.Value})
	if !ok {
		return t, false
	}
	w.input.SetText("")
	w.logAdd(t)
	return t, true
}

// Remove removes every tag with value and returns how many were removed.
func (w *Widget) Remove(value string) int {
	n := w.tags.Remove(value)
	log.Event("widget:remove", "remove").Widget(w.id).Tag(value).Count(n).Write(nil)
	return n
}

// Tags returns a copy of the committed values in order.
func (w *Widget) Tags() []string { return w.tags.Tags() }

// Chips returns a copy of the committed tags with their labels.
func (w *Widget) Chips() []taglist.Tag { return w.tags.Chips() }

// Value returns the serialized tag list.
func (w *Widget) Value() string { return w.tags.Value() }

// Close supersedes any outstanding suggestion request.
func (w *Widget) Close() {
	w.resolver.Cancel()
}

func (w *Widget) logAdd(t taglist.Tag) {
	log.Event("widget:add", "add").Widget(w.id).Tag(t.Value).
		Detail("vocabulary", t.Vocabulary).Write(nil)
}
