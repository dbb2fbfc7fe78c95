// Package resolver produces autocomplete suggestions for a partial tag.
//
// Suggestions come from two places: vocabulary terms matched synchronously
// against the fragment, and free-form tags returned by a remote search.
// Vocabulary suggestions always come first.
//
// Each Suggest call starts a new generation. When a response arrives for a
// generation that has since been superseded (a newer keystroke, a commit),
// it is dropped, so a slow response never overwrites fresher suggestions.
// A failed or timed-out search still delivers the vocabulary subset.
package resolver

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/jpl-au/tagger/internal/log"
	"github.com/jpl-au/tagger/internal/search"
	"github.com/jpl-au/tagger/internal/vocab"
)

// Source identifies where a suggestion came from.
type Source int

const (
	Vocabulary Source = iota
	Remote
)

func (s Source) String() string {
	if s == Remote {
		return "remote"
	}
	return "vocabulary"
}

// MarshalJSON encodes the source by name.
func (s Source) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// Suggestion is a candidate tag offered while the user types.
type Suggestion struct {
	Label  string `json:"label"`
	Value  string `json:"value"`
	Source Source `json:"source"`
	Raw    any    `json:"raw,omitempty"`
}

// Terms is the part of the vocabulary provider the resolver reads.
type Terms interface {
	AllTerms() []vocab.Term
	Namespace() string
}

// Resolver merges vocabulary and remote suggestions.
type Resolver struct {
	vocab   Terms
	search  search.Searcher // nil disables remote suggestions
	timeout time.Duration

	mu  sync.Mutex
	gen uint64
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithTimeout bounds each remote search. Zero disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(r *Resolver) { r.timeout = d }
}

// New creates a Resolver. s may be nil for vocabulary-only suggestions.
func New(v Terms, s search.Searcher, opts ...Option) *Resolver {
	r := &Resolver{vocab: v, search: s, timeout: search.DefaultTimeout}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Match returns the vocabulary suggestions for text, ordered by identifier.
func (r *Resolver) Match(text string) []Suggestion {
	m := newMatcher(text, r.vocab.Namespace())
	var out []Suggestion
	for _, t := range r.vocab.AllTerms() {
		if m.match(t) {
			out = append(out, Suggestion{Label: t.Label, Value: t.ID, Source: Vocabulary, Raw: t})
		}
	}
	return out
}

// Suggest collects suggestions for text and passes them to fn from another
// goroutine once the remote search completes. fn runs at most once, and
// not at all if a later Suggest or Cancel supersedes this call before the
// search returns. A call superseded while fn is running is not detected
// here; callers that store the list track their own request sequence.
func (r *Resolver) Suggest(ctx context.Context, text string, fn func([]Suggestion)) {
	gen := r.advance()
	local := r.Match(text)

	go func() {
		remote, _ := r.fetch(ctx, text)
		if !r.current(gen) {
			slog.Debug("dropping superseded suggestions", "text", text, "generation", gen)
			return
		}
		fn(append(local, remote...))
	}()
}

// Resolve is the synchronous form of Suggest. On a remote failure it
// returns the vocabulary subset together with the error.
func (r *Resolver) Resolve(ctx context.Context, text string) ([]Suggestion, error) {
	local := r.Match(text)
	remote, err := r.fetch(ctx, text)
	return append(local, remote...), err
}

// Cancel supersedes any outstanding Suggest call.
func (r *Resolver) Cancel() {
	r.advance()
}

func (r *Resolver) advance() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.gen++
	return r.gen
}

func (r *Resolver) current(gen uint64) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.gen == gen
}

// fetch runs one remote search and maps the results to suggestions.
func (r *Resolver) fetch(ctx context.Context, text string) ([]Suggestion, error) {
	if r.search == nil {
		return nil, nil
	}
	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	tags, err := r.search.Search(ctx, text)
	if err != nil {
		log.Event("resolver:suggest", "search").Tag(text).Write(err)
		slog.Warn("tag search failed, using vocabulary only", "text", text, "error", err)
		return nil, err
	}

	out := make([]Suggestion, 0, len(tags))
	for _, t := range tags {
		out = append(out, Suggestion{Label: t.Term, Value: t.Term, Source: Remote, Raw: t.Raw})
	}
	return out, nil
}
