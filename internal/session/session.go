// Package session keeps the live tagger instances of a long-running
// process, keyed by widget ID.
package session

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/jpl-au/tagger/internal/taglist"
	"github.com/jpl-au/tagger/internal/widget"
)

// ErrNotFound is returned when no session has the requested ID.
var ErrNotFound = errors.New("session not found")

// Session is one hosted widget together with the sink it writes to.
type Session struct {
	Widget *widget.Widget
	Input  *widget.Buffer
	Output *taglist.Field
}

// ID returns the session's widget ID.
func (s *Session) ID() string { return s.Widget.ID() }

// Registry holds sessions. Safe for concurrent use.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{sessions: make(map[string]*Session)}
}

// Open creates a widget from opts, binding a fresh in-memory input and
// output field, and registers it.
func (r *Registry) Open(opts widget.Options) (*Session, error) {
	s := &Session{Input: &widget.Buffer{}, Output: taglist.NewField("")}
	opts.Input = s.Input
	opts.Output = s.Output

	w, err := widget.New(opts)
	if err != nil {
		return nil, err
	}
	s.Widget = w

	r.mu.Lock()
	r.sessions[w.ID()] = s
	r.mu.Unlock()
	return s, nil
}

// Get returns the session with id.
func (r *Registry) Get(id string) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return s, nil
}

// Close removes the session with id and cancels its pending suggestions.
func (r *Registry) Close(id string) error {
	r.mu.Lock()
	s, ok := r.sessions[id]
	delete(r.sessions, id)
	r.mu.Unlock()

	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	s.Widget.Close()
	return nil
}

// IDs returns the open session IDs, sorted.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	ids := make([]string, 0, len(r.sessions))
	for id := range r.sessions {
		ids = append(ids, id)
	}
	r.mu.RUnlock()
	sort.Strings(ids)
	return ids
}

// Len returns the number of open sessions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sessions)
}
