// state.go implements the input-commit state machine.
//
// Idle            --Keystroke (len >= min)--> SuggestionsOpen
// SuggestionsOpen --FocusSuggestion-->       SuggestionsOpen (blur disarmed)
// SuggestionsOpen --Close/Select-->          Idle            (blur re-armed)
// Idle            --KeyDown Enter|Comma-->   Idle            (commit input)
// Idle            --Blur-->                  Idle            (commit input)

package widget

import (
	"context"
	"unicode/utf8"

	"github.com/jpl-au/tagger/internal/resolver"
	"github.com/jpl-au/tagger/internal/taglist"
)

// State is the suggestion state of a widget.
type State int

const (
	Idle State = iota
	SuggestionsOpen
)

func (s State) String() string {
	if s == SuggestionsOpen {
		return "suggestions-open"
	}
	return "idle"
}

// Key is a key press the widget reacts to.
type Key int

const (
	KeyOther Key = iota
	KeyEnter
	KeyComma
)

// State returns the current state.
func (w *Widget) State() State {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state
}

// Suggestions returns a copy of the suggestions currently on offer.
func (w *Widget) Suggestions() []resolver.Suggestion {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]resolver.Suggestion(nil), w.suggestions...)
}

// Keystroke reacts to a change of the input text. At or above the minimum
// length a suggestion request starts; below it any open list closes.
func (w *Widget) Keystroke(ctx context.Context) {
	text := w.input.Text()
	if utf8.RuneCountInString(text) < w.minLength {
		w.closeSuggestions()
		return
	}

	w.mu.Lock()
	w.state = SuggestionsOpen
	w.request++
	req := w.request
	w.mu.Unlock()

	w.resolver.Suggest(ctx, text, func(s []resolver.Suggestion) { w.deliver(req, s) })
}

// deliver stores the suggestion list for request req. Lists for an older
// request are dropped. An empty list closes the menu.
func (w *Widget) deliver(req uint64, s []resolver.Suggestion) {
	w.mu.Lock()
	if w.state != SuggestionsOpen || req != w.request {
		w.mu.Unlock()
		return
	}
	w.suggestions = s
	w.focused = -1
	if len(s) == 0 {
		w.state = Idle
		w.blurArmed = true
	}
	hook := w.onSuggest
	w.mu.Unlock()

	if hook != nil {
		hook(s)
	}
}

// FocusSuggestion highlights suggestion i and places its value in the
// input. While a suggestion is focused, losing focus does not commit the
// input text, so a pointer selection is not pre-empted. It reports false
// when no list is open or i is out of range.
func (w *Widget) FocusSuggestion(i int) bool {
	w.mu.Lock()
	if w.state != SuggestionsOpen || i < 0 || i >= len(w.suggestions) {
		w.mu.Unlock()
		return false
	}
	w.focused = i
	w.blurArmed = false
	value := w.suggestions[i].Value
	w.mu.Unlock()

	w.input.SetText(value)
	return true
}

// CloseSuggestions closes the list without selecting and re-arms the blur
// commit.
func (w *Widget) CloseSuggestions() {
	w.closeSuggestions()
}

func (w *Widget) closeSuggestions() {
	w.resolver.Cancel()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.request++
	w.state = Idle
	w.blurArmed = true
	w.focused = -1
	w.suggestions = nil
}

// Select commits suggestion i from the open list.
func (w *Widget) Select(i int) (taglist.Tag, bool) {
	w.mu.Lock()
	if i < 0 || i >= len(w.suggestions) {
		w.mu.Unlock()
		return taglist.Tag{}, false
	}
	s := w.suggestions[i]
	w.mu.Unlock()

	return w.CommitSuggestion(s)
}

// KeyDown handles a key press. Enter and comma commit: the focused
// suggestion when Enter is pressed on one, otherwise the input text. It
// reports whether the key's default action should be suppressed.
func (w *Widget) KeyDown(k Key) bool {
	if k != KeyEnter && k != KeyComma {
		return false
	}

	w.mu.Lock()
	focused := -1
	if k == KeyEnter && w.state == SuggestionsOpen {
		focused = w.focused
	}
	w.mu.Unlock()

	if focused >= 0 {
		w.Select(focused)
	} else {
		w.CommitInput()
	}
	return true
}

// Blur handles the input losing focus. The input text is committed unless
// a suggestion is focused.
func (w *Widget) Blur() (taglist.Tag, bool) {
	w.mu.Lock()
	armed := w.blurArmed
	w.mu.Unlock()

	if !armed {
		return taglist.Tag{}, false
	}
	return w.CommitInput()
}
