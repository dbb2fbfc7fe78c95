// field.go implements the default output sink.

package taglist

import "sync"

// Field is a bound text value that notifies listeners when it changes,
// standing in for a form field.
type Field struct {
	mu        sync.Mutex
	value     string
	listeners []func(string)
}

// NewField creates a Field holding v.
func NewField(v string) *Field {
	return &Field{value: v}
}

// SetValue stores v and notifies every listener, in registration order.
// Listeners fire even when v is unchanged.
func (f *Field) SetValue(v string) {
	f.mu.Lock()
	f.value = v
	ls := make([]func(string), len(f.listeners))
	copy(ls, f.listeners)
	f.mu.Unlock()

	for _, fn := range ls {
		fn(v)
	}
}

// Value returns the current value.
func (f *Field) Value() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.value
}

// OnChange registers fn to run after every SetValue.
func (f *Field) OnChange(fn func(string)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.listeners = append(f.listeners, fn)
}
