package widget

import "sync"

// Buffer is an in-memory Input.
type Buffer struct {
	mu   sync.Mutex
	text string
}

// Text returns the buffered text.
func (b *Buffer) Text() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.text
}

// SetText replaces the buffered text.
func (b *Buffer) SetText(s string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.text = s
}
