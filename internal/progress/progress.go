// Package progress provides CLI progress indicators. Output goes to stderr
// to keep stdout clean for piping, and nothing is drawn unless stderr is a
// terminal.
package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"golang.org/x/term"
)

// minItems is the minimum number of items before showing progress.
const minItems = 5

// clearLine blanks the current terminal line.
const clearLine = "\r                                        \r"

// Progress tracks and displays progress over a known number of items.
type Progress struct {
	w       io.Writer
	label   string
	total   int
	current int
	isTTY   bool
}

// New creates a progress reporter that writes to stderr.
// If total is less than minItems, progress updates are suppressed.
func New(label string, total int) *Progress {
	return &Progress{
		w:     os.Stderr,
		label: label,
		total: total,
		isTTY: term.IsTerminal(int(os.Stderr.Fd())),
	}
}

// Increment advances the counter by one and redraws.
func (p *Progress) Increment() {
	p.current++
	p.print()
}

func (p *Progress) print() {
	if !p.isTTY || p.total < minItems {
		return
	}
	pct := (p.current * 100) / p.total
	fmt.Fprintf(p.w, "\r%s... %d/%d (%d%%)", p.label, p.current, p.total, pct)
}

// Done clears the progress line to make way for final output.
func (p *Progress) Done() {
	if p.isTTY && p.total >= minItems {
		fmt.Fprint(p.w, clearLine)
	}
}

// Spinner shows that a request of unknown duration, such as a remote tag
// search, is still outstanding.
type Spinner struct {
	w      io.Writer
	label  string
	isTTY  bool
	frames []string

	mu      sync.Mutex
	frame   int
	running bool
	stop    chan struct{}
	done    chan struct{}
}

// NewSpinner creates a spinner that writes to stderr.
func NewSpinner(label string) *Spinner {
	return &Spinner{
		w:      os.Stderr,
		label:  label,
		isTTY:  term.IsTerminal(int(os.Stderr.Fd())),
		frames: []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"},
	}
}

// Start draws the spinner and animates it every interval until Stop.
func (s *Spinner) Start(interval time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.isTTY || s.running {
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	s.done = make(chan struct{})
	fmt.Fprintf(s.w, "%s %s...", s.frames[0], s.label)

	go s.animate(interval, s.stop, s.done)
}

func (s *Spinner) animate(interval time.Duration, stop, done chan struct{}) {
	defer close(done)
	t := time.NewTicker(interval)
	defer t.Stop()
	for {
		select {
		case <-stop:
			return
		case <-t.C:
			s.tick()
		}
	}
}

func (s *Spinner) tick() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.frame = (s.frame + 1) % len(s.frames)
	fmt.Fprintf(s.w, "\r%s %s...", s.frames[s.frame], s.label)
}

// Stop halts the animation and clears the spinner line.
func (s *Spinner) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	close(s.stop)
	done := s.done
	s.mu.Unlock()

	<-done
	fmt.Fprint(s.w, clearLine)
}
