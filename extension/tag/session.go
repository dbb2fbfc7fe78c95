// session.go implements "tagger session", a line-oriented tagging session
// that drives one widget the way keystrokes drive the input field.

package tag

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/jpl-au/tagger/cmd"
	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/log"
	"github.com/jpl-au/tagger/internal/render"
	"github.com/jpl-au/tagger/internal/resolver"
	"github.com/jpl-au/tagger/internal/session"
	"github.com/jpl-au/tagger/internal/widget"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// suggestWait bounds how long a line waits for suggestions beyond the
// search timeout.
const suggestWait = time.Second

func (e *Extension) newSessionCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "session",
		Short: "Interactive tagging session",
		Long: `Read lines from standard input and tag interactively.

  text        show suggestions for text
  text,       commit text
  +text       commit text
  (empty)     commit the current text, or the focused suggestion
  :N          commit suggestion N
  >N          focus suggestion N
  :rm value   remove every tag with value
  :lang code  switch language
  :langs      list languages
  :tags       show tags
  :quit       finish

At end of input any pending text is committed. The final value is printed
on exit.`,
		Args: cobra.NoArgs,
		RunE: e.runSession,
	}
	c.Flags().Bool(extension.FlagMix, false, "Show vocabulary and free tags in one group")
	c.Flags().Int(extension.FlagMinLength, 0, "Characters required before suggesting")
	return c
}

// repl holds one running session.
type repl struct {
	ctx     context.Context
	w       io.Writer
	s       *session.Session
	results chan []resolver.Suggestion
	wait    time.Duration
}

func (e *Extension) runSession(c *cobra.Command, _ []string) error {
	r := &repl{
		ctx:     c.Context(),
		w:       cmd.Out(),
		results: make(chan []resolver.Suggestion, 1),
	}
	if r.ctx == nil {
		r.ctx = context.Background()
	}

	opts := e.options(c)
	opts.OnSuggest = r.deliver
	r.wait = opts.Timeout + suggestWait

	s, err := e.ctx.Sessions().Open(opts)
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	defer func() { _ = e.ctx.Sessions().Close(s.ID()) }()
	r.s = s

	log.Event("tag:session", "open").Author(cmd.Author()).Widget(s.ID()).
		Resolved(s.Widget.Language()).Write(nil)

	sc := bufio.NewScanner(c.InOrStdin())
	quit := false
	for !quit && sc.Scan() {
		quit = r.line(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return cmd.PrintJSONError(fmt.Errorf("reading input: %w", err))
	}
	if !quit {
		r.s.Widget.Blur()
	}

	result := ListResult{
		Language: s.Widget.Language(),
		Tags:     s.Widget.Tags(),
		Chips:    s.Widget.Chips(),
		Value:    s.Output.Value(),
	}
	log.Event("tag:session", "close").Author(cmd.Author()).Widget(s.ID()).
		Resolved(result.Value).Count(len(result.Tags)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}
	fmt.Fprintf(r.w, "value: %s\n", result.Value)
	return nil
}

// deliver hands a suggestion list to the waiting line, replacing any list
// nobody collected.
func (r *repl) deliver(s []resolver.Suggestion) {
	select {
	case <-r.results:
	default:
	}
	r.results <- s
}

// line handles one input line and reports whether the session should end.
func (r *repl) line(text string) bool {
	wg := r.s.Widget
	switch {
	case text == ":quit":
		return true

	case text == ":tags":
		r.board()

	case text == ":langs":
		for _, l := range wg.Vocab().SupportedLanguages() {
			mark := " "
			if l == wg.Language() {
				mark = "*"
			}
			fmt.Fprintf(r.w, "%s %s\n", mark, l)
		}

	case strings.HasPrefix(text, ":lang "):
		code := strings.TrimSpace(strings.TrimPrefix(text, ":lang "))
		if !wg.SetLanguage(code) {
			fmt.Fprintf(r.w, "unsupported language %q (did you mean %s?)\n", code, wg.Vocab().Closest(code))
			return false
		}
		fmt.Fprintf(r.w, "language: %s\n", wg.Language())

	case strings.HasPrefix(text, ":rm "):
		v := strings.TrimPrefix(text, ":rm ")
		fmt.Fprintf(r.w, "removed %d\n", wg.Remove(v))

	case strings.HasPrefix(text, ":") || strings.HasPrefix(text, ">"):
		n, err := strconv.Atoi(text[1:])
		if err != nil {
			fmt.Fprintf(r.w, "unknown command %q\n", text)
			return false
		}
		if text[0] == '>' {
			if !wg.FocusSuggestion(n - 1) {
				fmt.Fprintf(r.w, "no suggestion %d\n", n)
			}
			return false
		}
		if t, ok := wg.Select(n - 1); ok {
			fmt.Fprintf(r.w, "added %s\n", t.Label)
		} else {
			fmt.Fprintf(r.w, "no suggestion %d\n", n)
		}

	case strings.HasPrefix(text, "+"):
		r.s.Input.SetText(text[1:])
		r.commit(widget.KeyEnter)

	case strings.HasSuffix(text, ","):
		r.s.Input.SetText(strings.TrimSuffix(text, ","))
		r.commit(widget.KeyComma)

	case text == "":
		r.commit(widget.KeyEnter)

	default:
		r.s.Input.SetText(text)
		r.suggest()
	}
	return false
}

// commit presses k and reports the tag it added, if any.
func (r *repl) commit(k widget.Key) {
	before := len(r.s.Widget.Chips())
	r.s.Widget.KeyDown(k)
	chips := r.s.Widget.Chips()
	if len(chips) > before {
		fmt.Fprintf(r.w, "added %s\n", chips[len(chips)-1].Label)
	}
}

// suggest requests suggestions for the input and waits for the list.
func (r *repl) suggest() {
	select {
	case <-r.results:
	default:
	}

	r.s.Widget.Keystroke(r.ctx)
	if r.s.Widget.State() != widget.SuggestionsOpen {
		return
	}

	select {
	case s := <-r.results:
		if len(s) == 0 {
			fmt.Fprintln(r.w, "no suggestions")
			return
		}
		writeSuggestions(r.w, s)
	case <-time.After(r.wait):
		fmt.Fprintln(r.w, "no suggestions")
	}
}

// board prints the chips, rendered with glamour on a terminal.
func (r *repl) board() {
	b, ok := r.s.Widget.Display().(*render.Board)
	if !ok {
		return
	}
	if term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Fprint(r.w, b.Terminal())
		return
	}
	fmt.Fprint(r.w, b.String())
}
