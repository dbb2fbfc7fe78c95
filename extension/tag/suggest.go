// suggest.go implements "tagger suggest", a one-shot suggestion lookup.

package tag

import (
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/jpl-au/tagger/cmd"
	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/log"
	"github.com/jpl-au/tagger/internal/progress"
	"github.com/jpl-au/tagger/internal/resolver"
	"github.com/spf13/cobra"
)

// SuggestResult is the JSON shape of "tagger suggest".
type SuggestResult struct {
	Text        string                `json:"text"`
	Language    string                `json:"language"`
	Suggestions []resolver.Suggestion `json:"suggestions"`
	Warning     string                `json:"warning,omitempty"`
}

func (e *Extension) newSuggestCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "suggest <text>",
		Short: "Suggest tags for partial text",
		Long: `Suggest tags for partial text.

Vocabulary terms come first, then tags from the remote search. If the
remote search fails, the vocabulary terms are shown with a warning.

  tagger suggest crea
  tagger suggest crea --lang fr -o json
  tagger suggest weblit-     # browse vocabulary identifiers`,
		Args: cobra.ExactArgs(1),
		RunE: e.runSuggest,
	}
	c.Flags().Int(extension.FlagLimit, 0, "Maximum suggestions to show (0 for all)")
	c.Flags().Int(extension.FlagMinLength, 0, "Characters required before suggesting")
	return c
}

func (e *Extension) runSuggest(c *cobra.Command, args []string) error {
	text := args[0]
	limit, _ := c.Flags().GetInt(extension.FlagLimit)

	s, err := e.ctx.Sessions().Open(e.options(c))
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	defer func() { _ = e.ctx.Sessions().Close(s.ID()) }()

	result := SuggestResult{
		Text:        text,
		Language:    s.Widget.Language(),
		Suggestions: []resolver.Suggestion{},
	}

	l := log.Event("tag:suggest", "suggest").Author(cmd.Author()).Widget(s.ID()).Tag(text)

	if n := s.Widget.MinLength(); utf8.RuneCountInString(text) < n {
		result.Warning = fmt.Sprintf("type at least %d characters for suggestions", n)
		l.Count(0).Write(nil)
		return e.printSuggestions(result)
	}

	spin := progress.NewSpinner("searching")
	spin.Start(100 * time.Millisecond)
	suggestions, err := s.Widget.Resolver().Resolve(c.Context(), text)
	spin.Stop()

	l.Count(len(suggestions)).Write(err)

	if err != nil {
		result.Warning = "remote search failed, showing vocabulary only: " + err.Error()
	}
	if limit > 0 && len(suggestions) > limit {
		suggestions = suggestions[:limit]
	}
	if suggestions != nil {
		result.Suggestions = suggestions
	}
	return e.printSuggestions(result)
}

func (e *Extension) printSuggestions(r SuggestResult) error {
	if cmd.JSON() {
		return cmd.PrintJSON(r)
	}
	w := cmd.Out()
	if r.Warning != "" {
		fmt.Fprintf(w, "warning: %s\n", r.Warning)
	}
	if len(r.Suggestions) == 0 {
		fmt.Fprintln(w, "no suggestions")
		return nil
	}
	writeSuggestions(w, r.Suggestions)
	return nil
}
