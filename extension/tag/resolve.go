// resolve.go implements "tagger resolve", which commits each argument as a
// tag and prints the resulting list.

package tag

import (
	"fmt"
	"os"

	"github.com/jpl-au/tagger/cmd"
	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/log"
	"github.com/jpl-au/tagger/internal/progress"
	"github.com/jpl-au/tagger/internal/render"
	"github.com/jpl-au/tagger/internal/taglist"
	"github.com/jpl-au/tagger/internal/validate"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// ListResult is the JSON shape of a finished tag list.
type ListResult struct {
	Language string        `json:"language"`
	Tags     []string      `json:"tags"`
	Chips    []taglist.Tag `json:"chips"`
	Value    string        `json:"value"`
	Removed  int           `json:"removed,omitempty"`
}

func (e *Extension) newResolveCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "resolve <tag>...",
		Short: "Build a tag list and print its serialized value",
		Long: `Commit each argument as a tag, as if typed and confirmed with Enter.

Vocabulary identifiers are shown with their localized label; anything else
becomes a free tag. The serialized value joins tag values with ", ".

  tagger resolve weblit-composing games
  tagger resolve weblit-composing games --rm games
  tagger resolve weblit-search --lang fr -o json`,
		Args: cobra.MinimumNArgs(1),
		RunE: e.runResolve,
	}
	c.Flags().Bool(extension.FlagMix, false, "Show vocabulary and free tags in one group")
	c.Flags().Bool(extension.FlagRaw, false, "Plain output without terminal rendering")
	c.Flags().StringSlice(extension.FlagRemove, nil, "Values to remove after committing")
	return c
}

func (e *Extension) runResolve(c *cobra.Command, args []string) error {
	raw, _ := c.Flags().GetBool(extension.FlagRaw)
	remove, _ := c.Flags().GetStringSlice(extension.FlagRemove)

	for _, a := range args {
		if err := validate.Tag(a); err != nil {
			return cmd.PrintJSONError(err)
		}
	}

	s, err := e.ctx.Sessions().Open(e.options(c))
	if err != nil {
		return cmd.PrintJSONError(err)
	}
	defer func() { _ = e.ctx.Sessions().Close(s.ID()) }()

	p := progress.New("resolving", len(args))
	for _, a := range args {
		s.Input.SetText(a)
		s.Widget.CommitInput()
		p.Increment()
	}
	p.Done()

	removed := 0
	for _, v := range remove {
		removed += s.Widget.Remove(v)
	}

	result := ListResult{
		Language: s.Widget.Language(),
		Tags:     s.Widget.Tags(),
		Chips:    s.Widget.Chips(),
		Value:    s.Output.Value(),
		Removed:  removed,
	}

	log.Event("tag:resolve", "resolve").Author(cmd.Author()).Widget(s.ID()).
		Resolved(result.Value).Count(len(result.Tags)).Write(nil)

	if cmd.JSON() {
		return cmd.PrintJSON(result)
	}

	w := cmd.Out()
	if b, ok := s.Widget.Display().(*render.Board); ok {
		if !raw && term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprint(w, b.Terminal())
		} else {
			fmt.Fprint(w, b.String())
		}
	}
	fmt.Fprintf(w, "value: %s\n", result.Value)
	return nil
}
