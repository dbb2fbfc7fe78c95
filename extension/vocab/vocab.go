// Package vocab provides the vocabulary extension for tagger.
// It registers the vocab command (ls, langs, term) and the tagger_vocab
// and tagger_langs MCP tools.
package vocab

import (
	"fmt"
	"text/tabwriter"

	"github.com/jpl-au/tagger/cmd"
	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/log"
	"github.com/jpl-au/tagger/internal/vocab"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the vocabulary extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "vocab".
func (e *Extension) Name() string { return "vocab" }

// Init keeps the shared context for the commands.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the vocab command with its subcommands.
func (e *Extension) Commands() []*cobra.Command {
	c := &cobra.Command{
		Use:   "vocab",
		Short: "Browse the built-in vocabulary",
		Long:  `List vocabulary terms and the languages they are available in.`,
	}
	c.AddCommand(e.newLsCmd(), e.newLangsCmd(), e.newTermCmd())
	return []*cobra.Command{c}
}

// Listing is the JSON shape of "vocab ls" and tagger_vocab.
type Listing struct {
	Language string       `json:"language"`
	Terms    []vocab.Term `json:"terms"`
}

// Languages is the JSON shape of "vocab langs" and tagger_langs.
type Languages struct {
	Active    string   `json:"active"`
	Default   string   `json:"default"`
	Supported []string `json:"supported"`
}

// provider returns a provider in the preferred language, falling back to
// the environment language and then the catalog default.
func provider(ctx extension.Context, lang string) *vocab.Provider {
	opts := ctx.WidgetOptions()
	if lang == "" {
		lang = opts.Lang
	}
	p := vocab.NewWeblit()
	for _, pref := range []string{lang, opts.SystemLang} {
		if m := p.Match(pref); m != "" && p.SetLanguage(m) {
			break
		}
	}
	return p
}

func listing(p *vocab.Provider) Listing {
	return Listing{Language: p.Language(), Terms: p.AllTerms()}
}

func languages(p *vocab.Provider) Languages {
	return Languages{Active: p.Language(), Default: p.Default(), Supported: p.SupportedLanguages()}
}

func (e *Extension) newLsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ls",
		Short: "List vocabulary terms in the active language",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			l := listing(provider(e.ctx, ""))
			log.Event("vocab:ls", "list").Author(cmd.Author()).Resolved(l.Language).Count(len(l.Terms)).Write(nil)

			if cmd.JSON() {
				return cmd.PrintJSON(l)
			}
			tw := tabwriter.NewWriter(cmd.Out(), 0, 4, 2, ' ', 0)
			for _, t := range l.Terms {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", t.ID, t.Label, t.Color)
			}
			return tw.Flush()
		},
	}
}

func (e *Extension) newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List supported languages",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			l := languages(provider(e.ctx, ""))
			log.Event("vocab:langs", "list").Author(cmd.Author()).Resolved(l.Active).Write(nil)

			if cmd.JSON() {
				return cmd.PrintJSON(l)
			}
			for _, code := range l.Supported {
				mark := " "
				if code == l.Active {
					mark = "*"
				}
				fmt.Fprintf(cmd.Out(), "%s %s\n", mark, code)
			}
			return nil
		},
	}
}

func (e *Extension) newTermCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "term <id>",
		Short: "Show one term's label in the active language",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			p := provider(e.ctx, "")
			t, ok := p.Lookup(args[0])

			var err error
			if !ok {
				err = fmt.Errorf("%q is not a vocabulary term", args[0])
			}
			log.Event("vocab:term", "lookup").Author(cmd.Author()).Tag(args[0]).Resolved(t.Label).Write(err)
			if err != nil {
				return cmd.PrintJSONError(err)
			}

			if cmd.JSON() {
				return cmd.PrintJSON(t)
			}
			fmt.Fprintln(cmd.Out(), t.Label)
			return nil
		},
	}
}
