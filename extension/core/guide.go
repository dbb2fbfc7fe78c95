// guide.go implements the "tagger guide" command.
//
// Terminal output is rendered with glamour; piped output stays raw markdown.

package core

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/jpl-au/tagger/cmd"
	"github.com/jpl-au/tagger/guide"
	"github.com/jpl-au/tagger/internal/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

func newGuideCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guide [topic]",
		Short: "Show the tagger usage guide",
		Long: `Outputs the tagger guide.

  tagger guide           # index
  tagger guide suggest   # how suggestions are built
  tagger guide session   # interactive session keys`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			name := ""
			if len(args) > 0 {
				name = args[0]
			}

			content, err := guide.Get(name)
			log.Event("core:guide", "read").Author(cmd.Author()).Detail("topic", name).Write(err)
			if err != nil {
				available, listErr := guide.List()
				if listErr != nil {
					return listErr
				}
				return cmd.PrintJSONError(fmt.Errorf("guide %q not found. Available: %s", name, strings.Join(available, ", ")))
			}

			if cmd.JSON() {
				return cmd.PrintJSON(map[string]string{"topic": name, "content": content})
			}

			if term.IsTerminal(int(os.Stdout.Fd())) {
				rendered, err := glamour.Render(content, "dark")
				if err == nil {
					fmt.Fprint(cmd.Out(), rendered)
					return nil
				}
			}

			fmt.Fprint(cmd.Out(), content)
			return nil
		},
	}
}
