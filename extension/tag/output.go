package tag

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/jpl-au/tagger/internal/resolver"
)

// writeSuggestions prints a numbered suggestion list. Numbers start at 1.
func writeSuggestions(w io.Writer, s []resolver.Suggestion) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for i, sg := range s {
		fmt.Fprintf(tw, "%d.\t%s\t%s\t%s\n", i+1, sg.Label, sg.Value, sg.Source)
	}
	_ = tw.Flush()
}
