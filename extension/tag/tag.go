// Package tag provides the tagging extension for tagger.
// It registers commands: suggest, resolve, session.
package tag

import (
	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/widget"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the tag extension.
type Extension struct {
	ctx extension.Context
}

var (
	_ extension.Extension     = (*Extension)(nil)
	_ extension.Initializable = (*Extension)(nil)
)

// Name returns "tag".
func (e *Extension) Name() string { return "tag" }

// Init keeps the shared context for the commands.
func (e *Extension) Init(ctx extension.Context) error {
	e.ctx = ctx
	return nil
}

// Commands returns the tagging commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		e.newSuggestCmd(),
		e.newResolveCmd(),
		e.newSessionCmd(),
	}
}

// MCPTools returns nil. Session tools are built into the MCP server.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// options returns widget defaults with the shared display flags applied.
func (e *Extension) options(c *cobra.Command) widget.Options {
	opts := e.ctx.WidgetOptions()
	if c.Flags().Changed(extension.FlagMix) {
		opts.MixTags, _ = c.Flags().GetBool(extension.FlagMix)
	}
	if c.Flags().Changed(extension.FlagMinLength) {
		opts.MinLength, _ = c.Flags().GetInt(extension.FlagMinLength)
	}
	return opts
}
