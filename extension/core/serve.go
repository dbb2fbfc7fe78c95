// serve.go implements the "tagger serve" command.
//
// serve blocks handling MCP requests over stdio until the client
// disconnects. Sessions live only as long as the server.

package core

import (
	"github.com/jpl-au/tagger/cmd"
	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/mcp"
	"github.com/spf13/cobra"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start MCP server",
		Long: `Start an MCP (Model Context Protocol) server over stdio.

Each client session is an independent tagger widget:
  tagger_new, tagger_suggest, tagger_add, tagger_remove, tagger_tags

See 'tagger guide serve' for the full tool list.`,
		Args: cobra.NoArgs,
		RunE: runServe,
	}
}

func runServe(_ *cobra.Command, _ []string) error {
	return mcp.Serve(cmd.Context(), extension.Tools())
}
