// Package core provides the core extension for tagger.
// It registers commands: config, serve, guide, version.
package core

import (
	"github.com/jpl-au/tagger/extension"
	"github.com/spf13/cobra"
)

func init() {
	extension.Register(&Extension{})
}

// Extension implements the core extension.
type Extension struct{}

var (
	_ extension.Extension  = (*Extension)(nil)
	_ extension.Standalone = (*Extension)(nil)
)

// Name returns "core".
func (e *Extension) Name() string { return "core" }

// Commands returns the core CLI commands.
func (e *Extension) Commands() []*cobra.Command {
	return []*cobra.Command{
		newConfigCmd(),
		newServeCmd(),
		newGuideCmd(),
		newVersionCmd(),
	}
}

// MCPTools returns nil. The server registers its own session and config
// tools.
func (e *Extension) MCPTools() []extension.MCPTool {
	return nil
}

// StandaloneCommands returns commands that run without the shared context.
// config must work when the stored config is invalid, so it can be fixed.
func (e *Extension) StandaloneCommands() []string {
	return []string{"config", "guide", "version"}
}
