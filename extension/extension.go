// Package extension provides the plugin architecture for tagger. Extensions
// bundle related functionality (commands, MCP tools) and register at init
// time, so a feature can be added without touching core code.
package extension

import (
	"github.com/spf13/cobra"
)

// Extension defines the contract for tagger extensions.
type Extension interface {
	// Name returns a unique identifier for this extension.
	Name() string

	// Commands returns CLI commands to register with the root command.
	Commands() []*cobra.Command

	// MCPTools returns MCP tools to register with the server.
	MCPTools() []MCPTool
}

// Initializable extensions receive the shared Context before their
// commands run.
type Initializable interface {
	Extension
	Init(ctx Context) error
}

// Standalone is an optional interface for extensions with commands that
// must run without a Context. Such commands skip config loading in
// PersistentPreRunE, so they keep working when the config file is broken
// (config itself, guide, version).
type Standalone interface {
	StandaloneCommands() []string
}
