/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// root.go defines the root command and CLI execution entry point.
//
// PersistentPreRunE builds the shared extension context lazily: standalone
// commands (config, guide, version) skip it, so a broken config file can
// still be inspected and repaired.

package cmd

import (
	"fmt"
	"os"
	"slices"

	"github.com/jpl-au/tagger/internal/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "tagger",
	Short: "Tag suggestions from a localized vocabulary and a remote search",
	Long: `tagger suggests tags while you type, mixing a controlled vocabulary
with free-form tags from a remote search, and keeps the committed tags as a
comma separated list.`,
	Run: func(cmd *cobra.Command, _ []string) {
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if output != "" && !slices.Contains(validOutputFormats, output) {
			return fmt.Errorf("invalid output format: %s (valid: %v)", output, validOutputFormats)
		}

		if author == "" {
			author = detectAuthor()
		}

		if standaloneCommands[topLevelCmdName(cmd)] {
			return nil
		}
		if err := initExtensions(); err != nil {
			if JSON() {
				_ = PrintJSON(map[string]string{"error": err.Error()})
				cmd.SilenceErrors = true
				cmd.SilenceUsage = true
			}
			return fmt.Errorf("initialise extensions: %w", err)
		}
		return nil
	},
}

// topLevelCmdName returns the name of the direct child of root that cmd
// belongs to. For "tagger vocab ls", returns "vocab".
func topLevelCmdName(cmd *cobra.Command) string {
	for cmd.HasParent() && cmd.Parent().HasParent() {
		cmd = cmd.Parent()
	}
	return cmd.Name()
}

// Execute runs the root command. The audit log is opened first and closed
// on exit; a log that cannot be opened only produces a warning.
func Execute() {
	if err := log.Open(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: audit log unavailable: %v\n", err)
	}

	registerExtensions()
	err := rootCmd.Execute()

	closeSessions()
	log.Close()

	if err != nil {
		os.Exit(1)
	}
}

// RootCmd returns the root command for testing and extension access.
func RootCmd() *cobra.Command {
	return rootCmd
}
