// config.go implements the "tagger config" command.
//
// Local config (.tagger/config.yaml) takes precedence over global
// (~/.tagger/config.yaml). Writes go to the file that was read, or to the
// local file with --local.

package core

import (
	"fmt"

	"github.com/jpl-au/tagger/cmd"
	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/config"
	"github.com/jpl-au/tagger/internal/log"
	"github.com/spf13/cobra"
)

func newConfigCmd() *cobra.Command {
	c := &cobra.Command{
		Use:   "config [key] [value]",
		Short: "View or set config values",
		Long: `View or set config values.

  tagger config                     # show config
  tagger config tagger.lang         # show tagger.lang
  tagger config tagger.lang fr      # set tagger.lang
  tagger config search.endpoint ""  # clear search.endpoint

Configuration locations:
  Global: ~/.tagger/config.yaml
  Local:  .tagger/config.yaml

Uses local config if it exists, otherwise global.
Use --local to use local config instead.`,
		Args: cobra.MaximumNArgs(2),
		RunE: runConfig,
	}
	c.Flags().Bool(extension.FlagLocal, false, "Use local config (.tagger/config.yaml)")
	return c
}

func runConfig(c *cobra.Command, args []string) error {
	forceLocal, _ := c.Flags().GetBool(extension.FlagLocal)

	var cfg *config.Config
	var err error
	if forceLocal {
		cfg, err = config.LoadScope(config.ScopeLocal)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return cmd.PrintJSONError(fmt.Errorf("config load: %w", err))
	}

	scopeName := "global"
	if cfg.Scope() == config.ScopeLocal {
		scopeName = "local"
	}

	switch len(args) {
	case 0:
		all := cfg.All()
		log.Event("core:config", "list").Author(cmd.Author()).Write(nil)
		if cmd.JSON() {
			return cmd.PrintJSON(all)
		}
		for _, k := range config.ValidKeys() {
			fmt.Fprintf(cmd.Out(), "%s: %s\n", k, all[k])
		}

	case 1:
		v, err := cfg.Get(args[0])
		log.Event("core:config", "get").Author(cmd.Author()).Detail("key", args[0]).Write(err)
		if err != nil {
			return cmd.PrintJSONError(fmt.Errorf("config get %q: %w", args[0], err))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{args[0]: v})
		}
		fmt.Fprintln(cmd.Out(), v)

	case 2:
		if err := cfg.Set(args[0], args[1]); err != nil {
			log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Write(err)
			return cmd.PrintJSONError(fmt.Errorf("config set %q: %w", args[0], err))
		}

		saveErr := cfg.Save()
		log.Event("core:config", "set").Author(cmd.Author()).Detail("key", args[0]).Detail("scope", scopeName).Write(saveErr)
		if saveErr != nil {
			return cmd.PrintJSONError(fmt.Errorf("config save: %w", saveErr))
		}
		if cmd.JSON() {
			return cmd.PrintJSON(map[string]string{"key": args[0], "value": args[1], "scope": scopeName})
		}
		fmt.Fprintf(cmd.Out(), "%s = %s (%s)\n", args[0], args[1], scopeName)
	}
	return nil
}
