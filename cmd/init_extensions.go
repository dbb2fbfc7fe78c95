/*
Copyright © 2026 James Lawson (jpl-au) <hello@caelisco.net>
*/

// init_extensions.go handles extension initialisation and command
// registration.
//
// Extensions register during init() but are not initialised until a
// command runs. The context is created once and shared by all of them.

package cmd

import (
	"fmt"
	"os"
	"sync"

	"github.com/jpl-au/tagger/extension"
	"github.com/jpl-au/tagger/internal/config"
	"github.com/jpl-au/tagger/internal/log"
)

// standaloneCommands lists commands that run without the shared context.
var standaloneCommands map[string]bool

func buildStandaloneCommands() map[string]bool {
	cmds := map[string]bool{
		"help":       true,
		"completion": true,
	}
	for _, ext := range extension.All() {
		if s, ok := ext.(extension.Standalone); ok {
			for _, name := range s.StandaloneCommands() {
				cmds[name] = true
			}
		}
	}
	return cmds
}

var (
	extContext extension.Context
	initOnce   sync.Once
	initErr    error
)

// initExtensions loads config, builds the shared context and passes it to
// every Initializable extension.
func initExtensions() error {
	initOnce.Do(func() {
		if wd, err := os.Getwd(); err == nil {
			log.SetProject(wd)
		}

		cfg, err := config.Load()
		if err != nil {
			initErr = err
			return
		}
		extContext = extension.NewContext(cfg, extension.Settings{
			Lang:       Lang(),
			SystemLang: systemLang(),
		})

		for _, ext := range extension.All() {
			if init, ok := ext.(extension.Initializable); ok {
				if err := init.Init(extContext); err != nil {
					initErr = fmt.Errorf("init extension %s: %w", ext.Name(), err)
					return
				}
			}
		}
	})
	return initErr
}

// Context returns the shared extension context. It is nil for standalone
// commands.
func Context() extension.Context { return extContext }

// closeSessions supersedes outstanding searches of sessions left open.
func closeSessions() {
	if extContext == nil {
		return
	}
	reg := extContext.Sessions()
	for _, id := range reg.IDs() {
		_ = reg.Close(id)
	}
}

var extensionsOnce sync.Once

// registerExtensions adds commands from all registered extensions.
func registerExtensions() {
	extensionsOnce.Do(func() {
		for _, ext := range extension.All() {
			for _, cmd := range ext.Commands() {
				rootCmd.AddCommand(cmd)
			}
		}
		standaloneCommands = buildStandaloneCommands()
	})
}
