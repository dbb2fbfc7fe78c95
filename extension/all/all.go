// Package all imports all built-in tagger extensions.
// Import this package to register all built-in commands.
package all

import (
	// Each extension registers itself via init()
	_ "github.com/jpl-au/tagger/extension/core"
	_ "github.com/jpl-au/tagger/extension/tag"
	_ "github.com/jpl-au/tagger/extension/vocab"
)
