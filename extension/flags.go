// flags.go defines constants for CLI flag names shared across extensions.
//
// Naming convention: Flag<PascalCaseName> where name matches the kebab-case
// CLI flag (e.g., "min-length" -> FlagMinLength).

package extension

const (
	// Boolean flags

	FlagLocal = "local" // Use local scope (.tagger/config.yaml)
	FlagMix   = "mix"   // Show vocabulary and free tags in one group
	FlagRaw   = "raw"   // Raw output without terminal rendering

	// String flags

	FlagRemove = "rm" // Value to remove after committing

	// Integer flags

	FlagLimit     = "limit"      // Limit number of results
	FlagMinLength = "min-length" // Characters typed before suggesting
)
