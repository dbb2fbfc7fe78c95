// lang.go validates language codes.

package validate

import (
	"fmt"
	"strings"

	"golang.org/x/text/language"
)

// Lang validates a BCP 47 language code such as "en-US" or "pt_BR".
// Underscores are accepted as subtag separators. Whether the catalog
// supports the language is a separate question answered by vocab.
func Lang(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return fmt.Errorf("%w: empty", ErrInvalidLang)
	}
	if _, err := language.Parse(strings.ReplaceAll(code, "_", "-")); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidLang, code, err)
	}
	return nil
}
