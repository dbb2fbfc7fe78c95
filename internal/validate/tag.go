// tag.go implements tag value validation.
//
// An empty tag is not an error here: committing empty input is a no-op in
// the tag list, and callers rely on that. Only values that would corrupt the
// serialized list or the audit log are rejected.

package validate

import (
	"fmt"
	"strings"
)

// Tag validates a tag value.
//
// Validation rules:
//   - Null bytes rejected
//   - Line breaks rejected (the serialized list is a single line)
func Tag(t string) error {
	if strings.ContainsRune(t, 0) {
		return fmt.Errorf("%w: null byte in tag", ErrInvalidTag)
	}
	if strings.ContainsAny(t, "\r\n") {
		return fmt.Errorf("%w: line break in tag", ErrInvalidTag)
	}
	return nil
}
