// Package validate provides input validation for tagger's boundary values.
//
// Values arrive from the command line, MCP tool arguments and config files.
// Each function returns nil on success or an error wrapping one of the
// sentinels in errors.go, so callers can branch with errors.Is:
//
//	if errors.Is(err, validate.ErrInvalidLang) {
//	    // suggest a supported language
//	}
//
// Tag validates a tag value before it reaches a tag list.
// Lang validates a BCP 47 language code.
// Endpoint validates a remote tag-search URL.
// Param validates the query parameter name sent to the endpoint.
package validate
