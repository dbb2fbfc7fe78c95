// endpoint.go validates the remote tag-search configuration.

package validate

import (
	"fmt"
	"net/url"
	"strings"
)

// Endpoint validates a search endpoint URL.
//
// Validation rules:
//   - Must parse as an absolute URL
//   - Scheme must be http or https
//   - Host must be present
//   - No query string (the query parameter is appended per request)
func Endpoint(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidEndpoint, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%w: scheme must be http or https, got %q", ErrInvalidEndpoint, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidEndpoint)
	}
	if u.RawQuery != "" {
		return fmt.Errorf("%w: must not contain a query string", ErrInvalidEndpoint)
	}
	return nil
}

// Param validates the query parameter name carrying the partial text.
func Param(p string) error {
	if p == "" {
		return fmt.Errorf("%w: empty", ErrInvalidParam)
	}
	if strings.ContainsAny(p, "&=?# ") {
		return fmt.Errorf("%w: %q contains a reserved character", ErrInvalidParam, p)
	}
	return nil
}
