// errors.go defines sentinel errors for validation failures.

package validate

import "errors"

var (
	ErrInvalidTag      = errors.New("invalid tag")
	ErrInvalidLang     = errors.New("invalid language code")
	ErrInvalidEndpoint = errors.New("invalid search endpoint")
	ErrInvalidParam    = errors.New("invalid query parameter")
)
