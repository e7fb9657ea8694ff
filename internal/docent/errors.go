package docent

import "errors"

var (
	// ErrMissingParameter indicates a required query parameter was absent.
	ErrMissingParameter = errors.New("missing required parameter")

	// ErrNotFound indicates no entry matched the requested identifier.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable indicates the content store could not be loaded and
	// no previously cached snapshot exists to serve instead.
	ErrUnavailable = errors.New("library unavailable")
)
