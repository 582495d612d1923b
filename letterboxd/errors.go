package letterboxd

import (
	"errors"
	"fmt"
)

// ErrInvalidURL indicates a malformed or empty list URL
var ErrInvalidURL = errors.New("invalid letterboxd list URL")

// FetchError represents a failed page fetch
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("letterboxd fetch failed: %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("letterboxd fetch failed: %s: status %d", e.URL, e.StatusCode)
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.Err
}
