package fetch

import (
	"errors"
	"fmt"
)

// Common errors returned by the fetch client.
var (
	// ErrNotFound indicates the reference was not found upstream.
	ErrNotFound = errors.New("reference not found")

	// ErrRateLimited indicates an upstream rate limit has been exceeded.
	ErrRateLimited = errors.New("rate limit exceeded")

	// ErrNetworkError indicates a network connectivity issue.
	ErrNetworkError = errors.New("network error")

	// ErrInvalidResponse indicates an unexpected upstream response.
	ErrInvalidResponse = errors.New("invalid upstream response")

	// ErrUnknownRef indicates a reference that matches no supported source.
	ErrUnknownRef = errors.New("unrecognized paper reference")
)

// APIError represents an HTTP error from an upstream metadata source.
type APIError struct {
	StatusCode int
	URL        string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("upstream error (status %d) from %s", e.StatusCode, e.URL)
}

// IsNotFound returns true if the error indicates the reference does not exist.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode == 404
	}
	return false
}
