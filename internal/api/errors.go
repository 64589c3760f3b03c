package api

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is returned for every non-2xx response.
type Error struct {
	Status     int
	StatusText string
	URL        string
	// BodyText is the raw response body; empty when it could not be read.
	BodyText string
}

func (e *Error) Error() string {
	return fmt.Sprintf("API request failed: %d %s", e.Status, e.StatusText)
}

// StatusCode returns the HTTP status carried by err, or 0 when err is not an *Error.
func StatusCode(err error) int {
	var apiErr *Error
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// IsNotFound checks if err is a 404 from the backend.
func IsNotFound(err error) bool {
	return StatusCode(err) == http.StatusNotFound
}
