package movieapi

import (
	"errors"
	"fmt"
	"net/http"
)

// Common errors
var (
	// ErrInvalidConfig indicates invalid client configuration
	ErrInvalidConfig = errors.New("invalid movie API configuration")
	// ErrInvalidID indicates an ID that is neither a JSON string nor a number
	ErrInvalidID = errors.New("invalid movie id")
)

// APIError represents a non-2xx response from the movie API
type APIError struct {
	Method     string
	Path       string
	StatusCode int
	Message    string
	Body       string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return fmt.Sprintf("movie API error: %s %s: status %d: %s", e.Method, e.Path, e.StatusCode, e.Message)
}

// IsNotFound checks if the error indicates a not found response
func (e *APIError) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsServerError checks if the server failed rather than rejected the request
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500
}
