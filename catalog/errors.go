package catalog

import (
	"errors"
	"fmt"
)

// Common errors
var (
	// ErrNotFound indicates the record is not in the cache
	ErrNotFound = errors.New("movie not found")
	// ErrValidation indicates rejected user input; no request was sent
	ErrValidation = errors.New("invalid movie input")
)

// ValidationError describes why a draft was rejected
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
