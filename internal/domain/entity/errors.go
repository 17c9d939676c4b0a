package entity

import (
	"errors"
	"fmt"
)

// Sentinel errors for domain layer operations.
var (
	// ErrInvalidInput indicates input that could not be interpreted at
	// all, such as an unparseable source URL.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidationFailed indicates input that parsed but broke a
	// domain rule. Every ValidationError unwraps to it.
	ErrValidationFailed = errors.New("validation failed")
)

// ValidationError carries the failing field alongside the user-facing
// message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// Unwrap lets callers match any field-level failure with
// errors.Is(err, ErrValidationFailed).
func (e *ValidationError) Unwrap() error {
	return ErrValidationFailed
}

// ValidationResult maps field names to user-facing error messages.
// An empty result means the submission is acceptable for dispatch.
type ValidationResult map[string]string

// Valid reports whether the result contains no field errors.
func (r ValidationResult) Valid() bool {
	return len(r) == 0
}
