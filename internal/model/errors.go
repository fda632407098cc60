package model

import (
	"errors"
	"fmt"
)

var (
	// ErrNetwork is returned when the backend could not be reached or failed
	// transiently. Operations failing with it may be retried.
	ErrNetwork = errors.New("network error")

	// ErrOffline is a network error caused by missing connectivity.
	ErrOffline = fmt.Errorf("%w: offline", ErrNetwork)

	// ErrNotFound is returned when the backend no longer knows a node.
	ErrNotFound = errors.New("not found")

	// ErrNodeNotFound is returned when a node is missing from the local tree.
	ErrNodeNotFound = errors.New("node not found")

	// ErrParentNotFound is returned when a target parent is missing or is not a folder.
	ErrParentNotFound = errors.New("parent folder not found")

	// ErrCycle is returned when a move would place a folder inside itself.
	ErrCycle = errors.New("move would create a cycle")

	// ErrDuplicateID is returned when a node id already exists in the tree.
	ErrDuplicateID = errors.New("duplicate node id")
)

// ValidationError reports a rejected input field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NewValidationError creates a ValidationError for field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsRetryable reports whether the operation that produced err may succeed on retry.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrNetwork)
}
