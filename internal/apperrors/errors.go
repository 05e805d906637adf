package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrProtected indicates that a resource cannot be deleted because other
// records still reference it (e.g. a cost center with booked transactions).
var ErrProtected = errors.New("resource is referenced and protected from deletion")

// ErrCycle indicates that an operation would create a cycle in the
// cost-center tree (e.g. reparenting a node under one of its descendants).
var ErrCycle = errors.New("operation would create a cycle in the hierarchy")

// AppError wraps a lower-level failure with an HTTP-ish status code and a
// human-readable message. Used by the repository layer for storage failures.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError wrapping the given cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the underlying cause for errors.Is/errors.As.
func (e *AppError) Unwrap() error {
	return e.Err
}
