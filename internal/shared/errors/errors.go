// Package errors defines the typed application error the HTTP layer maps to
// status codes. Domain packages export plain sentinel errors; services wrap
// those sentinels here so handlers stay free of status-code decisions.
package errors

import (
	"errors"
	"fmt"
)

// ErrorType is the category of an application error.
type ErrorType string

const (
	// ErrorTypeNotFound indicates a resource that is not persisted.
	ErrorTypeNotFound ErrorType = "not_found"
	// ErrorTypeValidation indicates invalid input, rejected before any
	// state is touched.
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeConflict indicates a clash with existing data.
	ErrorTypeConflict ErrorType = "conflict"
	// ErrorTypeUnauthorized indicates a missing or invalid session.
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	// ErrorTypeInternal indicates an unexpected failure, including store
	// I/O errors propagated as-is.
	ErrorTypeInternal ErrorType = "internal"
)

// AppError carries a category, a client-safe message, and the wrapped cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NotFoundf creates a not-found error with formatting.
func NotFoundf(format string, args ...any) error {
	return &AppError{Type: ErrorTypeNotFound, Message: fmt.Sprintf(format, args...)}
}

// Validation creates a validation error.
func Validation(message string) error {
	return &AppError{Type: ErrorTypeValidation, Message: message}
}

// Validationf creates a validation error with formatting.
func Validationf(format string, args ...any) error {
	return &AppError{Type: ErrorTypeValidation, Message: fmt.Sprintf(format, args...)}
}

// WrapValidation wraps a cause as a validation error.
func WrapValidation(message string, err error) error {
	return &AppError{Type: ErrorTypeValidation, Message: message, Err: err}
}

// Conflictf creates a conflict error with formatting.
func Conflictf(format string, args ...any) error {
	return &AppError{Type: ErrorTypeConflict, Message: fmt.Sprintf(format, args...)}
}

// Unauthorized creates an unauthorized error.
func Unauthorized(message string) error {
	return &AppError{Type: ErrorTypeUnauthorized, Message: message}
}

// WrapInternal wraps a cause as an internal error.
func WrapInternal(message string, err error) error {
	return &AppError{Type: ErrorTypeInternal, Message: message, Err: err}
}

// GetType returns the category of an error, defaulting to internal for
// anything that is not an AppError.
func GetType(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}
