// Package apperror defines the application error taxonomy and its HTTP mapping.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType classifies an AppError.
type ErrorType int

// Error types, one per HTTP status class.
const (
	UnknownError ErrorType = iota
	NotFoundError
	ValidationError
	DatabaseError
	InternalError
)

// String returns the snake_case name of the type.
func (t ErrorType) String() string {
	switch t {
	case NotFoundError:
		return "not_found"
	case ValidationError:
		return "validation"
	case DatabaseError:
		return "database"
	case InternalError:
		return "internal"
	default:
		return "unknown"
	}
}

// AppError carries a client-facing message and the underlying cause.
type AppError struct {
	Type    ErrorType
	Message string
	Err     error
}

// Error includes the cause when there is one.
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the cause.
func (e *AppError) Unwrap() error {
	return e.Err
}

// StatusCode maps the error type to an HTTP status.
func (e *AppError) StatusCode() int {
	switch e.Type {
	case NotFoundError:
		return http.StatusNotFound
	case ValidationError:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// New builds an AppError of the given type.
func New(errType ErrorType, message string, err error) *AppError {
	return &AppError{Type: errType, Message: message, Err: err}
}

// NewNotFoundError reports a missing resource (404).
func NewNotFoundError(message string, err error) *AppError {
	return New(NotFoundError, message, err)
}

// NewValidationError reports invalid client input (400).
func NewValidationError(message string, err error) *AppError {
	return New(ValidationError, message, err)
}

// NewDatabaseError reports a store failure (500).
func NewDatabaseError(message string, err error) *AppError {
	return New(DatabaseError, message, err)
}

// NewInternalError reports any other server-side failure (500).
func NewInternalError(message string, err error) *AppError {
	return New(InternalError, message, err)
}

// FromError extracts an AppError anywhere in the chain of err.
func FromError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err carries a NotFoundError.
func IsNotFound(err error) bool {
	appErr, ok := FromError(err)
	return ok && appErr.Type == NotFoundError
}

// IsValidationError reports whether err carries a ValidationError.
func IsValidationError(err error) bool {
	appErr, ok := FromError(err)
	return ok && appErr.Type == ValidationError
}

// IsDatabaseError reports whether err carries a DatabaseError.
func IsDatabaseError(err error) bool {
	appErr, ok := FromError(err)
	return ok && appErr.Type == DatabaseError
}
