package question

import (
	"errors"
	"fmt"
)

// ErrorCode categorizes question errors.
type ErrorCode string

const (
	// ErrCodeValidation indicates rejected input (empty or duplicate title).
	ErrCodeValidation ErrorCode = "VALIDATION"

	// ErrCodeNotFound indicates the target ID is absent from the store.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"

	// ErrCodeTransport indicates the backend could not be reached or failed.
	ErrCodeTransport ErrorCode = "TRANSPORT"
)

// Error is the single error type produced for question operations.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// ID is the question identifier involved, if any.
	ID string

	// Field names the offending input field for validation errors.
	Field string

	// Err is the underlying cause (transport errors only).
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Code, e.Message)
	if e.ID != "" {
		msg = fmt.Sprintf("%s (id=%s)", msg, e.ID)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// NewNotFoundError reports that no question has the given ID.
func NewNotFoundError(id string) *Error {
	return &Error{
		Code:    ErrCodeNotFound,
		Message: "question not found",
		ID:      id,
	}
}

// NewValidationError reports rejected input for field.
func NewValidationError(field, message string) *Error {
	return &Error{
		Code:    ErrCodeValidation,
		Message: message,
		Field:   field,
	}
}

// NewTransportError wraps a backend failure.
func NewTransportError(op string, err error) *Error {
	return &Error{
		Code:    ErrCodeTransport,
		Message: op,
		Err:     err,
	}
}

// IsNotFound returns true if err is (or wraps) a not-found error.
func IsNotFound(err error) bool {
	return hasCode(err, ErrCodeNotFound)
}

// IsValidation returns true if err is (or wraps) a validation error.
func IsValidation(err error) bool {
	return hasCode(err, ErrCodeValidation)
}

// IsTransport returns true if err is (or wraps) a transport error.
func IsTransport(err error) bool {
	return hasCode(err, ErrCodeTransport)
}

func hasCode(err error, code ErrorCode) bool {
	var qe *Error
	if errors.As(err, &qe) {
		return qe.Code == code
	}
	return false
}
