package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrDuplicateTrackingCode is returned when a posting reuses a tracking code.
// It matches ErrDuplicate as well.
var ErrDuplicateTrackingCode = fmt.Errorf("duplicate tracking code: %w", ErrDuplicate)

// ErrNoPostings indicates a closing was requested for a day/location without activity.
var ErrNoPostings = errors.New("no postings to close")

// ErrAlreadyPaid indicates a payment was recorded on a paid posting without the correction flag.
var ErrAlreadyPaid = errors.New("posting already paid")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates that the caller lacks the role required for the action.
var ErrForbidden = errors.New("forbidden")

// ErrPersistence indicates the underlying store failed for reasons unrelated to domain validation.
var ErrPersistence = errors.New("persistence error")

// AppError carries an HTTP-ish status code along with a message and the wrapped cause.
type AppError struct {
	Code    int
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

// NewAppError creates an AppError. A 5xx code without a cause is still reported as ErrPersistence.
func NewAppError(code int, message string, err error) *AppError {
	if err == nil && code >= http.StatusInternalServerError {
		err = ErrPersistence
	}
	return &AppError{Code: code, Message: message, Err: err}
}

// NewPersistenceError wraps a store failure so that it matches ErrPersistence while keeping the driver cause.
func NewPersistenceError(message string, err error) *AppError {
	return &AppError{
		Code:    http.StatusInternalServerError,
		Message: message,
		Err:     errors.Join(ErrPersistence, err),
	}
}

// NewValidationFailedError returns an error matching ErrValidation.
func NewValidationFailedError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NewConflictError returns an error matching ErrDuplicate.
func NewConflictError(message string) *AppError {
	return &AppError{Code: http.StatusConflict, Message: message, Err: ErrDuplicate}
}
