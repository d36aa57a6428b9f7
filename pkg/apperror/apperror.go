package apperror

import (
	"errors"
	"net/http"
)

// AppError is the error taxonomy every request-level failure maps onto.
// Violations carries schema-validation messages and, when present, replaces
// Message on the wire.
type AppError struct {
	Message    string
	Violations []string
	Status     int
}

func (e *AppError) Error() string {
	if len(e.Violations) > 0 && e.Message == "" {
		return "validation failed"
	}
	return e.Message
}

func BadRequest(message string) *AppError {
	return &AppError{Message: message, Status: http.StatusBadRequest}
}

// Validation is a 400 carrying the list of human-readable violations.
func Validation(violations []string) *AppError {
	return &AppError{Violations: violations, Status: http.StatusBadRequest}
}

func Unauthorized(message string) *AppError {
	if message == "" {
		message = "Unauthorized"
	}
	return &AppError{Message: message, Status: http.StatusUnauthorized}
}

func Forbidden(message string) *AppError {
	if message == "" {
		message = "Forbidden"
	}
	return &AppError{Message: message, Status: http.StatusForbidden}
}

func NotFound(message string) *AppError {
	if message == "" {
		message = "Not Found"
	}
	return &AppError{Message: message, Status: http.StatusNotFound}
}

func Internal(message string) *AppError {
	if message == "" {
		message = "Internal server error"
	}
	return &AppError{Message: message, Status: http.StatusInternalServerError}
}

// FromError returns err as an *AppError, converting anything unanticipated
// (persistence failures included) into a 500.
func FromError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal("")
}
