// Package errors defines the service error taxonomy shared by every layer.
// Components below the HTTP boundary return these errors untouched; the
// top-level response writer classifies them into status codes and problem
// bodies.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies an error class in the taxonomy.
type Code string

const (
	CodeValidation   Code = "VALIDATION_ERROR"
	CodeNotFound     Code = "RESOURCE_NOT_FOUND"
	CodeMapping      Code = "MAPPING_ERROR"
	CodeBadArgument  Code = "INVALID_ARGUMENT"
	CodeUnauthorized Code = "UNAUTHORIZED"
	CodeForbidden    Code = "FORBIDDEN"
	CodeRateLimited  Code = "RATE_LIMIT_EXCEEDED"
	CodeInternal     Code = "INTERNAL_ERROR"
)

// ServiceError carries an error class, a human readable message and optional
// structured details (for validation errors, the per-field messages).
type ServiceError struct {
	Code       Code
	Message    string
	HTTPStatus int
	Details    map[string]any
	cause      error
}

func (e *ServiceError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the wrapped cause to errors.Is / errors.As.
func (e *ServiceError) Unwrap() error { return e.cause }

// WithDetails attaches a key/value pair and returns the error for chaining.
func (e *ServiceError) WithDetails(key string, value any) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// Title returns the problem-detail title for the error class.
func (e *ServiceError) Title() string {
	switch e.Code {
	case CodeValidation:
		return "Validation Error"
	case CodeNotFound:
		return "Resource Not Found"
	case CodeMapping:
		return "Mapping Error"
	case CodeBadArgument:
		return "Invalid Argument Provided"
	case CodeUnauthorized:
		return "Unauthorized Access"
	case CodeForbidden:
		return "Forbidden"
	case CodeRateLimited:
		return "Rate Limit Exceeded"
	default:
		return "Internal Server Error Occurred"
	}
}

// Validation reports one or more violated request fields. fieldErrors maps a
// field name to its collected messages.
func Validation(message string, fieldErrors map[string][]string) *ServiceError {
	err := &ServiceError{
		Code:       CodeValidation,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
	}
	if len(fieldErrors) > 0 {
		err = err.WithDetails("fields", fieldErrors)
	}
	return err
}

// NotFound reports a missing resource.
func NotFound(format string, args ...any) *ServiceError {
	return &ServiceError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: http.StatusNotFound,
	}
}

// Mapping reports an unexpected record-shape conversion failure.
func Mapping(message string, cause error) *ServiceError {
	return &ServiceError{
		Code:       CodeMapping,
		Message:    message,
		HTTPStatus: http.StatusBadRequest,
		cause:      cause,
	}
}

// BadArgument reports a malformed request argument such as an invalid id.
func BadArgument(format string, args ...any) *ServiceError {
	return &ServiceError{
		Code:       CodeBadArgument,
		Message:    fmt.Sprintf(format, args...),
		HTTPStatus: http.StatusBadRequest,
	}
}

// Unauthorized reports a missing or unusable identity.
func Unauthorized(message string) *ServiceError {
	return &ServiceError{
		Code:       CodeUnauthorized,
		Message:    message,
		HTTPStatus: http.StatusUnauthorized,
	}
}

// InvalidToken reports a token that failed parsing or signature checks.
func InvalidToken(cause error) *ServiceError {
	return &ServiceError{
		Code:       CodeUnauthorized,
		Message:    "Invalid or expired token",
		HTTPStatus: http.StatusUnauthorized,
		cause:      cause,
	}
}

// Forbidden reports an authenticated identity lacking a required claim.
func Forbidden(message string) *ServiceError {
	return &ServiceError{
		Code:       CodeForbidden,
		Message:    message,
		HTTPStatus: http.StatusForbidden,
	}
}

// RateLimitExceeded reports that the caller exhausted its request budget.
func RateLimitExceeded(limit int, window string) *ServiceError {
	return (&ServiceError{
		Code:       CodeRateLimited,
		Message:    "Too many requests",
		HTTPStatus: http.StatusTooManyRequests,
	}).WithDetails("limit", limit).WithDetails("window", window)
}

// Internal reports an unexpected failure, typically from the store.
func Internal(message string, cause error) *ServiceError {
	return &ServiceError{
		Code:       CodeInternal,
		Message:    message,
		HTTPStatus: http.StatusInternalServerError,
		cause:      cause,
	}
}

// GetServiceError returns the *ServiceError in err's chain, or nil.
func GetServiceError(err error) *ServiceError {
	var serviceErr *ServiceError
	if errors.As(err, &serviceErr) {
		return serviceErr
	}
	return nil
}

// IsNotFound reports whether err is a not-found service error.
func IsNotFound(err error) bool {
	serviceErr := GetServiceError(err)
	return serviceErr != nil && serviceErr.Code == CodeNotFound
}
