package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"net/http"
	"time"
)

// ErrorCode represents a specific error type
type ErrorCode string

const (
	// Request errors
	ErrorCodeRouteNotFound    ErrorCode = "ROUTE_NOT_FOUND"
	ErrorCodeMethodNotAllowed ErrorCode = "METHOD_NOT_ALLOWED"
	ErrorCodeMalformedPayload ErrorCode = "MALFORMED_PAYLOAD"
	ErrorCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	ErrorCodeRateLimit        ErrorCode = "RATE_LIMIT_ERROR"

	// Storage errors
	ErrorCodeRepositoryUnavailable ErrorCode = "REPOSITORY_UNAVAILABLE"
	ErrorCodeConflict              ErrorCode = "CONFLICT"

	ErrorCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   map[string]interface{} `json:"details,omitempty"`
	Cause     error                  `json:"-"`
	Timestamp time.Time              `json:"timestamp"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error wrapping
func (e *AppError) Unwrap() error {
	return e.Cause
}

// ToJSON converts the error to JSON for API responses
func (e *AppError) ToJSON() []byte {
	data, _ := json.Marshal(map[string]interface{}{
		"error":   e.Message,
		"code":    e.Code,
		"details": e.Details,
	})
	return data
}

// GetHTTPStatus returns the appropriate HTTP status code for the error
func (e *AppError) GetHTTPStatus() int {
	switch e.Code {
	case ErrorCodeMalformedPayload, ErrorCodeInvalidParameter:
		return http.StatusBadRequest
	case ErrorCodeRouteNotFound:
		return http.StatusNotFound
	case ErrorCodeMethodNotAllowed:
		return http.StatusMethodNotAllowed
	case ErrorCodeConflict:
		return http.StatusConflict
	case ErrorCodeRateLimit:
		return http.StatusTooManyRequests
	case ErrorCodeRepositoryUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// NewAppError creates a new application error
func NewAppError(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:      code,
		Message:   message,
		Details:   make(map[string]interface{}),
		Timestamp: time.Now(),
	}
}

// NewAppErrorWithCause creates a new application error with an underlying cause
func NewAppErrorWithCause(code ErrorCode, message string, cause error) *AppError {
	err := NewAppError(code, message)
	err.Cause = cause
	return err
}

// WithDetail adds a detail to the error
func (e *AppError) WithDetail(key string, value interface{}) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// Predefined error constructors for common cases

// RouteNotFoundError is returned when no handler matches the verb and path
func RouteNotFoundError() *AppError {
	return NewAppError(ErrorCodeRouteNotFound, "Route not found")
}

// MethodNotAllowedError is returned when the path exists but not for this verb
func MethodNotAllowedError(method string) *AppError {
	return NewAppError(ErrorCodeMethodNotAllowed, fmt.Sprintf("Method %s not allowed", method))
}

// MalformedPayloadError is returned when a request body does not decode into the expected shape
func MalformedPayloadError(cause error) *AppError {
	return NewAppErrorWithCause(ErrorCodeMalformedPayload, "Malformed request payload", cause)
}

// InvalidParameterError is returned for unusable path or query parameters
func InvalidParameterError(name string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorCodeInvalidParameter, fmt.Sprintf("Invalid %s parameter", name), cause).
		WithDetail("parameter", name)
}

// RepositoryUnavailableError wraps a storage failure during the named operation
func RepositoryUnavailableError(operation string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorCodeRepositoryUnavailable,
		fmt.Sprintf("Failed to %s employee", operation), cause)
}

// ConflictError wraps a storage uniqueness failure
func ConflictError(operation string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorCodeConflict,
		fmt.Sprintf("Conflict while trying to %s employee", operation), cause)
}

// InternalError creates an internal server error
func InternalError(message string, cause error) *AppError {
	return NewAppErrorWithCause(ErrorCodeInternal, message, cause)
}

// Error handling utilities

// AsAppError finds the first AppError in err's chain
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	ok := stderrors.As(err, &appErr)
	return appErr, ok
}

// WrapError wraps a generic error as an internal error
func WrapError(err error, message string) *AppError {
	if appErr, ok := AsAppError(err); ok {
		return appErr
	}
	return InternalError(message, err)
}
