// ABOUTME: Error types and handling for the Course Finder library
// ABOUTME: Provides structured errors with context for library operations

package coursefinder

import (
	stderrors "errors"
	"fmt"

	"coursefinder-api/core/aggregator"
	"coursefinder-api/core/errors"
)

// ErrorType represents the type of error
type ErrorType string

const (
	// ErrorTypeValidation indicates a validation error
	ErrorTypeValidation ErrorType = "validation"

	// ErrorTypeNoCourses indicates no course corpus is available yet
	ErrorTypeNoCourses ErrorType = "no_courses"

	// ErrorTypeUnavailable indicates the embedding backend cannot serve requests
	ErrorTypeUnavailable ErrorType = "unavailable"

	// ErrorTypeSources indicates every platform failed during a refresh
	ErrorTypeSources ErrorType = "sources"

	// ErrorTypeInternal indicates an internal error
	ErrorTypeInternal ErrorType = "internal"

	// ErrorTypeConfiguration indicates a configuration error
	ErrorTypeConfiguration ErrorType = "configuration"
)

// Error represents a structured error from the library
type Error struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap returns the underlying cause
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches errors of the same type so sentinels work with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Type == e.Type && (t.Message == "" || t.Message == e.Message)
}

// NewError creates a new error with the given type and message
func NewError(errType ErrorType, message string) *Error {
	return &Error{
		Type:    errType,
		Message: message,
		Context: make(map[string]interface{}),
	}
}

// WithCause adds a cause to the error
func (e *Error) WithCause(cause error) *Error {
	e.Cause = cause
	return e
}

// WithContext adds context to the error
func (e *Error) WithContext(key string, value interface{}) *Error {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// Common errors
var (
	// ErrClientClosed is returned when operations are attempted on a closed client
	ErrClientClosed = NewError(ErrorTypeInternal, "client is closed")

	// ErrNoCourses is returned by Search when no platform produced any course
	ErrNoCourses = NewError(ErrorTypeNoCourses, "no courses available")

	// ErrUnavailable is returned when the embedding backend is down
	ErrUnavailable = NewError(ErrorTypeUnavailable, "search capability unavailable")
)

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return hasType(err, ErrorTypeValidation)
}

// IsNoCoursesError checks if an error means no courses are available
func IsNoCoursesError(err error) bool {
	return hasType(err, ErrorTypeNoCourses)
}

// IsUnavailableError checks if an error means the search backend is down
func IsUnavailableError(err error) bool {
	return hasType(err, ErrorTypeUnavailable)
}

func hasType(err error, t ErrorType) bool {
	var e *Error
	return stderrors.As(err, &e) && e.Type == t
}

// fromCoreError converts core errors into library errors
func fromCoreError(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.IsValidation(err):
		return NewError(ErrorTypeValidation, "invalid query").WithCause(err)
	case errors.IsNoCourses(err):
		return NewError(ErrorTypeNoCourses, "no courses available").WithCause(err)
	case errors.IsUnavailable(err):
		return NewError(ErrorTypeUnavailable, "search capability unavailable").WithCause(err)
	case stderrors.Is(err, aggregator.ErrAllSourcesFailed):
		return NewError(ErrorTypeSources, "every platform failed").WithCause(err)
	default:
		return NewError(ErrorTypeInternal, "operation failed").WithCause(err)
	}
}
