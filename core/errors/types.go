// ABOUTME: Custom error types for the core business logic
// ABOUTME: Distinguishes bad input, missing capabilities and empty catalogs for API responses

package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrCapabilityUnavailable is returned when the embedding backend cannot serve a request.
	// It is fatal to the current request only; the next request tries again.
	ErrCapabilityUnavailable = errors.New("search capability unavailable")

	// ErrNoCourses is returned when no course corpus could be assembled
	ErrNoCourses = errors.New("no courses available")
)

// NotFoundError represents a resource not found error
type NotFoundError struct {
	Resource string
	ID       string
}

// Error implements the error interface
func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ValidationError represents a validation error
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error on field '%s': %s", e.Field, e.Message)
}

// ExternalAPIError represents an error from an external API such as an embedding backend
type ExternalAPIError struct {
	StatusCode int
	Message    string
	API        string
}

// Error implements the error interface
func (e *ExternalAPIError) Error() string {
	return fmt.Sprintf("external API error from %s: %d - %s", e.API, e.StatusCode, e.Message)
}

// IsNotFound checks if an error is a NotFoundError
func IsNotFound(err error) bool {
	var notFoundErr *NotFoundError
	return errors.As(err, &notFoundErr)
}

// IsValidation checks if an error is a ValidationError
func IsValidation(err error) bool {
	var validationErr *ValidationError
	return errors.As(err, &validationErr)
}

// IsExternalAPI checks if an error is an ExternalAPIError
func IsExternalAPI(err error) bool {
	var apiErr *ExternalAPIError
	return errors.As(err, &apiErr)
}

// IsUnavailable checks if an error means the search capability is down
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrCapabilityUnavailable)
}

// IsNoCourses checks if an error means the corpus is empty
func IsNoCourses(err error) bool {
	return errors.Is(err, ErrNoCourses)
}

// Unavailable wraps a cause so that IsUnavailable reports true for it
func Unavailable(cause error) error {
	if cause == nil {
		return ErrCapabilityUnavailable
	}
	return fmt.Errorf("%w: %v", ErrCapabilityUnavailable, cause)
}

// WrapError wraps an error with additional context
func WrapError(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
