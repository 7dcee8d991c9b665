package service

import (
	"errors"
	"fmt"

	"github.com/phrazzld/cake-api/internal/store"
)

// ErrCakeNotFound indicates that the requested cake does not exist.
// API layer should map this to HTTP 404 Not Found.
var ErrCakeNotFound = errors.New("cake not found")

// CakeServiceError wraps errors from the cake service with context.
type CakeServiceError struct {
	// Operation is the operation that failed (e.g., "get_cake", "update_cake")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for CakeServiceError.
func (e *CakeServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cake service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("cake service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *CakeServiceError) Unwrap() error {
	return e.Err
}

// NewCakeServiceError wraps err for the given operation. Store not-found
// errors are translated to ErrCakeNotFound so callers never depend on
// store sentinels. A nil err yields nil.
func NewCakeServiceError(operation, message string, err error) error {
	if err == nil {
		return nil
	}

	if store.IsNotFoundError(err) {
		err = ErrCakeNotFound
	}

	return &CakeServiceError{
		Operation: operation,
		Message:   message,
		Err:       err,
	}
}
