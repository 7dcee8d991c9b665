package store

import (
	"errors"
	"fmt"
)

// Sentinels shared by every CakeStore backend. Backends wrap them with
// driver detail, so match with errors.Is.
var (
	ErrNotFound      = errors.New("entity not found")
	ErrDuplicate     = errors.New("entity already exists")
	ErrInvalidEntity = errors.New("invalid entity")

	// ErrCakeNotFound matches ErrNotFound as well.
	ErrCakeNotFound = fmt.Errorf("%w: cake", ErrNotFound)
)

// IsNotFoundError reports whether err is, or wraps, ErrNotFound.
func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// InvalidEntity wraps a domain validation error so that it matches both
// ErrInvalidEntity and the original domain error.
func InvalidEntity(err error) error {
	return fmt.Errorf("%w: %w", ErrInvalidEntity, err)
}
