package store

import (
	"context"

	"github.com/phrazzld/cake-api/internal/domain"
)

// CakeStore defines the interface for cake data persistence.
// Implementations must be safe for concurrent use by multiple requests.
type CakeStore interface {
	// Insert validates and stores a new cake, assigning the next unused ID.
	// IDs are never reused, even after the cake holding them is deleted.
	// Returns ErrInvalidEntity (wrapping the domain error) if validation fails.
	Insert(ctx context.Context, title, description string) (*domain.Cake, error)

	// FindByID retrieves a cake by its ID.
	// Returns ErrCakeNotFound if the cake does not exist.
	FindByID(ctx context.Context, id int64) (*domain.Cake, error)

	// FindAll returns every stored cake ordered by ID, which is also the
	// insertion order. An empty store yields an empty, non-nil slice.
	FindAll(ctx context.Context) ([]*domain.Cake, error)

	// Update overwrites the title and description of an existing cake and
	// returns the updated record. The ID is left unchanged.
	// Returns ErrCakeNotFound if the cake does not exist.
	Update(ctx context.Context, id int64, title, description string) (*domain.Cake, error)

	// Delete removes a cake by its ID and reports whether a record was removed.
	// Deleting a missing cake is not an error.
	Delete(ctx context.Context, id int64) (bool, error)
}
