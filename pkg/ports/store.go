package ports

import (
	"context"

	"github.com/aretw0/gatefold/pkg/domain"
)

// ModelStore caches lowered models by library ID.
type ModelStore interface {
	// Save persists the lowered model for a given ID.
	Save(ctx context.Context, id string, model *domain.Model) error

	// Load retrieves the lowered model for a given ID.
	// Returns domain.ErrModelNotFound if nothing is cached under the ID.
	Load(ctx context.Context, id string) (*domain.Model, error)

	// Delete removes the cached model. Deleting a missing ID is not an error.
	Delete(ctx context.Context, id string) error

	// List returns the IDs currently cached.
	List(ctx context.Context) ([]string, error)
}
