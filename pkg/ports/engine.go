package ports

import (
	"context"

	"github.com/aretw0/gatefold/pkg/domain"
)

// Lowerer is the interface used by adapters (e.g., HTTP, MCP) to drive lowering.
type Lowerer interface {
	// Lower parses and lowers a source document.
	Lower(ctx context.Context, src []byte) (*domain.Model, error)

	// LowerByID lowers a model from the configured library, using the cache when present.
	LowerByID(ctx context.Context, id string) (*domain.Model, error)

	// List returns the IDs of the models in the configured library.
	List(ctx context.Context) ([]string, error)
}
