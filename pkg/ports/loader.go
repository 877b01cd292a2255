package ports

import "context"

// SourceLoader defines how the engine retrieves model sources from a library.
// This allows the storage layer (Loam, Memory) to be decoupled.
type SourceLoader interface {
	// GetSource retrieves the raw source text of a model by ID.
	// It returns domain.ErrModelNotFound (possibly wrapped) if the ID is unknown.
	GetSource(ctx context.Context, id string) ([]byte, error)

	// ListSources returns the IDs of all models available in the library.
	ListSources(ctx context.Context) ([]string, error)
}

// Watchable defines an interface for loaders that can notify about library changes.
type Watchable interface {
	// Watch returns a channel that receives the ID of each model that changes.
	Watch(ctx context.Context) (<-chan string, error)
}
