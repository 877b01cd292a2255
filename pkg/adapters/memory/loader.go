package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/aretw0/gatefold/pkg/domain"
)

// Loader implements ports.SourceLoader using an in-memory map.
// Safe for concurrent use.
type Loader struct {
	sources map[string][]byte
	mu      sync.RWMutex
}

// NewLoader creates a new in-memory loader with the provided source texts.
func NewLoader(data map[string]string) *Loader {
	sources := make(map[string][]byte, len(data))
	for k, v := range data {
		sources[k] = []byte(v)
	}
	return &Loader{
		sources: sources,
	}
}

// Put adds or replaces a source.
func (l *Loader) Put(id string, src []byte) error {
	if id == "" {
		return fmt.Errorf("model source missing ID")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sources[id] = append([]byte(nil), src...)
	return nil
}

// GetSource retrieves the source text of a model by ID.
func (l *Loader) GetSource(ctx context.Context, id string) ([]byte, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	content, ok := l.sources[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrModelNotFound, id)
	}
	return content, nil
}

// ListSources returns all available model IDs.
func (l *Loader) ListSources(ctx context.Context) ([]string, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	keys := make([]string, 0, len(l.sources))
	for k := range l.sources {
		keys = append(keys, k)
	}
	sort.Strings(keys) // Deterministic order
	return keys, nil
}
