package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/aretw0/gatefold/pkg/domain"
)

// Store implements ports.ModelStore in memory.
// Safe for concurrent use.
type Store struct {
	data map[string]*domain.Model
	mu   sync.RWMutex
}

// NewStore creates a new in-memory store.
func NewStore() *Store {
	return &Store{
		data: make(map[string]*domain.Model),
	}
}

// Save keeps a deep copy of the model.
func (s *Store) Save(ctx context.Context, id string, model *domain.Model) error {
	copied := model.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[id] = copied
	return nil
}

// Load returns a copy so callers cannot mutate cached models through the pointer.
func (s *Store) Load(ctx context.Context, id string) (*domain.Model, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	model, ok := s.data[id]
	if !ok {
		return nil, domain.ErrModelNotFound
	}
	return model.Clone(), nil
}

// Delete removes the cached model.
func (s *Store) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, id)
	return nil
}

// List returns cached model IDs in sorted order.
func (s *Store) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.data))
	for id := range s.data {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
