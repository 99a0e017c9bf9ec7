package memory

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// Store is a process-local RateStore, the fake cache of the sync, query and handler tests.
type Store struct {
	mu     sync.RWMutex
	values map[string]string
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.values[key]
	return v, ok, nil
}

func (s *Store) Set(ctx context.Context, key string, value string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *Store) Keys(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Collect(maps.Keys(s.values)), nil
}

// Snapshot returns a copy of everything stored.
func (s *Store) Snapshot() map[string]string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return maps.Clone(s.values)
}

func NewStore() *Store {
	return &Store{values: make(map[string]string)}
}

// NewStoreWith seeds the store with initial values.
func NewStoreWith(values map[string]string) *Store {
	s := NewStore()
	maps.Copy(s.values, values)
	return s
}
