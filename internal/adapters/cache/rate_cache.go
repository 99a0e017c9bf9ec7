package cache

import (
	"context"
	"fmt"
	"sync"
	"time"

	"cbrbot/internal/adapters"

	"github.com/dgraph-io/ristretto"
)

// ReadThroughStore keeps rates read from a shared RateStore in process memory for a short TTL.
// Keys always go to the shared store, a listing has to see every code.
type ReadThroughStore struct {
	next  adapters.RateStore
	cache *ristretto.Cache
	ttl   time.Duration
	// -----
	mu          sync.Mutex
	generations map[string]uint64 // bumped by every Set of the key
}

func NewReadThroughStore(next adapters.RateStore, maxItems int64, ttl time.Duration) (*ReadThroughStore, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create rate cache failed: %w", err)
	}
	return &ReadThroughStore{next: next, cache: c, ttl: ttl, generations: make(map[string]uint64)}, nil
}

func (s *ReadThroughStore) Get(ctx context.Context, key string) (string, bool, error) {
	if v, ok := s.cache.Get(key); ok {
		if value, ok := v.(string); ok {
			return value, true, nil
		}
	}

	s.mu.Lock()
	gen := s.generations[key]
	s.mu.Unlock()

	value, found, err := s.next.Get(ctx, key)
	if err != nil || !found {
		return value, found, err
	}

	// a Set that started while we were reading may have written a newer value
	s.mu.Lock()
	if s.generations[key] == gen {
		s.cache.SetWithTTL(key, value, 1, s.ttl)
	}
	s.mu.Unlock()
	return value, true, nil
}

// Set writes through and drops the local copy; the next Get reloads it.
func (s *ReadThroughStore) Set(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	s.generations[key]++
	s.mu.Unlock()

	if err := s.next.Set(ctx, key, value); err != nil {
		return err
	}

	s.mu.Lock()
	s.cache.Del(key)
	s.mu.Unlock()
	return nil
}

func (s *ReadThroughStore) Keys(ctx context.Context) ([]string, error) {
	return s.next.Keys(ctx)
}

func (s *ReadThroughStore) Close() { s.cache.Close() }
