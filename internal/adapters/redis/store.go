package redis

import (
	"context"
	"errors"
	"fmt"

	"cbrbot/internal/domain"

	goredis "github.com/redis/go-redis/v9"
)

const scanBatch = 100

type Store struct {
	cli goredis.UniversalClient
}

func (s *Store) Get(ctx context.Context, key string) (string, bool, error) {
	v, err := s.cli.Get(ctx, key).Result()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("%w: failed to get key %q: %w", domain.ErrCacheUnavailable, key, err)
	}
	return v, true, nil
}

// Set writes without expiry; a snapshot stays until the next sync overwrites it.
func (s *Store) Set(ctx context.Context, key string, value string) error {
	if err := s.cli.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("%w: failed to set key %q: %w", domain.ErrCacheUnavailable, key, err)
	}
	return nil
}

// Keys walks the keyspace with SCAN so a listing never blocks the server the way KEYS does.
func (s *Store) Keys(ctx context.Context) ([]string, error) {
	keys := make([]string, 0, 64)
	iter := s.cli.Scan(ctx, 0, "*", scanBatch).Iterator()
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return nil, fmt.Errorf("%w: failed to scan keys: %w", domain.ErrCacheUnavailable, err)
	}
	return dedupe(keys), nil
}

// SCAN may return a key more than once.
func dedupe(keys []string) []string {
	seen := make(map[string]struct{}, len(keys))
	out := keys[:0]
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	return out
}

func NewStore(cli goredis.UniversalClient) *Store {
	return &Store{cli: cli}
}
