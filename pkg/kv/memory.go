package kv

import (
	"context"

	"github.com/patrickmn/go-cache"
)

// MemoryStore is the process-local fallback used when no Redis URL is
// configured, and the storage backing for tests.
type MemoryStore struct {
	cache *cache.Cache
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		cache: cache.New(cache.NoExpiration, 0),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if x, found := s.cache.Get(key); found {
		return x.([]byte), nil
	}
	return nil, ErrNotFound
}

func (s *MemoryStore) Set(_ context.Context, key string, value []byte) error {
	s.cache.Set(key, value, cache.NoExpiration)
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
