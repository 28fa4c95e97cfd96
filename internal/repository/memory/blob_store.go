package memory

import (
	"context"
	"slices"

	"feature-prioritizer/internal/repository/contract"

	"github.com/patrickmn/go-cache"
)

type BlobStore struct {
	cache *cache.Cache
}

func NewBlobStore() contract.BlobStore {
	// Blobs never expire and there is nothing for a janitor to purge.
	c := cache.New(cache.NoExpiration, 0)
	return &BlobStore{
		cache: c,
	}
}

func (s *BlobStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	if x, found := s.cache.Get(key); found {
		return slices.Clone(x.([]byte)), true, nil
	}
	return nil, false, nil
}

func (s *BlobStore) Set(_ context.Context, key string, value []byte) error {
	s.cache.Set(key, slices.Clone(value), cache.NoExpiration)
	return nil
}

func (s *BlobStore) Delete(_ context.Context, key string) error {
	s.cache.Delete(key)
	return nil
}
