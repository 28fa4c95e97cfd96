// FILE: internal/repository/implementation/redis_blob_store.go
// Redis implementation of BlobStore
package implementation

import (
	"context"
	"errors"

	"feature-prioritizer/internal/repository/contract"

	"github.com/redis/go-redis/v9"
)

type RedisBlobStore struct {
	rdb *redis.Client
}

func NewRedisBlobStore(rdb *redis.Client) contract.BlobStore {
	return &RedisBlobStore{rdb: rdb}
}

func (s *RedisBlobStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return val, true, nil
}

func (s *RedisBlobStore) Set(ctx context.Context, key string, value []byte) error {
	return s.rdb.Set(ctx, key, value, 0).Err()
}

func (s *RedisBlobStore) Delete(ctx context.Context, key string) error {
	return s.rdb.Del(ctx, key).Err()
}
