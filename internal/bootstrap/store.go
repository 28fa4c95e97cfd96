package bootstrap

import (
	"context"
	"fmt"
	"time"

	"feature-prioritizer/internal/config"
	"feature-prioritizer/internal/pkg/logger"
	"feature-prioritizer/internal/repository/contract"
	"feature-prioritizer/internal/repository/implementation"
	"feature-prioritizer/internal/repository/memory"
	"feature-prioritizer/pkg/database"

	"github.com/redis/go-redis/v9"
)

// NewBlobStore opens the store selected by cfg.Storage.Driver. The returned
// close function releases its connections.
func NewBlobStore(cfg *config.Config, log logger.ILogger) (contract.BlobStore, func(), error) {
	noop := func() {}

	switch cfg.Storage.Driver {
	case config.StorageMemory, "":
		return memory.NewBlobStore(), noop, nil

	case config.StorageFile:
		return implementation.NewFileBlobStore(cfg.Storage.FileDir), noop, nil

	case config.StorageRedis:
		opt, err := redis.ParseURL(cfg.App.RedisURL)
		if err != nil {
			log.Warn("bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
			opt = &redis.Options{Addr: cfg.App.RedisURL}
		}
		client := redis.NewClient(opt)

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Ping(ctx).Err(); err != nil {
			client.Close()
			return nil, noop, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return implementation.NewRedisBlobStore(client), func() { client.Close() }, nil

	case config.StoragePostgres:
		db, err := database.NewGormDBFromDSN(cfg.Database.Connection, !cfg.IsProduction())
		if err != nil {
			return nil, noop, fmt.Errorf("failed to connect to Postgres: %w", err)
		}
		if err := implementation.MigrateBlobs(db); err != nil {
			return nil, noop, fmt.Errorf("failed to migrate blob table: %w", err)
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				sqlDB.Close()
			}
		}
		return implementation.NewGormBlobStore(db), closeFn, nil
	}

	return nil, noop, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
