package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func unsetEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, key := range keys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func TestLoadDefaults(t *testing.T) {
	unsetEnv(t, "APP_PORT", "GO_ENV", "STORAGE_DRIVER", "STORAGE_KEY", "NATS_URL", "OTEL_ENABLED")

	cfg := Load()
	assert.Equal(t, "3000", cfg.App.Port)
	assert.False(t, cfg.IsProduction())
	assert.False(t, cfg.App.OtelEnabled)
	assert.Empty(t, cfg.App.NatsURL)
	assert.Equal(t, StorageMemory, cfg.Storage.Driver)
	assert.Equal(t, "feature-prioritizer-data", cfg.Storage.Key)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "8080")
	t.Setenv("GO_ENV", "production")
	t.Setenv("STORAGE_DRIVER", StorageRedis)
	t.Setenv("STORAGE_FILE_DIR", "/tmp/prio")
	t.Setenv("OTEL_ENABLED", "true")

	cfg := Load()
	assert.Equal(t, "8080", cfg.App.Port)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, StorageRedis, cfg.Storage.Driver)
	assert.Equal(t, "/tmp/prio", cfg.Storage.FileDir)
	assert.True(t, cfg.App.OtelEnabled)
}

func TestGetEnvAsBoolFallback(t *testing.T) {
	t.Setenv("PRIORITIZER_FLAG", "maybe")
	assert.True(t, getEnvAsBool("PRIORITIZER_FLAG", true))
	t.Setenv("PRIORITIZER_FLAG", "0")
	assert.False(t, getEnvAsBool("PRIORITIZER_FLAG", true))
}
