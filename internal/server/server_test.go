package server

import (
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"feature-prioritizer/internal/bootstrap"
	"feature-prioritizer/internal/config"
	"feature-prioritizer/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	cfg := &config.Config{
		App:     config.AppConfig{Port: "0", CorsAllowedOrigins: "*"},
		Storage: config.StorageConfig{Driver: config.StorageMemory, Key: "test"},
	}
	container, err := bootstrap.NewContainer(cfg, bootstrap.Options{Logger: logger.NewNopLogger(), DisableEvents: true})
	require.NoError(t, err)
	t.Cleanup(container.Close)
	return New(cfg, container)
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("POST", "/api/features/v1/sample/moscow", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	resp, err = srv.GetApp().Test(httptest.NewRequest("GET", "/metrics", nil))
	require.NoError(t, err)
	require.Equal(t, 200, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), `feature_prioritizer_mutations_total{kind="sample"} 1`))
	assert.True(t, strings.Contains(string(body), `feature_prioritizer_features{framework="moscow"} 11`))
}

func TestUnknownRoute(t *testing.T) {
	srv := newTestServer(t)

	resp, err := srv.GetApp().Test(httptest.NewRequest("GET", "/api/nothing", nil))
	require.NoError(t, err)
	assert.Equal(t, 404, resp.StatusCode)
}
