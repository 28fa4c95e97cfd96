package nats

import (
	"context"
	"os"
	"testing"
	"time"

	"feature-prioritizer/pkg/events"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubject(t *testing.T) {
	assert.Equal(t, "prioritizer.events.features_changed", Subject(events.TypeFeaturesChanged))
}

func TestPublisherIntegration(t *testing.T) {
	url := os.Getenv("NATS_URL")
	if url == "" {
		t.Skip("Skipping integration test: NATS_URL not set")
	}

	p, err := NewPublisher(url)
	require.NoError(t, err)
	defer p.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err = p.Publish(ctx, events.NewFeaturesChanged("add", map[string]int{"rice": 1}, time.Now()))
	assert.NoError(t, err)
}
