package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBlobStore(t *testing.T) {
	ctx := context.Background()
	store := NewBlobStore()

	_, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)

	value := []byte("[1]")
	require.NoError(t, store.Set(ctx, "k", value))
	value[1] = '2'

	got, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "[1]", string(got), "stored bytes must not alias the caller's slice")

	got[1] = '3'
	again, _, _ := store.Get(ctx, "k")
	assert.Equal(t, "[1]", string(again))

	require.NoError(t, store.Delete(ctx, "k"))
	_, found, _ = store.Get(ctx, "k")
	assert.False(t, found)
}
