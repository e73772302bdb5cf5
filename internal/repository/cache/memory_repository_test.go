package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestMemoryRepository_GetSet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop())

	t.Run("miss on unknown key", func(t *testing.T) {
		data, err := repo.Get(ctx, "osm:47.3769_8.5417_500")
		require.NoError(t, err)
		assert.Nil(t, data)
	})

	t.Run("set then get returns identical data", func(t *testing.T) {
		payload := []byte(`[{"id":"osm_42"}]`)
		require.NoError(t, repo.Set(ctx, "osm:47.3769_8.5417_500", payload, time.Minute))

		data, err := repo.Get(ctx, "osm:47.3769_8.5417_500")
		require.NoError(t, err)
		assert.Equal(t, payload, data)
	})

	t.Run("exists reflects stored keys", func(t *testing.T) {
		ok, err := repo.Exists(ctx, "osm:47.3769_8.5417_500")
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.Exists(ctx, "google:47.3769_8.5417_2000")
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("delete removes key", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "osm:47.3769_8.5417_500"))

		data, err := repo.Get(ctx, "osm:47.3769_8.5417_500")
		require.NoError(t, err)
		assert.Nil(t, data)
	})
}

func TestMemoryRepository_TTLExpiry(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository(zap.NewNop()).(*memoryRepository)

	current := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	repo.now = func() time.Time { return current }

	require.NoError(t, repo.Set(ctx, "osm:key", []byte("cached"), 5*time.Minute))

	// Still fresh just before the window elapses
	current = current.Add(5*time.Minute - time.Second)
	data, err := repo.Get(ctx, "osm:key")
	require.NoError(t, err)
	assert.Equal(t, []byte("cached"), data)

	// Treated as absent once the freshness window has passed
	current = current.Add(2 * time.Second)
	data, err = repo.Get(ctx, "osm:key")
	require.NoError(t, err)
	assert.Nil(t, data)

	ok, err := repo.Exists(ctx, "osm:key")
	require.NoError(t, err)
	assert.False(t, ok)
}
