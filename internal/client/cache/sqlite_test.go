package cache

import (
	"context"
	"testing"

	"github.com/olegsm/imagewall/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()

	store, db, err := OpenSQLite(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return store
}

func runStoreSuite(t *testing.T, store Store) {
	ctx := context.Background()

	t.Run("empty snapshot", func(t *testing.T) {
		entries, err := store.Snapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)
	})

	t.Run("snapshot roundtrip overwrites", func(t *testing.T) {
		require.NoError(t, store.SaveSnapshot(ctx, []*models.Entry{
			{ID: 5, Prompt: "sunset", FileRef: "f5"},
			{ID: 4, Prompt: "harbor", FileRef: "f4"},
		}))

		entries, err := store.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		assert.Equal(t, int64(5), entries[0].ID)
		assert.Equal(t, "sunset", entries[0].Prompt)

		require.NoError(t, store.SaveSnapshot(ctx, []*models.Entry{{ID: 6, FileRef: "f6"}}))

		entries, err = store.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(6), entries[0].ID)
	})

	t.Run("drop from snapshot", func(t *testing.T) {
		require.NoError(t, store.SaveSnapshot(ctx, []*models.Entry{
			{ID: 5, FileRef: "f5"},
			{ID: 4, FileRef: "f4"},
		}))

		require.NoError(t, store.DropFromSnapshot(ctx, 5))
		// absent id is a no-op
		require.NoError(t, store.DropFromSnapshot(ctx, 99))

		entries, err := store.Snapshot(ctx)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, int64(4), entries[0].ID)
	})

	t.Run("image urls", func(t *testing.T) {
		url, err := store.ImageURL(ctx, "f5")
		require.NoError(t, err)
		assert.Empty(t, url)

		require.NoError(t, store.SaveImageURL(ctx, "f5", "https://cdn/f5"))
		require.NoError(t, store.SaveImageURL(ctx, "f5", "https://cdn/f5-v2"))

		url, err = store.ImageURL(ctx, "f5")
		require.NoError(t, err)
		assert.Equal(t, "https://cdn/f5-v2", url)

		require.NoError(t, store.DropImage(ctx, "f5"))
		url, err = store.ImageURL(ctx, "f5")
		require.NoError(t, err)
		assert.Empty(t, url)
	})

	t.Run("clear wipes both caches", func(t *testing.T) {
		require.NoError(t, store.SaveSnapshot(ctx, []*models.Entry{{ID: 1, FileRef: "f1"}}))
		require.NoError(t, store.SaveImageURL(ctx, "f1", "https://cdn/f1"))

		require.NoError(t, store.Clear(ctx))

		entries, err := store.Snapshot(ctx)
		require.NoError(t, err)
		assert.Empty(t, entries)

		url, err := store.ImageURL(ctx, "f1")
		require.NoError(t, err)
		assert.Empty(t, url)
	})
}

func TestSQLiteStore(t *testing.T) {
	runStoreSuite(t, openTestStore(t))
}

func TestMemoryStore(t *testing.T) {
	runStoreSuite(t, NewMemoryStore())
}
