package feed

import (
	"context"
	"testing"
	"time"

	"github.com/olegsm/imagewall/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearEnd_LoadsNextPage(t *testing.T) {
	t.Parallel()

	source := newScriptedSource(5, 4, 3, 2, 1)
	f, _, _ := newTestFeed(source, 2)
	ctx := context.Background()

	require.NoError(t, f.Load(ctx, false, false))

	w := NewWatcher(f, time.Hour, logging.NewDefault())
	w.NearEnd(ctx)

	assert.Equal(t, []int64{5, 4, 3, 2}, visibleIDs(f))
}

func TestNearEnd_NoOpWhenExhausted(t *testing.T) {
	t.Parallel()

	source := newScriptedSource(2, 1)
	f, _, _ := newTestFeed(source, 5)
	ctx := context.Background()

	require.NoError(t, f.Load(ctx, false, false))
	require.False(t, f.HasMore())

	w := NewWatcher(f, time.Hour, logging.NewDefault())
	before := source.fetchCount
	w.NearEnd(ctx)
	assert.Equal(t, before, source.fetchCount)
}

func TestWatcher_PeriodicRefreshPicksUpNewEntries(t *testing.T) {
	t.Parallel()

	source := newScriptedSource(2, 1)
	f, _, _ := newTestFeed(source, 5)
	ctx := context.Background()

	require.NoError(t, f.Load(ctx, false, false))
	source.prepend(3)

	w := NewWatcher(f, time.Second, logging.NewDefault())
	require.NoError(t, w.Start())
	defer w.Stop()

	require.Eventually(t, func() bool {
		ids := visibleIDs(f)
		return len(ids) > 0 && ids[0] == 3
	}, 5*time.Second, 50*time.Millisecond)
}
