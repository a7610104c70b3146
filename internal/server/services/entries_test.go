package services

import (
	"context"
	"testing"

	"github.com/olegsm/imagewall/internal/common"
	"github.com/olegsm/imagewall/internal/server/models"
	"github.com/olegsm/imagewall/internal/server/repositories/entries"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------- test fakes --------

type fakeEntriesRepo struct {
	entries.Repository

	all []*models.Entry

	lastCursor int64
	lastLimit  int

	deleted   []int64
	deleteErr error
}

func newFakeEntriesRepo(ids ...int64) *fakeEntriesRepo {
	r := &fakeEntriesRepo{}
	for _, id := range ids {
		r.all = append(r.all, &models.Entry{ID: id})
	}
	return r
}

func (f *fakeEntriesRepo) SelectPage(ctx context.Context, cursor int64, limit int) ([]*models.Entry, error) {
	f.lastCursor = cursor
	f.lastLimit = limit

	out := make([]*models.Entry, 0, limit)
	for _, e := range f.all {
		if cursor != 0 && e.ID >= cursor {
			continue
		}
		out = append(out, e)
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (f *fakeEntriesRepo) SelectRecent(ctx context.Context, limit int) ([]*models.Entry, error) {
	if len(f.all) > limit {
		return f.all[:limit], nil
	}
	return f.all, nil
}

func (f *fakeEntriesRepo) DeleteByID(ctx context.Context, id int64) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, id)
	return nil
}

// -------- tests --------

func TestListPage_WalksTheCollection(t *testing.T) {
	t.Parallel()

	repo := newFakeEntriesRepo(5, 4, 3, 2, 1)
	svc := NewGalleryService(repo)
	ctx := context.Background()

	page, err := svc.ListPage(ctx, 0, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(5), page.Items[0].ID)
	assert.Equal(t, int64(4), page.Items[1].ID)
	assert.True(t, page.HasMore)
	assert.Equal(t, int64(4), page.NextCursor)

	page, err = svc.ListPage(ctx, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 2)
	assert.Equal(t, int64(3), page.Items[0].ID)
	assert.Equal(t, int64(2), page.Items[1].ID)
	assert.True(t, page.HasMore)
	assert.Equal(t, int64(2), page.NextCursor)

	page, err = svc.ListPage(ctx, page.NextCursor, 2)
	require.NoError(t, err)
	require.Len(t, page.Items, 1)
	assert.Equal(t, int64(1), page.Items[0].ID)
	assert.False(t, page.HasMore)
	assert.Zero(t, page.NextCursor)
}

func TestListPage_ClampsLimit(t *testing.T) {
	t.Parallel()

	repo := newFakeEntriesRepo(5, 4, 3)
	svc := NewGalleryService(repo)
	ctx := context.Background()

	// non-positive input falls back to the default
	page, err := svc.ListPage(ctx, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, DefaultPageLimit, page.Limit)
	assert.Equal(t, DefaultPageLimit+1, repo.lastLimit)

	// oversized input is capped
	page, err = svc.ListPage(ctx, 0, 100000)
	require.NoError(t, err)
	assert.Equal(t, MaxPageLimit, page.Limit)
	assert.Equal(t, MaxPageLimit+1, repo.lastLimit)
}

func TestListPage_RejectsNegativeCursor(t *testing.T) {
	t.Parallel()

	svc := NewGalleryService(newFakeEntriesRepo())
	_, err := svc.ListPage(context.Background(), -1, 10)
	assert.ErrorIs(t, err, common.ErrInvalidCursor)
}

func TestDelete_PropagatesNotFound(t *testing.T) {
	t.Parallel()

	repo := newFakeEntriesRepo()
	repo.deleteErr = common.ErrorNotFound
	svc := NewGalleryService(repo)

	err := svc.Delete(context.Background(), 42)
	assert.ErrorIs(t, err, common.ErrorNotFound)
}

func TestListLegacy_CapsAtLegacyLimit(t *testing.T) {
	t.Parallel()

	repo := &fakeEntriesRepo{}
	for i := 0; i < LegacyListLimit+50; i++ {
		repo.all = append(repo.all, &models.Entry{ID: int64(LegacyListLimit + 50 - i)})
	}
	svc := NewGalleryService(repo)

	entries, err := svc.ListLegacy(context.Background())
	require.NoError(t, err)
	assert.Len(t, entries, LegacyListLimit)
}
