// Package feed owns the client's in-memory view of the gallery: the ordered
// entry list, the pagination cursor, the pending-deletion set and the two
// durable caches behind it. Correctness under interleaved loads, refreshes
// and deletes comes from idempotent, set-membership-guarded merges rather
// than from excluding concurrency: any merge filters the pending-deletion
// set and de-duplicates by id, so overlapping operations cannot resurrect a
// deleted entry or double-insert one.
package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/olegsm/imagewall/internal/client/cache"
	"github.com/olegsm/imagewall/internal/client/models"
	"github.com/olegsm/imagewall/internal/logging"
)

// Source is the paginated read / delete surface of the gallery server.
type Source interface {
	FetchPage(ctx context.Context, cursor int64, limit int) (*models.Page, error)
	DeleteEntry(ctx context.Context, id int64) error
}

// Resolver turns a file reference into a display URL.
type Resolver interface {
	Resolve(ctx context.Context, fileRef string) (string, error)
}

type Feed struct {
	source    Source
	resolver  Resolver
	store     cache.Store
	logger    logging.Logger
	pageLimit int

	mu             sync.Mutex
	entries        []*models.Entry
	cursor         int64
	hasMore        bool
	loadingInitial bool
	loadingMore    bool
	pending        map[int64]struct{}
	selected       map[int64]struct{}
}

func New(source Source, resolver Resolver, store cache.Store, logger logging.Logger, pageLimit int) *Feed {
	return &Feed{
		source:    source,
		resolver:  resolver,
		store:     store,
		logger:    logger,
		pageLimit: pageLimit,
		pending:   make(map[int64]struct{}),
		selected:  make(map[int64]struct{}),
	}
}

// Load paints the cached top page when it can, fetches the first server
// page, and merges it in.
//
// Merge policy: a plain load (or any load into an empty list) replaces the
// visible list and adopts the page's cursor. A forced refresh of an
// already-populated list prepends the fresh top page, keeps previously
// loaded entries as a deduplicated tail so scrolled-in pages survive, and
// adopts the cursor only when none was set yet — a background refresh must
// not rewind pagination progress. Pending-deletion ids never come back from
// any source.
//
// Re-entrant calls while a load is in flight are no-ops.
func (f *Feed) Load(ctx context.Context, forceImages, forceList bool) error {

	f.mu.Lock()
	if f.loadingInitial {
		f.mu.Unlock()
		return nil
	}
	f.loadingInitial = true

	if !forceList && len(f.entries) == 0 {
		if cached, err := f.store.Snapshot(ctx); err != nil {
			f.logger.Warn(ctx, "reading feed snapshot", "error", err)
		} else if len(cached) > 0 {
			f.entries = f.filterPending(cached)
			f.resyncSelection()
		}
	}
	f.mu.Unlock()

	page, err := f.source.FetchPage(ctx, 0, f.pageLimit)

	f.mu.Lock()
	f.loadingInitial = false
	if err != nil {
		f.mu.Unlock()
		return fmt.Errorf("fetching first page: %w", err)
	}

	fresh := f.filterPending(page.Items)

	// carry already-resolved URLs over to the fresh copies
	prev := make(map[int64]*models.Entry, len(f.entries))
	for _, e := range f.entries {
		prev[e.ID] = e
	}
	for _, e := range fresh {
		if old, ok := prev[e.ID]; ok && e.DisplayURL == "" {
			e.DisplayURL = old.DisplayURL
		}
	}

	if !forceList || len(f.entries) == 0 {
		f.entries = fresh
		f.cursor = page.NextCursor
		f.hasMore = page.HasMore
	} else {
		seen := make(map[int64]struct{}, len(fresh))
		for _, e := range fresh {
			seen[e.ID] = struct{}{}
		}
		merged := make([]*models.Entry, 0, len(fresh)+len(f.entries))
		merged = append(merged, fresh...)
		for _, e := range f.entries {
			if _, ok := seen[e.ID]; !ok {
				merged = append(merged, e)
			}
		}
		f.entries = merged
		if f.cursor == 0 {
			f.cursor = page.NextCursor
			f.hasMore = page.HasMore
		}
	}
	f.resyncSelection()
	f.mu.Unlock()

	if err := f.store.SaveSnapshot(ctx, fresh); err != nil {
		f.logger.Warn(ctx, "saving feed snapshot", "error", err)
	}

	f.resolveAll(ctx, forceImages)
	return nil
}

// LoadMore fetches the page after the current cursor and appends only
// genuinely new entries. It is a guarded no-op while any load is running or
// when pagination is exhausted, so a viewport trigger may fire it in rapid
// succession.
func (f *Feed) LoadMore(ctx context.Context) error {

	f.mu.Lock()
	if f.loadingInitial || f.loadingMore || !f.hasMore || f.cursor == 0 {
		f.mu.Unlock()
		return nil
	}
	f.loadingMore = true
	cursor := f.cursor
	f.mu.Unlock()

	page, err := f.source.FetchPage(ctx, cursor, f.pageLimit)

	f.mu.Lock()
	f.loadingMore = false
	if err != nil {
		f.mu.Unlock()
		return fmt.Errorf("fetching page after %d: %w", cursor, err)
	}

	present := make(map[int64]struct{}, len(f.entries))
	for _, e := range f.entries {
		present[e.ID] = struct{}{}
	}
	for _, e := range f.filterPending(page.Items) {
		if _, ok := present[e.ID]; ok {
			continue
		}
		f.entries = append(f.entries, e)
	}
	f.cursor = page.NextCursor
	f.hasMore = page.HasMore
	f.resyncSelection()
	f.mu.Unlock()

	f.resolveAll(ctx, false)
	return nil
}

// Entries returns a snapshot of the visible list. Each element is a value
// copy taken under the feed lock: resolution goroutines keep mutating the
// live entries, so handing out the shared pointers would let callers read
// DisplayURL and IsResolving unsynchronized.
func (f *Feed) Entries() []*models.Entry {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]*models.Entry, 0, len(f.entries))
	for _, e := range f.entries {
		copied := *e
		out = append(out, &copied)
	}
	return out
}

// Cursor returns the current pagination cursor (zero when none).
func (f *Feed) Cursor() int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.cursor
}

// HasMore reports whether another page is believed to exist.
func (f *Feed) HasMore() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.hasMore
}

// Invalidate wipes both durable caches. The in-memory list is untouched.
func (f *Feed) Invalidate(ctx context.Context) error {
	return f.store.Clear(ctx)
}

// filterPending drops entries whose id is undergoing an optimistic delete.
// Callers must hold f.mu.
func (f *Feed) filterPending(entries []*models.Entry) []*models.Entry {
	kept := make([]*models.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := f.pending[e.ID]; ok {
			continue
		}
		kept = append(kept, e)
	}
	return kept
}

// resyncSelection intersects the selection set with the visible ids.
// Callers must hold f.mu.
func (f *Feed) resyncSelection() {
	if len(f.selected) == 0 {
		return
	}
	visible := make(map[int64]struct{}, len(f.entries))
	for _, e := range f.entries {
		visible[e.ID] = struct{}{}
	}
	for id := range f.selected {
		if _, ok := visible[id]; !ok {
			delete(f.selected, id)
		}
	}
}

func (f *Feed) containsLocked(id int64) bool {
	for _, e := range f.entries {
		if e.ID == id {
			return true
		}
	}
	return false
}
