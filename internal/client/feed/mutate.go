package feed

import (
	"context"
	"fmt"
	"sort"

	"github.com/olegsm/imagewall/internal/client/models"
	"github.com/olegsm/imagewall/internal/common"
)

// opState is the lifecycle of one optimistic delete.
type opState int

const (
	stateOptimistic opState = iota
	stateConfirmed
	stateRolledBack
)

// deleteOp tracks one optimistically hidden entry and where it came from so
// a failed request can put it back.
type deleteOp struct {
	entry *models.Entry
	index int
	state opState
}

// BatchResult accounts for one batch deletion. Every target ends up in
// exactly one of the two counters.
type BatchResult struct {
	Succeeded int
	Failed    int
	Errors    map[int64]error
}

// DeleteOne optimistically removes the entry, issues the server delete, and
// rolls the removal back on any failure — including NotFound, which still
// reads as a failed attempt even though the end state matches success.
func (f *Feed) DeleteOne(ctx context.Context, id int64) error {
	op, err := f.hide(id)
	if err != nil {
		return err
	}
	return f.finish(ctx, op)
}

// DeleteBatch hides every target up front, then issues the deletes strictly
// serially: one request completes before the next begins, bounding backend
// load and keeping rollback ordering deterministic. Outcomes are accumulated
// independently; one failure never blocks or rolls back a sibling.
func (f *Feed) DeleteBatch(ctx context.Context, ids []int64) *BatchResult {

	res := &BatchResult{Errors: make(map[int64]error)}

	ops := make([]*deleteOp, 0, len(ids))
	for _, id := range ids {
		op, err := f.hide(id)
		if err != nil {
			res.Failed++
			res.Errors[id] = err
			continue
		}
		ops = append(ops, op)
	}

	for _, op := range ops {
		if err := f.finish(ctx, op); err != nil {
			res.Failed++
			res.Errors[op.entry.ID] = err
			continue
		}
		res.Succeeded++
	}

	return res
}

// Select marks a visible entry for batch operations.
func (f *Feed) Select(id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.containsLocked(id) {
		return common.ErrorNotFound
	}
	f.selected[id] = struct{}{}
	return nil
}

// Deselect removes an entry from the selection set.
func (f *Feed) Deselect(id int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.selected, id)
}

// Selected returns the selection set in ascending id order.
func (f *Feed) Selected() []int64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int64, 0, len(f.selected))
	for id := range f.selected {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// hide removes an entry from the visible list, remembers its index and marks
// it pending so no concurrent merge can bring it back.
func (f *Feed) hide(id int64) (*deleteOp, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, e := range f.entries {
		if e.ID != id {
			continue
		}
		f.entries = append(f.entries[:i], f.entries[i+1:]...)
		f.pending[id] = struct{}{}
		f.resyncSelection()
		return &deleteOp{entry: e, index: i, state: stateOptimistic}, nil
	}

	return nil, common.ErrorNotFound
}

// finish drives one hidden entry to confirmed or rolled-back.
func (f *Feed) finish(ctx context.Context, op *deleteOp) error {
	if err := f.source.DeleteEntry(ctx, op.entry.ID); err != nil {
		f.rollback(op)
		return fmt.Errorf("deleting entry %d: %w", op.entry.ID, err)
	}
	f.confirm(ctx, op)
	return nil
}

func (f *Feed) confirm(ctx context.Context, op *deleteOp) {
	f.mu.Lock()
	op.state = stateConfirmed
	delete(f.pending, op.entry.ID)
	f.mu.Unlock()

	if err := f.store.DropFromSnapshot(ctx, op.entry.ID); err != nil {
		f.logger.Warn(ctx, "dropping entry from snapshot", "id", op.entry.ID, "error", err)
	}
	if op.entry.FileRef != "" {
		if err := f.store.DropImage(ctx, op.entry.FileRef); err != nil {
			f.logger.Warn(ctx, "dropping image url", "file_ref", op.entry.FileRef, "error", err)
		}
	}
}

// rollback reinserts the entry at its original index, clamped to the current
// length since concurrent merges may have grown or shrunk the list.
func (f *Feed) rollback(op *deleteOp) {
	f.mu.Lock()
	defer f.mu.Unlock()

	op.state = stateRolledBack
	delete(f.pending, op.entry.ID)

	i := op.index
	if i > len(f.entries) {
		i = len(f.entries)
	}
	f.entries = append(f.entries[:i], append([]*models.Entry{op.entry}, f.entries[i:]...)...)
	f.resyncSelection()
}
