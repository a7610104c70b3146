package feed

import (
	"context"

	"github.com/olegsm/imagewall/internal/client/models"
)

// resolveAll kicks off URL resolution for every entry lacking a display URL,
// or for every entry when force is set. Each target resolves on its own
// goroutine so list rendering never waits on it.
func (f *Feed) resolveAll(ctx context.Context, force bool) {

	f.mu.Lock()
	var targets []*models.Entry
	for _, e := range f.entries {
		if e.FileRef == "" || e.IsResolving {
			continue
		}
		if e.DisplayURL != "" && !force {
			continue
		}
		e.IsResolving = true
		targets = append(targets, e)
	}
	f.mu.Unlock()

	for _, e := range targets {
		go f.resolveOne(ctx, e, force)
	}
}

// resolveOne consults the image cache first (unless force-invalidated),
// falls back to the resolver, and writes the URL back under the feed lock
// only while the entry is still visible.
func (f *Feed) resolveOne(ctx context.Context, e *models.Entry, force bool) {

	var url string
	if !force {
		cached, err := f.store.ImageURL(ctx, e.FileRef)
		if err != nil {
			f.logger.Warn(ctx, "reading image cache", "file_ref", e.FileRef, "error", err)
		}
		url = cached
	}

	var resolveErr error
	if url == "" {
		url, resolveErr = f.resolver.Resolve(ctx, e.FileRef)
		if resolveErr == nil {
			if err := f.store.SaveImageURL(ctx, e.FileRef, url); err != nil {
				f.logger.Warn(ctx, "saving image cache", "file_ref", e.FileRef, "error", err)
			}
		}
	}

	f.mu.Lock()
	e.IsResolving = false
	if resolveErr == nil && f.containsLocked(e.ID) {
		e.DisplayURL = url
	}
	f.mu.Unlock()

	if resolveErr != nil {
		// image stays unresolved; a forced refresh may retry it
		f.logger.Warn(ctx, "resolving image", "id", e.ID, "file_ref", e.FileRef, "error", resolveErr)
	}
}
