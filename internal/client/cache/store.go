// Package cache holds the client's two durable caches: the bounded top-page
// snapshot and the file-reference to display-URL map. Neither carries a TTL;
// both are invalidated only by explicit action and are rebuildable from
// scratch at any time.
package cache

import (
	"context"

	"github.com/olegsm/imagewall/internal/client/models"
)

type Store interface {
	// Snapshot returns the cached top page, or an empty slice when none was
	// saved yet.
	Snapshot(ctx context.Context) ([]*models.Entry, error)

	// SaveSnapshot overwrites the cached top page.
	SaveSnapshot(ctx context.Context, entries []*models.Entry) error

	// DropFromSnapshot removes one entry from the cached top page.
	DropFromSnapshot(ctx context.Context, id int64) error

	// ImageURL returns the cached display URL for a file reference, or the
	// empty string when unknown.
	ImageURL(ctx context.Context, fileRef string) (string, error)

	// SaveImageURL records a resolved display URL.
	SaveImageURL(ctx context.Context, fileRef, url string) error

	// DropImage forgets one resolved URL.
	DropImage(ctx context.Context, fileRef string) error

	// Clear wipes both caches.
	Clear(ctx context.Context) error
}
