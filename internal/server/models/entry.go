// Package models holds the server-side data model.
package models

import "time"

// Entry is one gallery item. IDs are server-assigned and monotonically
// increasing, so the collection's native order is id-descending (newest
// first).
type Entry struct {
	ID        int64
	Prompt    string
	Metadata  map[string]any
	FileRef   string
	OwnerRef  string
	CreatedAt time.Time
}
