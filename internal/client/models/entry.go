// Package models holds the client-side projection of the gallery data.
package models

import "time"

// Entry is the client projection of one gallery item. DisplayURL and
// IsResolving are derived, client-only fields populated by the resolution
// pass; they never travel over the wire.
type Entry struct {
	ID        int64          `json:"id"`
	Prompt    string         `json:"prompt"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	FileRef   string         `json:"file_ref"`
	OwnerRef  string         `json:"owner_ref,omitempty"`
	CreatedAt time.Time      `json:"created_at"`

	DisplayURL  string `json:"-"`
	IsResolving bool   `json:"-"`
}

// Page is the canonical page shape every fetch is normalized into.
// NextCursor is zero when the server reported no further pages.
type Page struct {
	Items      []*Entry
	HasMore    bool
	NextCursor int64
	Limit      int
}
