// Package services holds the application services behind the HTTP surface.
package services

import (
	"context"
	"fmt"

	"github.com/olegsm/imagewall/internal/common"
	"github.com/olegsm/imagewall/internal/server/models"
	"github.com/olegsm/imagewall/internal/server/repositories/entries"
)

const (
	DefaultPageLimit = 60
	MaxPageLimit     = 200

	// LegacyListLimit caps the flat list served to pre-pagination clients.
	LegacyListLimit = 200
)

// Page is the canonical keyset page produced by the gallery service.
// NextCursor is zero when no further pages exist.
type Page struct {
	Items      []*models.Entry
	HasMore    bool
	NextCursor int64
	Limit      int
}

type GalleryService struct {
	repo entries.Repository
}

func NewGalleryService(repo entries.Repository) *GalleryService {
	return &GalleryService{repo: repo}
}

// ListPage serves one id-descending page. The cursor is the id of the last
// entry of the previous page; zero means "from the top". The limit is
// clamped to 1..MaxPageLimit, with DefaultPageLimit for non-positive input.
func (s *GalleryService) ListPage(ctx context.Context, cursor int64, limit int) (*Page, error) {

	if cursor < 0 {
		return nil, common.ErrInvalidCursor
	}

	if limit <= 0 {
		limit = DefaultPageLimit
	}
	if limit > MaxPageLimit {
		limit = MaxPageLimit
	}

	// over-fetch one row to learn whether another page exists
	rows, err := s.repo.SelectPage(ctx, cursor, limit+1)
	if err != nil {
		return nil, fmt.Errorf("selecting page: %w", err)
	}

	hasMore := len(rows) > limit
	if hasMore {
		rows = rows[:limit]
	}

	var nextCursor int64
	if hasMore && len(rows) > 0 {
		nextCursor = rows[len(rows)-1].ID
	}

	return &Page{Items: rows, HasMore: hasMore, NextCursor: nextCursor, Limit: limit}, nil
}

// ListLegacy serves the backward-compatible flat list, newest first by
// timestamp.
func (s *GalleryService) ListLegacy(ctx context.Context) ([]*models.Entry, error) {
	rows, err := s.repo.SelectRecent(ctx, LegacyListLimit)
	if err != nil {
		return nil, fmt.Errorf("selecting recent entries: %w", err)
	}
	return rows, nil
}

// Delete removes one entry. common.ErrorNotFound propagates unchanged so a
// repeated delete of an already-removed id stays distinguishable.
func (s *GalleryService) Delete(ctx context.Context, id int64) error {
	if err := s.repo.DeleteByID(ctx, id); err != nil {
		return err
	}
	return nil
}
