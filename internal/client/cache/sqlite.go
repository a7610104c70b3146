package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/olegsm/imagewall/internal/client/migrations"
	"github.com/olegsm/imagewall/internal/client/models"
	"github.com/olegsm/imagewall/internal/dbx"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

const snapshotKey = "top_page"

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(db *sql.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// OpenSQLite opens (or creates) the cache database and applies migrations.
func OpenSQLite(ctx context.Context, dsn string) (*SQLiteStore, *sql.DB, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, nil, err
	}

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, nil, err
	}
	if err := goose.UpContext(ctx, db, "."); err != nil {
		return nil, nil, fmt.Errorf("migrating cache db: %w", err)
	}

	return NewSQLiteStore(db), db, nil
}

func (s *SQLiteStore) Snapshot(ctx context.Context) ([]*models.Entry, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM snapshots WHERE key = ?`, snapshotKey).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return []*models.Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var entries []*models.Entry
	if err := json.Unmarshal(value, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return entries, nil
}

func (s *SQLiteStore) SaveSnapshot(ctx context.Context, entries []*models.Entry) error {
	value, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("failed to encode snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO snapshots (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, snapshotKey, value)
	if err != nil {
		return fmt.Errorf("failed to save snapshot: %w", err)
	}
	return nil
}

func (s *SQLiteStore) DropFromSnapshot(ctx context.Context, id int64) error {
	entries, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}

	kept := make([]*models.Entry, 0, len(entries))
	for _, e := range entries {
		if e.ID != id {
			kept = append(kept, e)
		}
	}
	if len(kept) == len(entries) {
		return nil
	}

	return s.SaveSnapshot(ctx, kept)
}

func (s *SQLiteStore) ImageURL(ctx context.Context, fileRef string) (string, error) {
	var url string
	err := s.db.QueryRowContext(ctx, `SELECT url FROM images WHERE file_ref = ?`, fileRef).Scan(&url)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to get image url[%s]: %w", fileRef, err)
	}
	return url, nil
}

func (s *SQLiteStore) SaveImageURL(ctx context.Context, fileRef, url string) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO images (file_ref, url) VALUES (?, ?)
		ON CONFLICT(file_ref) DO UPDATE SET url = excluded.url
	`, fileRef, url)
	if err != nil {
		return fmt.Errorf("failed to save image url[%s]: %w", fileRef, err)
	}
	return nil
}

func (s *SQLiteStore) DropImage(ctx context.Context, fileRef string) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM images WHERE file_ref = ?`, fileRef)
	if err != nil {
		return fmt.Errorf("failed to drop image url[%s]: %w", fileRef, err)
	}
	return nil
}

// Clear wipes both caches in one transaction so an interrupted invalidation
// never leaves a snapshot pointing at dropped image urls.
func (s *SQLiteStore) Clear(ctx context.Context) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := tx.ExecContext(ctx, `DELETE FROM snapshots`); err != nil {
			return fmt.Errorf("failed to clear snapshots: %w", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM images`); err != nil {
			return fmt.Errorf("failed to clear images: %w", err)
		}
		return nil
	})
}
