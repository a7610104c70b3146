package entries

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/olegsm/imagewall/internal/common"
	"github.com/olegsm/imagewall/internal/dbx"
	"github.com/olegsm/imagewall/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const selectColumns = `id, prompt, metadata, file_ref, owner_ref, created_at`

func (r *PostgresRepository) SelectPage(ctx context.Context, cursor int64, limit int) ([]*models.Entry, error) {

	query := `SELECT ` + selectColumns + `
		FROM entries
		WHERE ($1 = 0 OR id < $1)
		ORDER BY id DESC
		LIMIT $2`

	rows, err := r.db.QueryContext(ctx, query, cursor, limit)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *PostgresRepository) SelectRecent(ctx context.Context, limit int) ([]*models.Entry, error) {

	query := `SELECT ` + selectColumns + `
		FROM entries
		ORDER BY created_at DESC
		LIMIT $1`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error performing sql request: %w", err)
	}
	defer rows.Close()

	return scanEntries(rows)
}

func (r *PostgresRepository) DeleteByID(ctx context.Context, id int64) error {

	res, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error performing sql request: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("error reading affected rows: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

type rowScanner interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
}

func scanEntries(rows rowScanner) ([]*models.Entry, error) {
	result := make([]*models.Entry, 0)

	for rows.Next() {
		e := &models.Entry{}
		var metadata []byte
		if err := rows.Scan(&e.ID, &e.Prompt, &metadata, &e.FileRef, &e.OwnerRef, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("error scanning entry row: %w", err)
		}
		if len(metadata) > 0 {
			if err := json.Unmarshal(metadata, &e.Metadata); err != nil {
				return nil, fmt.Errorf("error decoding entry metadata: %w", err)
			}
		}
		result = append(result, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry rows: %w", err)
	}

	return result, nil
}
