package entries

import (
	"context"

	"github.com/olegsm/imagewall/internal/server/models"
)

type Repository interface {
	// SelectPage returns up to limit entries with id < cursor, id-descending.
	// A zero cursor means "from the newest entry".
	SelectPage(ctx context.Context, cursor int64, limit int) ([]*models.Entry, error)

	// SelectRecent returns up to limit entries ordered by created_at descending.
	SelectRecent(ctx context.Context, limit int) ([]*models.Entry, error)

	// DeleteByID removes one entry. Returns common.ErrorNotFound when no row
	// matched, so repeated deletes stay idempotent for callers.
	DeleteByID(ctx context.Context, id int64) error
}
