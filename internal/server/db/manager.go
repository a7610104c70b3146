// Package db wires the Postgres connection, the repositories and the goose
// migrations together behind a small manager interface.
package db

import (
	"context"
	"database/sql"

	"github.com/olegsm/imagewall/internal/server/repositories/entries"
	"github.com/olegsm/imagewall/internal/server/repositories/users"
)

type RepositoryManager interface {
	Conn() *sql.DB
	Users() users.Repository
	Entries() entries.Repository
	RunMigrations(ctx context.Context) error
	Close() error
}
