package repomanager

import (
	"context"
	"database/sql"

	"github.com/avmarques/accounts/internal/dbx"
	"github.com/avmarques/accounts/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so
// services can run the same repository code against *sql.DB or *sql.Tx.
type RepositoryManager interface {
	Users(db dbx.DBTX) users.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
