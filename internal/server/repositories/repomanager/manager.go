package repomanager

import (
	"context"
	"database/sql"

	"github.com/mkraev/lockbox/internal/dbx"
	"github.com/mkraev/lockbox/internal/server/repositories/items"
	"github.com/mkraev/lockbox/internal/server/repositories/users"
)

// RepositoryManager vends repository implementations bound to a DBTX, so a
// service can run several repositories inside one transaction.
type RepositoryManager interface {
	RunMigrations(ctx context.Context, db *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Items(db dbx.DBTX) items.Repository
}
