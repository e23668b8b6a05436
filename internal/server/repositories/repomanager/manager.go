// Package repomanager vends repositories backed either by PostgreSQL or by
// process memory, and runs a unit of work across them transactionally.
package repomanager

import (
	"context"

	"github.com/dmitrijs2005/assocportal/internal/server/repositories/users"
)

// TxFunc is a unit of work over repositories bound to one transaction.
type TxFunc func(ctx context.Context, repo users.Repository) error

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users() users.Repository
	WithinTx(ctx context.Context, fn TxFunc) error
	Close() error
}

// Open returns a Postgres-backed manager with migrations applied when dsn is
// set, and an in-memory manager otherwise.
func Open(ctx context.Context, dsn string) (RepositoryManager, error) {
	if dsn == "" {
		return NewMemoryRepositoryManager(), nil
	}
	return OpenPostgres(ctx, dsn)
}
