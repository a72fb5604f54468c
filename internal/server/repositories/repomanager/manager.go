// Package repomanager vends the repositories for the configured storage
// backend and owns the schema migrations and transaction boundaries.
package repomanager

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/dmitrijs2005/mediaxis/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/mediaxis/internal/server/repositories/schema"
)

// Supported database/sql driver names. DriverMemory selects the in-process
// store and opens no database.
const (
	DriverPostgres = "pgx"
	DriverMySQL    = "mysql"
	DriverMemory   = "memory"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Accounts() accounts.Repository
	Schema() schema.Repository
	// RunTx runs fn with an accounts repository bound to a single transaction.
	// The transaction commits when fn returns nil.
	RunTx(ctx context.Context, fn func(ctx context.Context, repo accounts.Repository) error) error
}

// New returns the manager matching driver. db must have been opened with the
// same driver name.
func New(driver string, db *sql.DB) (RepositoryManager, error) {
	switch driver {
	case DriverPostgres:
		return NewPostgresRepositoryManager(db)
	case DriverMySQL:
		return NewMySQLRepositoryManager(db)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}
}
