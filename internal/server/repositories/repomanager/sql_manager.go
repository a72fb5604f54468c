package repomanager

import (
	"context"
	"database/sql"
	"embed"

	_ "github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/dmitrijs2005/mediaxis/internal/dbx"
	"github.com/dmitrijs2005/mediaxis/internal/server/migrations"
	"github.com/dmitrijs2005/mediaxis/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/mediaxis/internal/server/repositories/schema"
)

// SQLRepositoryManager binds repositories of one SQL dialect to a *sql.DB.
type SQLRepositoryManager struct {
	db *sql.DB

	gooseDialect  string
	migrationsFS  embed.FS
	migrationsDir string

	newAccounts func(dbx.DBTX) *accounts.SQLRepository
	newSchema   func(dbx.DBTX) *schema.SQLRepository
}

// NewPostgresRepositoryManager constructs a PostgreSQL-backed RepositoryManager.
func NewPostgresRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &SQLRepositoryManager{
		db:            db,
		gooseDialect:  "pgx",
		migrationsFS:  migrations.Postgres,
		migrationsDir: "postgres",
		newAccounts:   accounts.NewPostgresRepository,
		newSchema:     schema.NewPostgresRepository,
	}, nil
}

// NewMySQLRepositoryManager constructs a MySQL-backed RepositoryManager.
// The DSN must carry parseTime=true so DATETIME columns scan into time.Time.
func NewMySQLRepositoryManager(db *sql.DB) (RepositoryManager, error) {
	return &SQLRepositoryManager{
		db:            db,
		gooseDialect:  "mysql",
		migrationsFS:  migrations.MySQL,
		migrationsDir: "mysql",
		newAccounts:   accounts.NewMySQLRepository,
		newSchema:     schema.NewMySQLRepository,
	}, nil
}

func (m *SQLRepositoryManager) Accounts() accounts.Repository {
	return m.newAccounts(m.db)
}

func (m *SQLRepositoryManager) Schema() schema.Repository {
	return m.newSchema(m.db)
}

func (m *SQLRepositoryManager) RunTx(ctx context.Context, fn func(ctx context.Context, repo accounts.Repository) error) error {
	return dbx.WithTx(ctx, m.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		return fn(ctx, m.newAccounts(tx))
	})
}

// gooseUpContext is a seam for testing goose.UpContext.
var gooseUpContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
	return goose.UpContext(ctx, db, dir, opts...)
}

// RunMigrations sets up goose with the embedded migrations of the manager's
// dialect and applies them.
func (m *SQLRepositoryManager) RunMigrations(ctx context.Context) error {
	goose.SetBaseFS(m.migrationsFS)
	if err := goose.SetDialect(m.gooseDialect); err != nil {
		return err
	}
	if err := gooseUpContext(ctx, m.db, m.migrationsDir); err != nil {
		return err
	}
	return nil
}
