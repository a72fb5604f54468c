package schema

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/mediaxis/internal/dbx"
)

const (
	postgresListTables = `SELECT table_name FROM information_schema.tables
		 WHERE table_schema = 'public'
		 ORDER BY table_name`
	mysqlListTables = `SHOW TABLES`
)

// SQLRepository lists tables with a single dialect-specific statement that
// yields one text column per row.
type SQLRepository struct {
	db    dbx.DBTX
	query string
}

func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, query: postgresListTables}
}

func NewMySQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, query: mysqlListTables}
}

func (r *SQLRepository) ListTables(ctx context.Context) ([]string, error) {
	rows, err := r.db.QueryContext(ctx, r.query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	tables := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tables = append(tables, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tables, nil
}
