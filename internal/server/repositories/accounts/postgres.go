package accounts

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/mediaxis/internal/dbx"
)

// pgUniqueViolation is SQLSTATE unique_violation.
const pgUniqueViolation = "23505"

var postgresQueries = queries{
	insert: `INSERT INTO accounts (id, full_name, email, phone, password_hash, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
	existsByEmail: `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = $1)`,
	findByEmail: `SELECT ` + accountColumns + ` FROM accounts
		 WHERE email = $1
		 ORDER BY created_at LIMIT 1`,
	findByPhone: `SELECT ` + accountColumns + ` FROM accounts
		 WHERE phone = $1
		 ORDER BY created_at LIMIT 1`,
	listByEmail: `SELECT ` + accountColumns + ` FROM accounts
		 WHERE email = $1
		 ORDER BY created_at`,
	listByPhone: `SELECT ` + accountColumns + ` FROM accounts
		 WHERE phone = $1
		 ORDER BY created_at`,
	findByResetToken: `SELECT ` + accountColumns + ` FROM accounts
		 WHERE reset_token = $1 AND reset_expiry > $2`,
	redeemResetToken: `UPDATE accounts SET password_hash = $1, reset_token = NULL, reset_expiry = NULL
		 WHERE id = $2 AND reset_token = $3 AND reset_expiry > $4`,
	setResetToken: `UPDATE accounts SET reset_token = $1, reset_expiry = $2
		 WHERE id = $3`,
}

// NewPostgresRepository returns a Repository for PostgreSQL through the pgx
// stdlib driver.
func NewPostgresRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: postgresQueries, isUniqueViolation: isPgUniqueViolation}
}

func isPgUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
