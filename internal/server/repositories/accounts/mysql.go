package accounts

import (
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/dmitrijs2005/mediaxis/internal/dbx"
)

// mysqlDuplicateEntry is ER_DUP_ENTRY.
const mysqlDuplicateEntry = 1062

var mysqlQueries = queries{
	insert: `INSERT INTO accounts (id, full_name, email, phone, password_hash, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
	existsByEmail: `SELECT EXISTS (SELECT 1 FROM accounts WHERE email = ?)`,
	findByEmail: `SELECT ` + accountColumns + ` FROM accounts
		 WHERE email = ?
		 ORDER BY created_at LIMIT 1`,
	findByPhone: `SELECT ` + accountColumns + ` FROM accounts
		 WHERE phone = ?
		 ORDER BY created_at LIMIT 1`,
	listByEmail: `SELECT ` + accountColumns + ` FROM accounts
		 WHERE email = ?
		 ORDER BY created_at`,
	listByPhone: `SELECT ` + accountColumns + ` FROM accounts
		 WHERE phone = ?
		 ORDER BY created_at`,
	findByResetToken: `SELECT ` + accountColumns + ` FROM accounts
		 WHERE reset_token = ? AND reset_expiry > ?`,
	redeemResetToken: `UPDATE accounts SET password_hash = ?, reset_token = NULL, reset_expiry = NULL
		 WHERE id = ? AND reset_token = ? AND reset_expiry > ?`,
	setResetToken: `UPDATE accounts SET reset_token = ?, reset_expiry = ?
		 WHERE id = ?`,
}

// NewMySQLRepository returns a Repository for MySQL. The DSN must carry
// parseTime=true so DATETIME columns scan into time.Time.
func NewMySQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db, q: mysqlQueries, isUniqueViolation: isMySQLDuplicate}
}

func isMySQLDuplicate(err error) bool {
	var myErr *mysql.MySQLError
	return errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry
}
