package accounts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mediaxis/internal/common"
	"github.com/dmitrijs2005/mediaxis/internal/dbx"
	"github.com/dmitrijs2005/mediaxis/internal/identifier"
	"github.com/dmitrijs2005/mediaxis/internal/server/models"
)

const accountColumns = `id, full_name, email, phone, password_hash, reset_token, reset_expiry, created_at`

// queries holds the dialect-specific statements. Placeholder order is fixed
// per statement and documented next to each field.
type queries struct {
	insert           string // id, full_name, email, phone, password_hash, created_at
	existsByEmail    string // email
	findByEmail      string // email
	findByPhone      string // phone
	listByEmail      string // email
	listByPhone      string // phone
	findByResetToken string // token, at
	redeemResetToken string // password_hash, id, token, at
	setResetToken    string // token, expiry, id
}

// SQLRepository implements Repository on top of database/sql. The dialect
// decides placeholder syntax and how unique violations are recognised.
type SQLRepository struct {
	db                dbx.DBTX
	q                 queries
	isUniqueViolation func(error) bool
}

func (r *SQLRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx, r.q.insert,
		account.ID, account.FullName, nullString(account.Email), nullString(account.Phone),
		account.PasswordHash, account.CreatedAt)

	if err != nil {
		if r.isUniqueViolation(err) {
			return nil, common.ErrorAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return account, nil
}

func (r *SQLRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	var exists bool
	if err := r.db.QueryRowContext(ctx, r.q.existsByEmail, email).Scan(&exists); err != nil {
		return false, fmt.Errorf("db error: %w", err)
	}
	return exists, nil
}

func (r *SQLRepository) FindByIdentifier(ctx context.Context, id identifier.Identifier) (*models.Account, error) {
	query := r.q.findByPhone
	if id.Kind == identifier.KindEmail {
		query = r.q.findByEmail
	}
	return r.scanOne(r.db.QueryRowContext(ctx, query, id.Value))
}

func (r *SQLRepository) ListByIdentifier(ctx context.Context, id identifier.Identifier) ([]*models.Account, error) {
	query := r.q.listByPhone
	if id.Kind == identifier.KindEmail {
		query = r.q.listByEmail
	}

	rows, err := r.db.QueryContext(ctx, query, id.Value)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Account
	for rows.Next() {
		a, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) FindByResetToken(ctx context.Context, token string, at time.Time) (*models.Account, error) {
	return r.scanOne(r.db.QueryRowContext(ctx, r.q.findByResetToken, token, at.UTC()))
}

func (r *SQLRepository) RedeemResetToken(ctx context.Context, accountID, token, passwordHash string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, r.q.redeemResetToken, passwordHash, accountID, token, at.UTC())
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) SetResetToken(ctx context.Context, accountID string, token string, expiry time.Time) error {
	res, err := r.db.ExecContext(ctx, r.q.setResetToken, token, expiry.UTC(), accountID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return expectOneRow(res)
}

func (r *SQLRepository) scanOne(row *sql.Row) (*models.Account, error) {
	a, err := scanAccount(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	return a, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanAccount(s scanner) (*models.Account, error) {
	var (
		a           models.Account
		email       sql.NullString
		phone       sql.NullString
		resetToken  sql.NullString
		resetExpiry sql.NullTime
	)

	err := s.Scan(&a.ID, &a.FullName, &email, &phone, &a.PasswordHash, &resetToken, &resetExpiry, &a.CreatedAt)
	if err != nil {
		return nil, err
	}

	a.Email = email.String
	a.Phone = phone.String
	if resetToken.Valid && resetExpiry.Valid {
		a.ResetToken = resetToken.String
		a.ResetExpiry = resetExpiry.Time
	}

	return &a, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
