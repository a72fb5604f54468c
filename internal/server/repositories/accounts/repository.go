// Package accounts is the account store: one record per registered user,
// including the pending password-reset token.
package accounts

import (
	"context"
	"time"

	"github.com/dmitrijs2005/mediaxis/internal/identifier"
	"github.com/dmitrijs2005/mediaxis/internal/server/models"
)

// Repository persists accounts. Lookups that find nothing return
// common.ErrorNotFound; a duplicate email on Create returns
// common.ErrorAlreadyExists.
type Repository interface {
	Create(ctx context.Context, account *models.Account) (*models.Account, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	FindByIdentifier(ctx context.Context, id identifier.Identifier) (*models.Account, error)
	ListByIdentifier(ctx context.Context, id identifier.Identifier) ([]*models.Account, error)

	// FindByResetToken returns the account only when token matches and its
	// expiry is strictly after at. Wrong and expired tokens look the same.
	FindByResetToken(ctx context.Context, token string, at time.Time) (*models.Account, error)

	// RedeemResetToken replaces the password hash and clears both reset fields
	// in a single statement, but only while the account still holds token and
	// its expiry is strictly after at. Otherwise it returns common.ErrorNotFound
	// and changes nothing, so a token is redeemed at most once.
	RedeemResetToken(ctx context.Context, accountID, token, passwordHash string, at time.Time) error

	// SetResetToken overwrites any pending reset for the account.
	SetResetToken(ctx context.Context, accountID string, token string, expiry time.Time) error
}
