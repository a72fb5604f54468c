// Package services contains server-side business logic. This file implements
// AccountService: registration, credential checks, and the password reset
// flow (email token or phone OTP).
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/mediaxis/internal/common"
	"github.com/dmitrijs2005/mediaxis/internal/cryptox"
	"github.com/dmitrijs2005/mediaxis/internal/identifier"
	"github.com/dmitrijs2005/mediaxis/internal/logging"
	"github.com/dmitrijs2005/mediaxis/internal/server/config"
	"github.com/dmitrijs2005/mediaxis/internal/server/models"
	"github.com/dmitrijs2005/mediaxis/internal/server/notify"
	"github.com/dmitrijs2005/mediaxis/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/mediaxis/internal/server/repositories/repomanager"
)

const (
	resetTokenBytes = 32
	otpDigits       = 6

	welcomeSubject = "Welcome to MediAxis"
	welcomeBody    = "Welcome to MediAxis! Glad to have you onboard."
	resetSubject   = "Password Reset - MediAxis"
	resetBodyFmt   = "Click this link to reset your MediAxis password:\n\n%s\n\n(Link valid for %s.)"
)

// RegisterInput carries the signup form. Phone is optional.
type RegisterInput struct {
	FullName string
	Email    string
	Phone    string
	Password string
}

// AccountView is what a successful authentication reveals about an account.
type AccountView struct {
	ID          string
	DisplayName string
}

// ResetResult describes what RequestReset did. OTP is set only for phone
// identifiers; it is never stored and cannot be redeemed.
type ResetResult struct {
	Kind        identifier.Kind
	Destination string
	OTP         string
}

type AccountService struct {
	repomanager repomanager.RepositoryManager
	notifier    notify.Notifier
	logger      logging.Logger

	resetTokenTTL time.Duration
	resetBaseURL  string

	now func() time.Time
}

// NewAccountService constructs an AccountService using the repositories,
// outbound notifier, and server config.
func NewAccountService(m repomanager.RepositoryManager, n notify.Notifier, logger logging.Logger, cfg *config.Config) *AccountService {
	return &AccountService{
		repomanager:   m,
		notifier:      n,
		logger:        logger.With("module", "accounts"),
		resetTokenTTL: cfg.ResetTokenTTL,
		resetBaseURL:  cfg.ResetBaseURL,
		now:           time.Now,
	}
}

// Register creates an account. The email check and the insert are separate
// statements; the unique index still rejects a concurrent duplicate.
func (s *AccountService) Register(ctx context.Context, in RegisterInput) (*models.Account, error) {
	if in.FullName == "" || in.Email == "" || in.Password == "" {
		return nil, common.ErrorValidation
	}

	repo := s.repomanager.Accounts()

	exists, err := repo.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	if exists {
		return nil, common.ErrorAlreadyExists
	}

	hash, err := cryptox.HashPassword(in.Password)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	a, err := repo.Create(ctx, &models.Account{
		FullName:     in.FullName,
		Email:        in.Email,
		Phone:        in.Phone,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "account registered", "account_id", a.ID)
	s.notify(ctx, a.Email, welcomeSubject, welcomeBody)

	return a, nil
}

// Authenticate checks password against every account sharing the identifier.
// Unknown identifiers and wrong passwords both yield ErrorInvalidCredentials.
func (s *AccountService) Authenticate(ctx context.Context, rawID, password string) (*AccountView, error) {
	if rawID == "" || password == "" {
		return nil, common.ErrorValidation
	}

	candidates, err := s.repomanager.Accounts().ListByIdentifier(ctx, identifier.Parse(rawID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	for _, a := range candidates {
		err := cryptox.ComparePassword(a.PasswordHash, password)
		if err == nil {
			return &AccountView{ID: a.ID, DisplayName: a.DisplayName()}, nil
		}
		if !errors.Is(err, cryptox.ErrMismatch) {
			s.logger.Warn(ctx, "stored password hash unreadable", "account_id", a.ID, "error", err)
		}
	}

	return nil, common.ErrorInvalidCredentials
}

// RequestReset starts a password reset. Email identifiers get a fresh token
// (replacing any pending one) and a link by mail. Phone identifiers get a
// 6-digit OTP that is only logged and returned; OTP delivery and redemption
// are not implemented.
func (s *AccountService) RequestReset(ctx context.Context, rawID string) (*ResetResult, error) {
	if rawID == "" {
		return nil, common.ErrorValidation
	}

	id := identifier.Parse(rawID)
	repo := s.repomanager.Accounts()

	a, err := repo.FindByIdentifier(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	if id.Kind == identifier.KindPhone {
		otp, err := common.MakeNumericCode(otpDigits)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
		}
		s.logger.Info(ctx, "otp generated", "phone", id.Value, "otp", otp)
		return &ResetResult{Kind: id.Kind, Destination: id.Value, OTP: otp}, nil
	}

	token, err := common.MakeRandURLSafeString(resetTokenBytes)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	expiry := s.now().Add(s.resetTokenTTL)

	if err := repo.SetResetToken(ctx, a.ID, token, expiry); err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "password reset issued", "account_id", a.ID, "expires_at", expiry)
	s.notify(ctx, id.Value, resetSubject, fmt.Sprintf(resetBodyFmt, s.resetBaseURL+token, s.resetTokenTTL))

	return &ResetResult{Kind: id.Kind, Destination: id.Value}, nil
}

// ValidateResetToken reports whether token is pending and unexpired. It never
// changes state.
func (s *AccountService) ValidateResetToken(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	_, err := s.repomanager.Accounts().FindByResetToken(ctx, token, s.now())
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return true, nil
}

// ConsumeReset sets a new password for the account holding token and clears
// the token. The update is conditional on the token still being live, so of
// two concurrent redemptions only one changes the row.
func (s *AccountService) ConsumeReset(ctx context.Context, token, newPassword string) error {
	if token == "" || newPassword == "" {
		return common.ErrorValidation
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	var accountID string
	at := s.now()
	err = s.repomanager.RunTx(ctx, func(ctx context.Context, repo accounts.Repository) error {
		a, err := repo.FindByResetToken(ctx, token, at)
		if err != nil {
			return err
		}
		accountID = a.ID
		return repo.RedeemResetToken(ctx, a.ID, token, hash, at)
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrorNotFound
		}
		return fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "password reset completed", "account_id", accountID)
	return nil
}

// ListCollections returns the names of the tables in the connected database.
func (s *AccountService) ListCollections(ctx context.Context) ([]string, error) {
	tables, err := s.repomanager.Schema().ListTables(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return tables, nil
}

func (s *AccountService) notify(ctx context.Context, to, subject, body string) {
	if to == "" {
		return
	}
	if err := s.notifier.Send(ctx, to, subject, body); err != nil {
		s.logger.Error(ctx, "notification failed", "to", to, "subject", subject, "error", err)
	}
}
