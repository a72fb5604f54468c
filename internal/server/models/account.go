package models

import "time"

// Account is a registered user together with its credential and any pending
// password reset. ResetToken is empty and ResetExpiry is zero when no reset is
// pending; the two are always set or cleared together.
type Account struct {
	ID           string
	FullName     string
	Email        string
	Phone        string
	PasswordHash string
	ResetToken   string
	ResetExpiry  time.Time
	CreatedAt    time.Time
}

// HasPendingReset reports whether a reset token is stored, regardless of expiry.
func (a *Account) HasPendingReset() bool {
	return a.ResetToken != "" && !a.ResetExpiry.IsZero()
}

// ResetValidAt reports whether token matches the pending reset and is still
// live at t. Expiry is exclusive: at t == ResetExpiry the token is rejected.
func (a *Account) ResetValidAt(token string, t time.Time) bool {
	return a.HasPendingReset() && a.ResetToken == token && a.ResetExpiry.After(t)
}

// DisplayName is the full name, or the email when no name is stored.
func (a *Account) DisplayName() string {
	if a.FullName != "" {
		return a.FullName
	}
	return a.Email
}
