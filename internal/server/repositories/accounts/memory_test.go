package accounts

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/mediaxis/internal/common"
	"github.com/dmitrijs2005/mediaxis/internal/identifier"
	"github.com/dmitrijs2005/mediaxis/internal/server/models"
)

func TestMemoryRepository_CreateAndFind(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a, err := repo.Create(ctx, &models.Account{FullName: "Alice", Email: "a@x.com", Phone: "+1", PasswordHash: "h"})
	require.NoError(t, err)
	require.NotEmpty(t, a.ID)

	_, err = repo.Create(ctx, &models.Account{FullName: "Other", Email: "a@x.com", PasswordHash: "h2"})
	require.ErrorIs(t, err, common.ErrorAlreadyExists)

	exists, err := repo.ExistsByEmail(ctx, "a@x.com")
	require.NoError(t, err)
	assert.True(t, exists)

	byEmail, err := repo.FindByIdentifier(ctx, identifier.Parse("a@x.com"))
	require.NoError(t, err)
	assert.Equal(t, a.ID, byEmail.ID)

	byPhone, err := repo.FindByIdentifier(ctx, identifier.Parse("+1"))
	require.NoError(t, err)
	assert.Equal(t, a.ID, byPhone.ID)

	_, err = repo.FindByIdentifier(ctx, identifier.Parse("nobody@x.com"))
	require.ErrorIs(t, err, common.ErrorNotFound)
}

func TestMemoryRepository_AccountsWithoutEmailDoNotCollide(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	_, err := repo.Create(ctx, &models.Account{FullName: "P1", Phone: "+1", PasswordHash: "h"})
	require.NoError(t, err)
	_, err = repo.Create(ctx, &models.Account{FullName: "P2", Phone: "+1", PasswordHash: "h"})
	require.NoError(t, err)

	list, err := repo.ListByIdentifier(ctx, identifier.Parse("+1"))
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestMemoryRepository_ResetLifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)

	a, err := repo.Create(ctx, &models.Account{FullName: "Alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	require.NoError(t, repo.SetResetToken(ctx, a.ID, "t1", now.Add(time.Hour)))
	require.NoError(t, repo.SetResetToken(ctx, a.ID, "t2", now.Add(time.Hour)))

	_, err = repo.FindByResetToken(ctx, "t1", now)
	require.ErrorIs(t, err, common.ErrorNotFound, "re-issue overwrites the old token")

	got, err := repo.FindByResetToken(ctx, "t2", now)
	require.NoError(t, err)
	assert.Equal(t, a.ID, got.ID)

	_, err = repo.FindByResetToken(ctx, "t2", now.Add(time.Hour))
	require.ErrorIs(t, err, common.ErrorNotFound, "expired at the expiry instant")

	require.ErrorIs(t, repo.RedeemResetToken(ctx, a.ID, "t1", "h2", now), common.ErrorNotFound, "stale token")
	require.ErrorIs(t, repo.RedeemResetToken(ctx, a.ID, "t2", "h2", now.Add(time.Hour)), common.ErrorNotFound, "expired token")

	require.NoError(t, repo.RedeemResetToken(ctx, a.ID, "t2", "h2", now))
	stored, ok := repo.Get(a.ID)
	require.True(t, ok)
	assert.Equal(t, "h2", stored.PasswordHash)
	assert.False(t, stored.HasPendingReset())

	require.ErrorIs(t, repo.RedeemResetToken(ctx, a.ID, "t2", "h3", now), common.ErrorNotFound, "token is single use")
	stored, _ = repo.Get(a.ID)
	assert.Equal(t, "h2", stored.PasswordHash)

	require.ErrorIs(t, repo.RedeemResetToken(ctx, "ghost", "x", "x", now), common.ErrorNotFound)
	require.ErrorIs(t, repo.SetResetToken(ctx, "ghost", "x", now), common.ErrorNotFound)
}

func TestMemoryRepository_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	a, err := repo.Create(ctx, &models.Account{FullName: "Alice", Email: "a@x.com", PasswordHash: "h"})
	require.NoError(t, err)

	found, err := repo.FindByIdentifier(ctx, identifier.Parse("a@x.com"))
	require.NoError(t, err)
	found.PasswordHash = "tampered"

	stored, _ := repo.Get(a.ID)
	assert.Equal(t, "h", stored.PasswordHash)
	assert.Len(t, repo.All(), 1)
}
