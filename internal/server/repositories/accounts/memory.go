package accounts

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/mediaxis/internal/common"
	"github.com/dmitrijs2005/mediaxis/internal/identifier"
	"github.com/dmitrijs2005/mediaxis/internal/server/models"
)

// MemoryRepository keeps accounts in a map. It enforces the same constraints
// as the SQL schema (unique email, unique reset token) and hands out copies so
// callers cannot mutate stored records.
type MemoryRepository struct {
	mu       sync.RWMutex
	accounts map[string]*models.Account
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{accounts: make(map[string]*models.Account)}
}

func (r *MemoryRepository) Create(ctx context.Context, account *models.Account) (*models.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if account.Email != "" {
		for _, a := range r.accounts {
			if a.Email == account.Email {
				return nil, common.ErrorAlreadyExists
			}
		}
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if account.CreatedAt.IsZero() {
		account.CreatedAt = time.Now().UTC()
	}
	account.ResetToken = ""
	account.ResetExpiry = time.Time{}

	stored := *account
	r.accounts[stored.ID] = &stored

	return account, nil
}

func (r *MemoryRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *MemoryRepository) FindByIdentifier(ctx context.Context, id identifier.Identifier) (*models.Account, error) {
	list, _ := r.ListByIdentifier(ctx, id)
	if len(list) == 0 {
		return nil, common.ErrorNotFound
	}
	return list[0], nil
}

func (r *MemoryRepository) ListByIdentifier(ctx context.Context, id identifier.Identifier) ([]*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var result []*models.Account
	for _, a := range r.accounts {
		field := a.Phone
		if id.Kind == identifier.KindEmail {
			field = a.Email
		}
		if field != "" && field == id.Value {
			c := *a
			result = append(result, &c)
		}
	}

	sort.Slice(result, func(i, j int) bool { return result[i].CreatedAt.Before(result[j].CreatedAt) })

	return result, nil
}

func (r *MemoryRepository) FindByResetToken(ctx context.Context, token string, at time.Time) (*models.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, a := range r.accounts {
		if a.ResetValidAt(token, at) {
			c := *a
			return &c, nil
		}
	}
	return nil, common.ErrorNotFound
}

func (r *MemoryRepository) RedeemResetToken(ctx context.Context, accountID, token, passwordHash string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[accountID]
	if !ok || !a.ResetValidAt(token, at) {
		return common.ErrorNotFound
	}
	a.PasswordHash = passwordHash
	a.ResetToken = ""
	a.ResetExpiry = time.Time{}
	return nil
}

func (r *MemoryRepository) SetResetToken(ctx context.Context, accountID string, token string, expiry time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[accountID]
	if !ok {
		return common.ErrorNotFound
	}
	for id, other := range r.accounts {
		if id != accountID && other.ResetToken == token {
			return common.ErrorAlreadyExists
		}
	}
	a.ResetToken = token
	a.ResetExpiry = expiry
	return nil
}

// Get returns a copy of the stored account by ID.
func (r *MemoryRepository) Get(accountID string) (*models.Account, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	a, ok := r.accounts[accountID]
	if !ok {
		return nil, false
	}
	c := *a
	return &c, true
}

// All returns copies of every stored account.
func (r *MemoryRepository) All() []*models.Account {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*models.Account, 0, len(r.accounts))
	for _, a := range r.accounts {
		c := *a
		result = append(result, &c)
	}
	return result
}
