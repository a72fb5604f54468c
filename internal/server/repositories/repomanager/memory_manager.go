package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/mediaxis/internal/server/repositories/accounts"
	"github.com/dmitrijs2005/mediaxis/internal/server/repositories/schema"
)

// MemoryRepositoryManager serves an in-process store. RunTx serializes
// transactions; there is no rollback, so fn must not leave partial writes
// behind on error.
type MemoryRepositoryManager struct {
	txMu  sync.Mutex
	store *accounts.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{store: accounts.NewMemoryRepository()}
}

// Store exposes the underlying repository for inspection.
func (m *MemoryRepositoryManager) Store() *accounts.MemoryRepository {
	return m.store
}

func (m *MemoryRepositoryManager) Accounts() accounts.Repository {
	return m.store
}

func (m *MemoryRepositoryManager) Schema() schema.Repository {
	return &schema.StaticRepository{Tables: []string{"accounts"}}
}

func (m *MemoryRepositoryManager) RunTx(ctx context.Context, fn func(ctx context.Context, repo accounts.Repository) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, m.store)
}

func (m *MemoryRepositoryManager) RunMigrations(ctx context.Context) error {
	return nil
}
