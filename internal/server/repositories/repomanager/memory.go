package repomanager

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/assocportal/internal/server/repositories/users"
)

// MemoryRepositoryManager serializes units of work instead of rolling them
// back; a failed unit keeps the writes it made before failing.
type MemoryRepositoryManager struct {
	mu    sync.Mutex
	users *users.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	return &MemoryRepositoryManager{users: users.NewMemoryRepository()}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error {
	return nil
}

func (m *MemoryRepositoryManager) Users() users.Repository {
	return m.users
}

func (m *MemoryRepositoryManager) WithinTx(ctx context.Context, fn TxFunc) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn(ctx, m.users)
}

func (m *MemoryRepositoryManager) Close() error {
	return nil
}
