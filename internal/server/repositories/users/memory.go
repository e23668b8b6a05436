package users

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/common"
	"github.com/dmitrijs2005/assocportal/internal/server/models"
)

// MemoryRepository keeps users in process memory. It backs the server when
// no database DSN is configured.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[string]*models.User
	byEmail map[string]string
	codes   map[string]models.ResetCode
	now     func() time.Time
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[string]*models.User),
		byEmail: make(map[string]string),
		codes:   make(map[string]models.ResetCode),
		now:     time.Now,
	}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := r.byID[user.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}

	user.CreatedAt = r.now().UTC()
	stored := *user
	r.byID[user.ID] = &stored
	r.byEmail[user.Email] = user.ID
	return user, nil
}

func (r *MemoryRepository) GetByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := *r.byID[id]
	return &u, nil
}

func (r *MemoryRepository) GetByID(_ context.Context, id string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	stored, ok := r.byID[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	u := *stored
	return &u, nil
}

func (r *MemoryRepository) UpdatePassword(_ context.Context, id string, hash []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.byID[id]
	if !ok {
		return common.ErrorNotFound
	}
	stored.PasswordHash = append([]byte(nil), hash...)
	return nil
}

func (r *MemoryRepository) SaveResetCode(_ context.Context, code *models.ResetCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[code.UserID]; !ok {
		return common.ErrorNotFound
	}
	r.codes[code.UserID] = *code
	return nil
}

func (r *MemoryRepository) ConsumeResetCode(_ context.Context, userID, code string, now time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.codes[userID]
	if !ok || stored.Code != code || !now.Before(stored.ExpiresAt) {
		return common.ErrInvalidResetCode
	}
	delete(r.codes, userID)
	return nil
}
