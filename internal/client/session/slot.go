package session

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/assocportal/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/assocportal/internal/common"
)

// TokenSlot is the single durable location of the raw token string.
// Load returns "" when the slot is empty.
type TokenSlot interface {
	Load(ctx context.Context) (string, error)
	Save(ctx context.Context, token string) error
	Delete(ctx context.Context) error
}

// MetadataSlot keeps the token under one key of the metadata table.
type MetadataSlot struct {
	repo metadata.Repository
	key  string
}

func NewMetadataSlot(repo metadata.Repository) *MetadataSlot {
	return &MetadataSlot{repo: repo, key: common.AccessTokenMetadataKey}
}

func (s *MetadataSlot) Load(ctx context.Context) (string, error) {
	b, err := s.repo.Get(ctx, s.key)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (s *MetadataSlot) Save(ctx context.Context, token string) error {
	return s.repo.Set(ctx, s.key, []byte(token))
}

func (s *MetadataSlot) Delete(ctx context.Context) error {
	return s.repo.Delete(ctx, s.key)
}

// MemorySlot is a process-local slot. Sessions kept in it do not survive a
// restart.
type MemorySlot struct {
	mu    sync.Mutex
	token string
}

func (s *MemorySlot) Load(context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, nil
}

func (s *MemorySlot) Save(_ context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
	return nil
}

func (s *MemorySlot) Delete(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = ""
	return nil
}
