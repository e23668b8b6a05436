package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
	"github.com/dmitrijs2005/assocportal/internal/logging"
)

// ErrIdentityMismatch is returned by Establish when the response user and the
// token's user claim disagree.
var ErrIdentityMismatch = errors.New("credential identity mismatch")

// Session is the derived, read-only view handed to consumers.
type Session struct {
	// User is nil while anonymous.
	User *models.User
	// Bootstrapping is true until the first Bootstrap call returns.
	Bootstrapping bool
}

// Authenticated reports whether an identity is held.
func (s Session) Authenticated() bool {
	return s.User != nil
}

// Store is the single source of truth for "am I logged in, and as whom".
// It is safe for concurrent use.
type Store struct {
	slot   TokenSlot
	logger logging.Logger

	// pubMu orders state changes with their notifications. It is taken
	// before mu and held until subscribers have been called.
	pubMu sync.Mutex

	mu            sync.RWMutex
	token         string
	user          *models.User
	bootstrapping bool

	subMu       sync.Mutex
	subscribers map[int]func(Session)
	nextSubID   int
}

// NewStore returns an anonymous store that reports Bootstrapping until
// Bootstrap is called.
func NewStore(slot TokenSlot, logger logging.Logger) *Store {
	return &Store{
		slot:          slot,
		logger:        logger,
		bootstrapping: true,
		subscribers:   make(map[int]func(Session)),
	}
}

// Bootstrap restores the session persisted by a previous process. An
// undecodable token is purged and the session stays anonymous; that case is
// not an error. Only slot I/O failures are returned. Bootstrapping is false
// once Bootstrap returns, whatever the outcome.
func (s *Store) Bootstrap(ctx context.Context) error {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	err := s.restoreLocked(ctx)
	s.bootstrapping = false
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snap)
	return err
}

func (s *Store) restoreLocked(ctx context.Context) error {
	s.resetLocked()

	token, err := s.slot.Load(ctx)
	if err != nil {
		return fmt.Errorf("load credential: %w", err)
	}
	if token == "" {
		return nil
	}

	claims, err := DecodeToken(token)
	if err != nil {
		s.logger.Warn(ctx, "discarding undecodable credential", "error", err)
		if err := s.slot.Delete(ctx); err != nil {
			return fmt.Errorf("purge credential: %w", err)
		}
		return nil
	}

	s.token = token
	s.user = claims.User
	s.logger.Debug(ctx, "session restored", "user_id", claims.User.ID)
	return nil
}

// Establish records a session obtained from a login or registration
// response. The identity is taken from the token, the same way Bootstrap
// restores it; a non-empty user.ID must match it. The token is persisted
// before the in-memory identity changes, so a failed write leaves the
// previous state intact.
func (s *Store) Establish(ctx context.Context, user models.User, token string) error {
	claims, err := DecodeToken(token)
	if err != nil {
		return err
	}
	if user.ID != "" && user.ID != claims.User.ID {
		return fmt.Errorf("%w: response user %q, token user %q", ErrIdentityMismatch, user.ID, claims.User.ID)
	}
	identity := *claims.User

	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	if err := s.slot.Save(ctx, token); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("persist credential: %w", err)
	}
	s.token = token
	s.user = &identity
	snap := s.snapshotLocked()
	s.mu.Unlock()

	s.logger.Info(ctx, "session established", "user_id", identity.ID, "role", string(identity.Role))
	s.publish(snap)
	return nil
}

// Clear discards the session. It always deletes the durable slot, but an
// already anonymous store notifies nobody, so repeated calls are
// indistinguishable from one.
//
// The in-memory identity is dropped even when the slot delete fails; the
// error is returned so the caller can report it.
func (s *Store) Clear(ctx context.Context) error {
	s.pubMu.Lock()
	defer s.pubMu.Unlock()

	s.mu.Lock()
	wasAuthenticated := s.token != ""
	err := s.slot.Delete(ctx)
	s.resetLocked()
	snap := s.snapshotLocked()
	s.mu.Unlock()

	if wasAuthenticated {
		s.logger.Info(ctx, "session cleared")
		s.publish(snap)
	}
	if err != nil {
		return fmt.Errorf("purge credential: %w", err)
	}
	return nil
}

// Token returns the current raw token, or "" while anonymous.
func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// Snapshot returns a copy of the current session.
func (s *Store) Snapshot() Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshotLocked()
}

// Subscribe registers fn to be called with the new session after every
// change, in the order the changes happened. fn must not call Bootstrap,
// Establish or Clear. The returned func removes the subscription.
func (s *Store) Subscribe(fn func(Session)) (unsubscribe func()) {
	s.subMu.Lock()
	id := s.nextSubID
	s.nextSubID++
	s.subscribers[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subscribers, id)
		s.subMu.Unlock()
	}
}

func (s *Store) publish(snap Session) {
	s.subMu.Lock()
	fns := make([]func(Session), 0, len(s.subscribers))
	for _, fn := range s.subscribers {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Store) resetLocked() {
	s.token = ""
	s.user = nil
}

func (s *Store) snapshotLocked() Session {
	snap := Session{Bootstrapping: s.bootstrapping}
	if s.user != nil {
		u := *s.user
		snap.User = &u
	}
	return snap
}
