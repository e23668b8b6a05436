// Package services contains the business logic of the development API
// server. UserService handles registration, login, token issuing and the
// password reset flow.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/common"
	"github.com/dmitrijs2005/assocportal/internal/server/auth"
	"github.com/dmitrijs2005/assocportal/internal/server/config"
	"github.com/dmitrijs2005/assocportal/internal/server/models"
	"github.com/dmitrijs2005/assocportal/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/assocportal/internal/server/repositories/users"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// ErrRoleNotAllowed is returned when registration asks for a role users
// cannot grant themselves.
var ErrRoleNotAllowed = errors.New("role not allowed at registration")

const resetCodeBytes = 4

// AuthResult is what login and registration hand back to the caller.
type AuthResult struct {
	AccessToken string
	User        models.PublicUser
}

type UserService struct {
	repomanager                 repomanager.RepositoryManager
	jwtSecret                   []byte
	accessTokenValidityDuration time.Duration
	resetCodeValidityDuration   time.Duration
	hashCost                    int
	now                         func() time.Time
}

func NewUserService(m repomanager.RepositoryManager, cfg *config.Config) *UserService {
	return &UserService{
		repomanager:                 m,
		jwtSecret:                   []byte(cfg.SecretKey),
		accessTokenValidityDuration: cfg.AccessTokenValidityDuration,
		resetCodeValidityDuration:   cfg.ResetCodeValidityDuration,
		hashCost:                    bcrypt.DefaultCost,
		now:                         time.Now,
	}
}

// Register creates an account and signs it in. An empty role means
// HABITANT; ADMIN cannot be requested.
func (s *UserService) Register(ctx context.Context, email, password string, role models.Role) (*AuthResult, error) {
	if role == "" {
		role = models.RoleHabitant
	}
	if role != models.RoleHabitant && role != models.RoleAssociation {
		return nil, ErrRoleNotAllowed
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        normalizeEmail(email),
		PasswordHash: hash,
		Role:         role,
	}

	user, err = s.repomanager.Users().Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return s.issue(user)
}

// Login checks the password and returns a fresh access token. Unknown
// emails and wrong passwords are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repomanager.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}

	if bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)) != nil {
		return nil, common.ErrorUnauthorized
	}

	return s.issue(user)
}

// Authenticate verifies an access token and returns the identity it
// carries.
func (s *UserService) Authenticate(token string) (*models.PublicUser, error) {
	claims, err := auth.ParseToken(token, s.jwtSecret)
	if err != nil {
		return nil, err
	}
	return &claims.User, nil
}

// Me reloads the stored profile of the authenticated user.
func (s *UserService) Me(ctx context.Context, userID string) (*models.PublicUser, error) {
	user, err := s.repomanager.Users().GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorUnauthorized
		}
		return nil, common.ErrorInternal
	}
	pub := user.Public()
	return &pub, nil
}

// ForgotPassword issues a reset code for email. For unknown addresses it
// returns an empty code and no error, so callers cannot probe accounts.
func (s *UserService) ForgotPassword(ctx context.Context, email string) (string, error) {
	repo := s.repomanager.Users()

	user, err := repo.GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return "", nil
		}
		return "", common.ErrorInternal
	}

	code, err := common.MakeRandHexString(resetCodeBytes)
	if err != nil {
		return "", common.ErrorInternal
	}

	err = repo.SaveResetCode(ctx, &models.ResetCode{
		UserID:    user.ID,
		Code:      code,
		ExpiresAt: s.now().Add(s.resetCodeValidityDuration),
	})
	if err != nil {
		return "", common.ErrorInternal
	}
	return code, nil
}

// ResetPassword consumes code and sets the new password in one unit of
// work.
func (s *UserService) ResetPassword(ctx context.Context, email, code, password string) error {
	user, err := s.repomanager.Users().GetByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidResetCode
		}
		return common.ErrorInternal
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.hashCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	return s.repomanager.WithinTx(ctx, func(ctx context.Context, repo users.Repository) error {
		if err := repo.ConsumeResetCode(ctx, user.ID, code, s.now()); err != nil {
			return err
		}
		return repo.UpdatePassword(ctx, user.ID, hash)
	})
}

func (s *UserService) issue(user *models.User) (*AuthResult, error) {
	pub := user.Public()
	token, err := auth.GenerateToken(pub, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}
	return &AuthResult{AccessToken: token, User: pub}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
