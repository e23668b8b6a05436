// Package users persists accounts and their password reset codes.
package users

import (
	"context"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/server/models"
)

// Repository is implemented by the Postgres and in-memory stores.
//
// Lookups of a missing user return common.ErrorNotFound, a duplicate email
// on Create returns common.ErrorAlreadyExists and a reset code that is
// unknown, mismatched or expired returns common.ErrInvalidResetCode.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	UpdatePassword(ctx context.Context, id string, hash []byte) error
	SaveResetCode(ctx context.Context, code *models.ResetCode) error
	ConsumeResetCode(ctx context.Context, userID, code string, now time.Time) error
}
