// Package models holds the entities persisted by the development API server.
package models

import "time"

type Role string

const (
	RoleHabitant    Role = "HABITANT"
	RoleAssociation Role = "ASSOCIATION"
	RoleAdmin       Role = "ADMIN"
)

type User struct {
	ID           string    `db:"id"`
	Email        string    `db:"email"`
	FullName     *string   `db:"full_name"`
	PasswordHash []byte    `db:"password_hash"`
	Role         Role      `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

// Public returns the part of u that may leave the server, both in response
// bodies and inside the access token.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		CreatedAt: u.CreatedAt,
	}
}

// PublicUser is the wire shape of an identity.
type PublicUser struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"fullName"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// ResetCode is a one-time password reset code bound to a user.
type ResetCode struct {
	UserID    string    `db:"user_id"`
	Code      string    `db:"code"`
	ExpiresAt time.Time `db:"expires_at"`
}
