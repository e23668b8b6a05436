// Package models holds the wire shapes exchanged with the association
// platform API.
package models

import "time"

// Role is asserted by the server inside the credential token. The client
// never computes it.
type Role string

const (
	RoleHabitant    Role = "HABITANT"
	RoleAssociation Role = "ASSOCIATION"
	RoleAdmin       Role = "ADMIN"
)

// Valid reports whether r belongs to the closed set of known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleHabitant, RoleAssociation, RoleAdmin:
		return true
	}
	return false
}

// SignUpRole reports whether r may be requested at registration.
func (r Role) SignUpRole() bool {
	return r == RoleHabitant || r == RoleAssociation
}

// User is the authenticated identity.
type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FullName  *string   `json:"fullName"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// DisplayName prefers the full name and falls back to the email.
func (u *User) DisplayName() string {
	if u.FullName != nil && *u.FullName != "" {
		return *u.FullName
	}
	return u.Email
}

// Credentials is the login request body.
type Credentials struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Registration is the sign-up request body.
type Registration struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Role     Role   `json:"role,omitempty" validate:"omitempty,oneof=HABITANT ASSOCIATION"`
}

// PasswordResetRequest asks the server to send a reset code.
type PasswordResetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// PasswordReset sets a new password using a previously issued code.
type PasswordReset struct {
	Email    string `json:"email" validate:"required,email"`
	Code     string `json:"code" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// AuthResponse is returned by login and registration. It is the only
// legitimate source of a fresh credential token.
type AuthResponse struct {
	AccessToken string `json:"accessToken"`
	User        User   `json:"user"`
}

// ErrorResponse is the normalized error payload of non-auth failures.
type ErrorResponse struct {
	Message    string `json:"message"`
	StatusCode int    `json:"statusCode"`
}
