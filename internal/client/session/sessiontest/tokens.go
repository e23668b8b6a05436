// Package sessiontest mints credential tokens shaped like the API's, for
// tests of packages that sit on top of the session store.
package sessiontest

import (
	"testing"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// Secret signs every minted token. Clients never verify it.
const Secret = "sessiontest-secret"

// User returns a fixed identity with the given id and role.
func User(id string, role models.Role) models.User {
	return models.User{
		ID:        id,
		Email:     id + "@example.org",
		Role:      role,
		CreatedAt: time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

// MintToken returns an HS256 token carrying user and expiring after ttl.
// A zero ttl produces a token without an exp claim.
func MintToken(tb testing.TB, user models.User, ttl time.Duration) string {
	tb.Helper()

	claims := jwt.MapClaims{
		"sub":  user.ID,
		"user": user,
		"iat":  time.Now().Unix(),
	}
	if ttl != 0 {
		claims["exp"] = time.Now().Add(ttl).Unix()
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(Secret))
	if err != nil {
		tb.Fatalf("mint token: %v", err)
	}
	return token
}
