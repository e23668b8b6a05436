package session

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/client/models"
	"github.com/golang-jwt/jwt/v5"
)

// ErrMalformedToken is returned when a token cannot be decoded into an
// identity.
var ErrMalformedToken = errors.New("malformed credential token")

// Claims is the payload the API embeds in its access tokens.
type Claims struct {
	jwt.RegisteredClaims
	User *models.User `json:"user"`
}

// Expired reports whether the embedded expiry lies at or before now.
// Tokens without an expiry never expire locally.
func (c *Claims) Expired(now time.Time) bool {
	if c.ExpiresAt == nil {
		return false
	}
	return !now.Before(c.ExpiresAt.Time)
}

// DecodeToken extracts the claims from token without verifying its
// signature.
func DecodeToken(token string) (*Claims, error) {
	if strings.TrimSpace(token) == "" {
		return nil, ErrMalformedToken
	}

	parsed, _, err := jwt.NewParser().ParseUnverified(token, &Claims{})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || claims.User == nil {
		return nil, fmt.Errorf("%w: no user claim", ErrMalformedToken)
	}
	if claims.User.ID == "" {
		return nil, fmt.Errorf("%w: user claim without id", ErrMalformedToken)
	}
	if !claims.User.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", ErrMalformedToken, claims.User.Role)
	}

	return claims, nil
}
