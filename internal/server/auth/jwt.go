// Package auth mints and verifies the HS256 access tokens issued by the
// development API server.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/assocportal/internal/common"
	"github.com/dmitrijs2005/assocportal/internal/server/models"
	"github.com/golang-jwt/jwt/v5"
)

// Claims carries the registered claims plus the identity the client shows
// without a round trip.
type Claims struct {
	jwt.RegisteredClaims
	User models.PublicUser `json:"user"`
}

// GenerateToken signs an access token for user that expires after
// validityDuration.
func GenerateToken(user models.PublicUser, secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
		User: user,
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ParseToken verifies tokenString and returns its claims. Expired tokens
// yield common.ErrTokenExpired; anything else unacceptable yields
// common.ErrInvalidToken.
func ParseToken(tokenString string, secretKey []byte) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		return secretKey, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, common.ErrTokenExpired
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidToken, err)
	}

	if !token.Valid || claims.Subject == "" || claims.Subject != claims.User.ID {
		return nil, common.ErrInvalidToken
	}

	return claims, nil
}
