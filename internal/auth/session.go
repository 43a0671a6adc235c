// Package auth issues and validates the signed session tokens handed out
// by the access gate. A token is the only session state there is: no
// server-side session store exists, each protected operation revalidates
// the token it is given.
package auth

import (
	"errors"
	"time"

	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// SessionClaims carries the registered JWT claims of one authenticated
// session. The shared access code identifies no individual, so there is
// no subject; the jti only distinguishes sessions in logs.
type SessionClaims struct {
	jwt.RegisteredClaims
}

// GenerateSessionToken mints an HS256 token valid for validityDuration.
func GenerateSessionToken(secretKey []byte, validityDuration time.Duration) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, SessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(validityDuration)),
		},
	})

	tokenString, err := token.SignedString(secretKey)
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// ValidateSessionToken checks signature and expiry. Expired tokens yield
// common.ErrTokenExpired; anything else invalid yields
// common.ErrInvalidToken.
func ValidateSessionToken(tokenString string, secretKey []byte) error {
	claims := &SessionClaims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		return secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return common.ErrTokenExpired
		}
		return common.ErrInvalidToken
	}

	if !token.Valid {
		return common.ErrInvalidToken
	}

	return nil
}
