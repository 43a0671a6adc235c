package auth

import (
	"testing"
	"time"

	"github.com/dgaraym/cardtrack/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_RoundTrip(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateSessionToken(secret, time.Minute)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, ValidateSessionToken(token, secret))
}

func TestSessionToken_Expired(t *testing.T) {
	secret := []byte("test-secret")

	token, err := GenerateSessionToken(secret, -time.Minute)
	require.NoError(t, err)

	err = ValidateSessionToken(token, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestSessionToken_WrongSecret(t *testing.T) {
	token, err := GenerateSessionToken([]byte("one"), time.Minute)
	require.NoError(t, err)

	err = ValidateSessionToken(token, []byte("two"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestSessionToken_Garbage(t *testing.T) {
	err := ValidateSessionToken("not-a-token", []byte("secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestSessionToken_UniqueIDs(t *testing.T) {
	secret := []byte("test-secret")

	t1, err := GenerateSessionToken(secret, time.Minute)
	require.NoError(t, err)
	t2, err := GenerateSessionToken(secret, time.Minute)
	require.NoError(t, err)

	assert.NotEqual(t, t1, t2, "each session token must carry its own jti")
}
