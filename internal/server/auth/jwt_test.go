package auth

import (
	"testing"
	"time"

	"github.com/olegsm/imagewall/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundtrip(t *testing.T) {
	secret := []byte("secret")

	token, err := GenerateToken("user-1", secret, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := GetUserIDFromToken(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", userID)
}

func TestExpiredToken(t *testing.T) {
	secret := []byte("secret")

	token, err := GenerateToken("user-1", secret, -time.Minute)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, secret)
	assert.ErrorIs(t, err, common.ErrTokenExpired)
}

func TestWrongSecret(t *testing.T) {
	token, err := GenerateToken("user-1", []byte("secret"), time.Hour)
	require.NoError(t, err)

	_, err = GetUserIDFromToken(token, []byte("other"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}

func TestMalformedToken(t *testing.T) {
	_, err := GetUserIDFromToken("not-a-token", []byte("secret"))
	assert.ErrorIs(t, err, common.ErrInvalidToken)
}
