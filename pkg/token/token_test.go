package token

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidate(t *testing.T) {
	Configure("test-secret", 60)

	signed, err := GenerateToken("user-123")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	userID, err := ValidateToken(signed)
	require.NoError(t, err)
	assert.Equal(t, "user-123", userID)
}

func TestValidate_TamperedToken(t *testing.T) {
	Configure("test-secret", 60)

	signed, err := GenerateToken("user-123")
	require.NoError(t, err)

	_, err = ValidateToken(signed + "x")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_WrongSecret(t *testing.T) {
	Configure("secret-a", 60)
	signed, err := GenerateToken("user-123")
	require.NoError(t, err)

	Configure("secret-b", 60)
	_, err = ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_ExpiredToken(t *testing.T) {
	Configure("test-secret", 60)
	tokenTTL = -time.Minute // 签发一个已经过期的token

	signed, err := GenerateToken("user-123")
	require.NoError(t, err)

	_, err = ValidateToken(signed)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidate_Garbage(t *testing.T) {
	Configure("test-secret", 60)

	_, err := ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
