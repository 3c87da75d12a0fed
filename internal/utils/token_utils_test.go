package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateAndValidateJWT(t *testing.T) {
	secret := "test-secret"
	token, err := GenerateJWT("user-1", "Budi", "CASHIER", secret, time.Hour, "pos_backend")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAndValidateJWT(token, secret)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.Subject)
	assert.Equal(t, "Budi", claims.Name)
	assert.Equal(t, "CASHIER", claims.Role)
	assert.Equal(t, "pos_backend", claims.Issuer)
}

func TestParseAndValidateJWT_WrongSecret(t *testing.T) {
	token, err := GenerateJWT("user-1", "Budi", "CASHIER", "secret-a", time.Hour, "pos_backend")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret-b")
	assert.Error(t, err)
}

func TestParseAndValidateJWT_Expired(t *testing.T) {
	token, err := GenerateJWT("user-1", "Budi", "CASHIER", "secret", -time.Minute, "pos_backend")
	require.NoError(t, err)

	_, err = ParseAndValidateJWT(token, "secret")
	assert.Error(t, err)
}

func TestCheckPasswordHash(t *testing.T) {
	hash, err := HashPassword("swordfish")
	require.NoError(t, err)
	assert.NotEqual(t, "swordfish", hash)

	assert.True(t, CheckPasswordHash("swordfish", hash))
	assert.False(t, CheckPasswordHash("Swordfish", hash))
}
