package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashAndCheckPassword(t *testing.T) {
	hash, err := HashPassword("Secret#123")
	require.NoError(t, err)
	assert.NotEqual(t, "Secret#123", hash)
	assert.True(t, CheckPasswordHash("Secret#123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
}

func TestRevocationStore(t *testing.T) {
	store := NewRevocationStore()

	assert.False(t, store.IsRevoked("missing"))

	store.Revoke("token-a", time.Now().Add(time.Hour))
	assert.True(t, store.IsRevoked("token-a"))

	// entries past their expiry no longer count as revoked
	store.Revoke("token-b", time.Now().Add(-time.Minute))
	assert.False(t, store.IsRevoked("token-b"))

	// expired entries are purged on the next insert
	store.Revoke("token-c", time.Now().Add(time.Hour))
	assert.True(t, store.IsRevoked("token-c"))
	assert.True(t, store.IsRevoked("token-a"))
}

func TestGenerateToken(t *testing.T) {
	t.Setenv("JWT_SECRET", GenerateJWTSecret())

	token, err := GenerateToken("some-user-id", true)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	t.Setenv("JWT_SECRET", "")
	_, err = GenerateToken("some-user-id", false)
	assert.Error(t, err)
}
