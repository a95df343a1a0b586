package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("s3cret-pass", bcrypt.MinCost)
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, VerifyPassword(hash, "s3cret-pass"))
	assert.False(t, VerifyPassword(hash, "wrong-pass"))
	assert.False(t, VerifyPassword("not-a-hash", "s3cret-pass"))
}

func TestRefreshTokenHashIsStable(t *testing.T) {
	tok, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.Len(t, tok.Raw, 96)

	// Same raw value must always hash identically; different raws must not.
	assert.Equal(t, HashRefreshRaw(tok.Raw), HashRefreshRaw(tok.Raw))
	other, err := NewRefreshToken(7)
	require.NoError(t, err)
	assert.NotEqual(t, HashRefreshRaw(tok.Raw), HashRefreshRaw(other.Raw))
}
