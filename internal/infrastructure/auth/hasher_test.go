package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"warden/internal/shared/config"
)

func TestBcryptPasswordHasher(t *testing.T) {
	h := NewBcryptPasswordHasher(bcrypt.MinCost)

	hash, err := h.Hash("correct horse")
	require.NoError(t, err)
	assert.NotEqual(t, "correct horse", hash)

	assert.NoError(t, h.Verify("correct horse", hash))
	assert.EqualError(t, h.Verify("wrong horse", hash), "password verification failed")
	assert.EqualError(t, h.Verify("correct horse", "not-a-hash"), "password verification failed")

	assert.False(t, h.NeedsRehash(hash))
	assert.True(t, NewBcryptPasswordHasher(bcrypt.MinCost+1).NeedsRehash(hash))
	assert.True(t, h.NeedsRehash("garbage"))
}

func TestNewPasswordHasherClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(config.PasswordConfig{BcryptCost: 0}).Cost())
	assert.Equal(t, bcrypt.DefaultCost, NewPasswordHasher(config.PasswordConfig{BcryptCost: 99}).Cost())
	assert.Equal(t, 12, NewPasswordHasher(config.PasswordConfig{BcryptCost: 12}).Cost())
}
