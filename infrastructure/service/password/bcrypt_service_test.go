package password

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBcryptPasswordService(t *testing.T) {
	service := NewBcryptPasswordService(4)

	t.Run("hash and verify", func(t *testing.T) {
		hash, err := service.HashPassword("secret123")
		require.NoError(t, err)
		require.NotEqual(t, "secret123", hash)

		ok, err := service.VerifyPassword("secret123", hash)
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("wrong password is a clean mismatch", func(t *testing.T) {
		hash, err := service.HashPassword("secret123")
		require.NoError(t, err)

		ok, err := service.VerifyPassword("wrong", hash)
		require.NoError(t, err)
		assert.False(t, ok)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		_, err := service.HashPassword("")
		assert.Error(t, err)
	})

	t.Run("garbage hash is an error", func(t *testing.T) {
		_, err := service.VerifyPassword("secret123", "not-a-bcrypt-hash")
		assert.Error(t, err)
	})
}
