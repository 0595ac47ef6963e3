package identity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Run("creates active user with hashed password", func(t *testing.T) {
		user, err := NewUser("Ada Lovelace", "Ada@Example.com", "secret123")

		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", user.Name)
		assert.Equal(t, "ada@example.com", user.Email)
		assert.Equal(t, UserStatusActive, user.Status)
		assert.NotEqual(t, "secret123", user.PasswordHash)
		assert.True(t, user.VerifyPassword("secret123"))
		assert.False(t, user.VerifyPassword("wrong"))
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewUser("", "ada@example.com", "secret123")
		assert.Error(t, err)
	})

	t.Run("fails with invalid email", func(t *testing.T) {
		_, err := NewUser("Ada", "not-an-email", "secret123")
		assert.Error(t, err)
	})

	t.Run("fails with short password", func(t *testing.T) {
		_, err := NewUser("Ada", "ada@example.com", "abc1")
		assert.Error(t, err)
	})

	t.Run("fails with digit-free password", func(t *testing.T) {
		_, err := NewUser("Ada", "ada@example.com", "passwordonly")
		assert.Error(t, err)
	})
}

func TestUserChangePassword(t *testing.T) {
	user, err := NewUser("Ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := user.ChangePassword("wrong", "newsecret1")
		assert.Error(t, err)
		assert.True(t, user.VerifyPassword("secret123"))
	})

	t.Run("changes password with correct current one", func(t *testing.T) {
		require.NoError(t, user.ChangePassword("secret123", "newsecret1"))
		assert.True(t, user.VerifyPassword("newsecret1"))
		assert.False(t, user.VerifyPassword("secret123"))
	})
}

func TestUserLockout(t *testing.T) {
	user, err := NewUser("Ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	assert.False(t, user.RecordLoginFailure(3, time.Hour))
	assert.False(t, user.RecordLoginFailure(3, time.Hour))
	assert.True(t, user.CanLogin())

	assert.True(t, user.RecordLoginFailure(3, time.Hour))
	assert.True(t, user.IsLocked())
	assert.False(t, user.CanLogin())

	require.NoError(t, user.Unlock())
	assert.True(t, user.CanLogin())
	assert.Equal(t, 0, user.FailedAttempts)
}

func TestUserLockExpiry(t *testing.T) {
	user, err := NewUser("Ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	user.RecordLoginFailure(1, -time.Minute)

	assert.False(t, user.IsLocked())
	assert.True(t, user.CanLogin())
}

func TestUserRecordLoginSuccess(t *testing.T) {
	user, err := NewUser("Ada", "ada@example.com", "secret123")
	require.NoError(t, err)
	user.RecordLoginFailure(5, time.Hour)

	user.RecordLoginSuccess("203.0.113.7")

	assert.Equal(t, 0, user.FailedAttempts)
	assert.Equal(t, "203.0.113.7", user.LastLoginIP)
	require.NotNil(t, user.LastLoginAt)
}

func TestUserDeactivate(t *testing.T) {
	user, err := NewUser("Ada", "ada@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, user.Deactivate())
	assert.False(t, user.CanLogin())
	assert.Error(t, user.Deactivate())
}
