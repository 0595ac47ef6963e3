package auth

import (
	"testing"
	"time"

	"github.com/eventpass/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestJWTService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "eventpass-test",
		MaxRefreshCount:        2,
	})
}

func TestJWTServiceGenerateTokenPair(t *testing.T) {
	service := newTestJWTService()
	userID := uuid.New()

	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: userID,
		Email:  "ada@example.com",
		Name:   "Ada",
	})

	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)
	assert.Equal(t, "Bearer", pair.TokenType)

	t.Run("access token validates with claims", func(t *testing.T) {
		claims, err := service.ValidateAccessToken(pair.AccessToken)
		require.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "ada@example.com", claims.Email)
		assert.Equal(t, TokenTypeAccess, claims.TokenType)
	})

	t.Run("refresh token validates", func(t *testing.T) {
		claims, err := service.ValidateRefreshToken(pair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, TokenTypeRefresh, claims.TokenType)
	})

	t.Run("access token is rejected as refresh token", func(t *testing.T) {
		_, err := service.ValidateRefreshToken(pair.AccessToken)
		assert.Error(t, err)
	})

	t.Run("garbage token is rejected", func(t *testing.T) {
		_, err := service.ValidateAccessToken("not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestJWTServiceExpiredToken(t *testing.T) {
	service := NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-key-for-unit-tests-only",
		AccessTokenExpiration:  -time.Minute,
		RefreshTokenExpiration: time.Hour,
		Issuer:                 "eventpass-test",
		MaxRefreshCount:        2,
	})

	pair, err := service.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	_, err = service.ValidateAccessToken(pair.AccessToken)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTServiceRefreshTokenPair(t *testing.T) {
	service := newTestJWTService()
	pair, err := service.GenerateTokenPair(GenerateTokenInput{
		UserID: uuid.New(),
		Email:  "ada@example.com",
	})
	require.NoError(t, err)

	t.Run("refresh produces a new valid pair", func(t *testing.T) {
		newPair, err := service.RefreshTokenPair(pair.RefreshToken, "ada@example.com", "Ada")
		require.NoError(t, err)
		assert.NotEqual(t, pair.AccessToken, newPair.AccessToken)

		claims, err := service.ValidateRefreshToken(newPair.RefreshToken)
		require.NoError(t, err)
		assert.Equal(t, 1, claims.RefreshCount)
	})

	t.Run("refresh count limit is enforced", func(t *testing.T) {
		current := pair.RefreshToken
		var err error
		for i := 0; i < 2; i++ {
			var next *TokenPair
			next, err = service.RefreshTokenPair(current, "", "")
			require.NoError(t, err)
			current = next.RefreshToken
		}

		_, err = service.RefreshTokenPair(current, "", "")
		assert.ErrorIs(t, err, ErrMaxRefreshExceeded)
	})
}

func TestClaimsGetRemainingTTL(t *testing.T) {
	service := newTestJWTService()
	pair, err := service.GenerateTokenPair(GenerateTokenInput{UserID: uuid.New()})
	require.NoError(t, err)

	claims, err := service.ValidateAccessToken(pair.AccessToken)
	require.NoError(t, err)

	ttl := claims.GetRemainingTTL()
	assert.Greater(t, ttl, 14*time.Minute)
	assert.LessOrEqual(t, ttl, 15*time.Minute)
}
