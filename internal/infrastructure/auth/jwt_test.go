package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vastravibe/backend/internal/infrastructure/config"
)

func newTestService(expiration time.Duration) *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:                "test-secret",
		AccessTokenExpiration: expiration,
		Issuer:                "vastravibe-test",
	})
}

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := newTestService(time.Hour)
	userID := uuid.New()

	token, err := svc.GenerateAccessToken(GenerateTokenInput{
		UserID: userID,
		Name:   "Asha Nair",
		Email:  "asha@vastravibe.in",
		Role:   "admin",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, token.Token)
	assert.WithinDuration(t, time.Now().Add(time.Hour), token.ExpiresAt, 5*time.Second)

	claims, err := svc.ValidateAccessToken(token.Token)
	require.NoError(t, err)
	assert.Equal(t, userID.String(), claims.UserID)
	assert.Equal(t, "asha@vastravibe.in", claims.Email)
	assert.Equal(t, "admin", claims.Role)
	assert.Equal(t, "vastravibe-test", claims.Issuer)
}

func TestJWTService_ValidateExpired(t *testing.T) {
	svc := newTestService(-time.Minute)

	token, err := svc.GenerateAccessToken(GenerateTokenInput{
		UserID: uuid.New(),
		Role:   "staff",
	})
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(token.Token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateWrongSecret(t *testing.T) {
	svc := newTestService(time.Hour)
	other := NewJWTService(config.JWTConfig{
		Secret:                "different-secret",
		AccessTokenExpiration: time.Hour,
		Issuer:                "vastravibe-test",
	})

	token, err := svc.GenerateAccessToken(GenerateTokenInput{UserID: uuid.New(), Role: "admin"})
	require.NoError(t, err)

	_, err = other.ValidateAccessToken(token.Token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateGarbage(t *testing.T) {
	svc := newTestService(time.Hour)

	_, err := svc.ValidateAccessToken("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
