package security

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	manager := NewTokenManager("test-secret", 15, 60*24)

	access, err := manager.GenerateAccessToken(7, "ann@test.com")
	assert.NoError(t, err)
	assert.NotEmpty(t, access)

	claims, err := manager.ValidateToken(access)
	assert.NoError(t, err)
	assert.Equal(t, int32(7), claims.UserID)
	assert.Equal(t, "ann@test.com", claims.Email)
	assert.Equal(t, TokenTypeAccess, claims.Type)
}

func TestTokenManager_RefreshTokenType(t *testing.T) {
	manager := NewTokenManager("test-secret", 15, 60*24)

	refresh, err := manager.GenerateRefreshToken(7, "ann@test.com")
	assert.NoError(t, err)

	claims, err := manager.ValidateToken(refresh)
	assert.NoError(t, err)
	assert.Equal(t, TokenTypeRefresh, claims.Type)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	issuer := NewTokenManager("secret-a", 15, 60)
	verifier := NewTokenManager("secret-b", 15, 60)

	token, err := issuer.GenerateAccessToken(7, "ann@test.com")
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_RejectsExpired(t *testing.T) {
	manager := NewTokenManager("test-secret", -1, -1)

	token, err := manager.GenerateAccessToken(7, "ann@test.com")
	assert.NoError(t, err)

	_, err = manager.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", 15, 60)

	_, err := manager.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
