package jwt_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Abdulkadar0710/Student-Dashboard-task/pkg/jwt"
)

const testSecret = "test-secret-key-for-unit-tests-only!"

func TestTokenManager_GenerateAndValidate(t *testing.T) {
	tm := jwt.NewTokenManager(testSecret, "test-issuer", 1)

	token, err := tm.GenerateToken("user-1", "admin@school.edu")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := tm.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "admin@school.edu", claims.Email)
	assert.Equal(t, "test-issuer", claims.Issuer)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_TokenIDsAreUnique(t *testing.T) {
	tm := jwt.NewTokenManager(testSecret, "test-issuer", 1)

	first, err := tm.GenerateToken("user-1", "admin@school.edu")
	assert.NoError(t, err)
	second, err := tm.GenerateToken("user-1", "admin@school.edu")
	assert.NoError(t, err)

	firstClaims, err := tm.ValidateToken(first)
	assert.NoError(t, err)
	secondClaims, err := tm.ValidateToken(second)
	assert.NoError(t, err)

	// Revocation keys on the token ID, so two logins must never share one
	assert.NotEqual(t, firstClaims.ID, secondClaims.ID)
}

func TestTokenManager_RejectsWrongSecret(t *testing.T) {
	tm := jwt.NewTokenManager(testSecret, "test-issuer", 1)
	other := jwt.NewTokenManager("another-secret-key-of-sufficient-len", "test-issuer", 1)

	token, err := tm.GenerateToken("user-1", "admin@school.edu")
	assert.NoError(t, err)

	claims, err := other.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestTokenManager_RejectsGarbage(t *testing.T) {
	tm := jwt.NewTokenManager(testSecret, "test-issuer", 1)

	claims, err := tm.ValidateToken("not-a-jwt")
	assert.ErrorIs(t, err, jwt.ErrInvalidToken)
	assert.Nil(t, claims)
}

func TestTokenManager_RejectsExpiredToken(t *testing.T) {
	// Zero TTL issues a token that is already expired
	tm := jwt.NewTokenManager(testSecret, "test-issuer", 0)

	token, err := tm.GenerateToken("user-1", "admin@school.edu")
	assert.NoError(t, err)

	claims, err := tm.ValidateToken(token)
	assert.ErrorIs(t, err, jwt.ErrExpiredToken)
	assert.Nil(t, claims)
}

func TestTimingSafeCompare(t *testing.T) {
	assert.True(t, jwt.TimingSafeCompare("secret", "secret"))
	assert.False(t, jwt.TimingSafeCompare("secret", "Secret"))
	assert.False(t, jwt.TimingSafeCompare("secret", "secret2"))
	assert.True(t, jwt.TimingSafeCompare("", ""))
}
