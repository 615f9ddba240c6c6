package utils

import (
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/quikbite/quikbite/config"
	"github.com/quikbite/quikbite/middlewares"
)

func TestGenerateAndParseAccessToken(t *testing.T) {
	config.SecretKey = []byte("test-secret")

	userID := uuid.New()
	roles := []string{"customer"}

	token, err := GenerateAccessToken(userID, roles)
	require.NoError(t, err)

	claims := &middlewares.Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.SecretKey), nil
	})
	require.NoError(t, err)
	assert.True(t, parsed.Valid)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, roles, claims.Roles)
}

func TestGenerateTokensProducesBoth(t *testing.T) {
	config.SecretKey = []byte("test-secret")

	userID := uuid.New()
	access, refresh, err := GenerateTokens(userID, []string{"seller"})
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	assert.NotEqual(t, access, refresh)

	// Token rotation reads the user and roles back out of the refresh token.
	claims := &middlewares.Claims{}
	_, err = jwt.ParseWithClaims(refresh, claims, func(t *jwt.Token) (interface{}, error) {
		return []byte(config.SecretKey), nil
	})
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, []string{"seller"}, claims.Roles)
}

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter22")
	require.NoError(t, err)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("hunter22")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("wrong")))
}
