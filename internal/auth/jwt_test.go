// internal/auth/jwt_test.go
package auth

import (
	"testing"
	"time"

	"cardwise/internal/config"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newService(apiKey string, ttl time.Duration) *TokenService {
	return NewTokenService(config.Config{JWTSecret: "test-secret", JWTExpiresIn: ttl, AdminAPIKey: apiKey})
}

func TestLoginAndParse(t *testing.T) {
	s := newService("letmein", time.Hour)

	token, err := s.Login("letmein")
	require.NoError(t, err)

	sub, role, err := s.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "admin", sub)
	assert.Equal(t, RoleAdmin, role)
}

func TestLogin_Errors(t *testing.T) {
	_, err := newService("", time.Hour).Login("anything")
	assert.ErrorIs(t, err, ErrAdminDisabled)

	_, err = newService("letmein", time.Hour).Login("wrong")
	assert.ErrorIs(t, err, ErrBadAPIKey)
}

func TestParseToken_Expired(t *testing.T) {
	s := newService("k", -time.Minute)
	token, err := s.GenerateToken("admin", RoleAdmin)
	require.NoError(t, err)

	_, _, err = s.ParseToken(token)
	assert.ErrorIs(t, err, jwt.ErrTokenExpired)
}

func TestParseToken_WrongSecret(t *testing.T) {
	token, err := newService("k", time.Hour).GenerateToken("admin", RoleAdmin)
	require.NoError(t, err)

	other := NewTokenService(config.Config{JWTSecret: "other", JWTExpiresIn: time.Hour})
	_, _, err = other.ParseToken(token)
	assert.Error(t, err)
}

func TestParseToken_MissingClaims(t *testing.T) {
	raw := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})
	token, err := raw.SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, _, err = newService("k", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
