// internal/auth/jwt.go
package auth

import (
	"cardwise/internal/config"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const RoleAdmin = "admin"

var (
	ErrInvalidToken  = errors.New("invalid token claims")
	ErrAdminDisabled = errors.New("admin API key is not configured")
	ErrBadAPIKey     = errors.New("invalid api key")
)

type TokenService struct {
	secretKey   []byte
	expiresIn   time.Duration
	adminAPIKey string
}

func NewTokenService(cfg config.Config) *TokenService {
	return &TokenService{
		secretKey:   []byte(cfg.JWTSecret),
		expiresIn:   cfg.JWTExpiresIn,
		adminAPIKey: cfg.AdminAPIKey,
	}
}

// Login обменивает API-ключ администратора на токен
func (s *TokenService) Login(apiKey string) (string, error) {
	if s.adminAPIKey == "" {
		return "", ErrAdminDisabled
	}
	if subtle.ConstantTimeCompare([]byte(apiKey), []byte(s.adminAPIKey)) != 1 {
		return "", ErrBadAPIKey
	}
	return s.GenerateToken("admin", RoleAdmin)
}

// Генерация токена
func (s *TokenService) GenerateToken(subject, role string) (string, error) {
	expTime := time.Now().Add(s.expiresIn)
	claims := jwt.MapClaims{
		"sub":  subject,
		"role": role,
		"exp":  expTime.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenStr, err := token.SignedString(s.secretKey)
	if err == nil {
		slog.Info("JWT generated", "sub", subject, "role", role, "expires_at", expTime.Format("2006-01-02 15:04:05"))
	}
	return tokenStr, err
}

// Парсинг токена
func (s *TokenService) ParseToken(tokenStr string) (subject, role string, err error) {
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secretKey, nil
	})
	if err != nil {
		return "", "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", "", ErrInvalidToken
	}
	subject, _ = claims["sub"].(string)
	role, _ = claims["role"].(string)
	if subject == "" || role == "" {
		return "", "", ErrInvalidToken
	}

	slog.Debug("JWT parsed successfully", "sub", subject, "role", role)
	return subject, role, nil
}
