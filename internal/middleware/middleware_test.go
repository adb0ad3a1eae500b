// internal/middleware/middleware_test.go
package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"cardwise/internal/auth"
	"cardwise/internal/config"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRouter(ts *auth.TokenService) *gin.Engine {
	r := gin.New()
	r.Use(RequestID(), Observe())
	r.GET("/open", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/admin", NewAuthMiddleware(ts).RequireRole(auth.RoleAdmin), func(c *gin.Context) {
		c.String(http.StatusOK, c.GetString("subject"))
	})
	return r
}

func tokenService() *auth.TokenService {
	return auth.NewTokenService(config.Config{JWTSecret: "s", JWTExpiresIn: time.Hour, AdminAPIKey: "key"})
}

func TestRequestID_GeneratedAndEchoed(t *testing.T) {
	r := setupRouter(tokenService())

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/open", nil))
	_, err := uuid.Parse(w.Header().Get(RequestIDHeader))
	assert.NoError(t, err)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	r.ServeHTTP(w, req)
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestRequireRole(t *testing.T) {
	ts := tokenService()
	r := setupRouter(ts)

	adminToken, err := ts.Login("key")
	require.NoError(t, err)
	userToken, err := ts.GenerateToken("bob", "user")
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
		{"wrong role", "Bearer " + userToken, http.StatusForbidden},
		{"admin", "Bearer " + adminToken, http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
