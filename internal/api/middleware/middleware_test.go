package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"gig-coordinator/internal/identity"
	"gig-coordinator/internal/ratelimit"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func newRouter(limiter ratelimit.Limiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	r := gin.New()
	r.Use(Logger(logger))
	r.GET("/me", JWTAuthMiddleware(testSecret, logger), RateLimit(limiter, "test"), func(c *gin.Context) {
		uid, err := GetUserIDFromContext(c)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"uid": uid})
	})
	return r
}

func get(r http.Handler, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestJWTAuthMiddleware(t *testing.T) {
	r := newRouter(nil)
	valid, err := identity.IssueToken(testSecret, "emp-1", time.Hour, time.Now())
	require.NoError(t, err)
	expired, err := identity.IssueToken(testSecret, "emp-1", time.Minute, time.Now().Add(-time.Hour))
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
		status int
		body   string
	}{
		{"missing header", "", http.StatusUnauthorized, "Authorization header required"},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized, "Invalid Authorization header format"},
		{"garbage token", "Bearer abc", http.StatusUnauthorized, "Invalid token"},
		{"expired token", "Bearer " + expired, http.StatusUnauthorized, "Token has expired"},
		{"valid token", "Bearer " + valid, http.StatusOK, `"uid":"emp-1"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := get(r, tt.header)
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.body)
		})
	}
}

func TestRateLimit(t *testing.T) {
	r := newRouter(ratelimit.NewMemoryLimiter(2, time.Minute))
	tok, err := identity.IssueToken(testSecret, "w-1", time.Hour, time.Now())
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, get(r, "Bearer "+tok).Code)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+tok).Code)
	assert.Equal(t, http.StatusTooManyRequests, get(r, "Bearer "+tok).Code)

	other, err := identity.IssueToken(testSecret, "w-2", time.Hour, time.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, get(r, "Bearer "+other).Code)
}
