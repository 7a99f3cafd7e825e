package middleware

import (
	"net/http"

	"gig-coordinator/internal/ratelimit"

	"github.com/gin-gonic/gin"
)

// RateLimit rejects the request with 429 once the caller's window is full.
// It must run after JWTAuthMiddleware; anonymous requests pass through.
func RateLimit(limiter ratelimit.Limiter, scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		uid, ok := c.Get(userCtx)
		key, _ := uid.(string)
		if !ok || key == "" {
			c.Next()
			return
		}
		if !limiter.Allow(c.Request.Context(), scope+":"+key) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "Too many requests"})
			return
		}
		c.Next()
	}
}
