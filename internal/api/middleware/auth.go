package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"gig-coordinator/internal/identity"

	"github.com/gin-gonic/gin"
)

const (
	authorizationHeader = "Authorization"
	userCtx             = "userID" // Key to store user ID in context
)

// JWTAuthMiddleware validates the bearer token and attaches its subject as
// the caller identity, both on the gin context and on the request context.
func JWTAuthMiddleware(jwtSecret string, logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(authorizationHeader)
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
			return
		}

		headerParts := strings.Split(authHeader, " ")
		if len(headerParts) != 2 || strings.ToLower(headerParts[0]) != "bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid Authorization header format"})
			return
		}

		userID, err := identity.ParseToken(jwtSecret, headerParts[1])
		if err != nil {
			logger.Debug("rejected token", slog.String("path", c.Request.URL.Path), slog.String("error", err.Error()))
			if errors.Is(err, identity.ErrTokenExpired) {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Token has expired"})
			} else {
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			}
			return
		}

		c.Set(userCtx, userID)
		c.Request = c.Request.WithContext(identity.WithUser(c.Request.Context(), userID))
		c.Next()
	}
}

// GetUserIDFromContext returns the identity set by JWTAuthMiddleware.
func GetUserIDFromContext(c *gin.Context) (string, error) {
	return identity.ContextProvider{}.EnsureSignedIn(c.Request.Context())
}
