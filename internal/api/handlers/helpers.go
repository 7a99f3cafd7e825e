package handlers

import (
	"log/slog"
	"net/http"

	"gig-coordinator/internal/api/middleware"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// base is embedded by every handler.
type base struct {
	validator *validator.Validate
	logger    *slog.Logger
}

func newBase(validate *validator.Validate, logger *slog.Logger, component string) base {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = slog.Default()
	}
	return base{validator: validate, logger: logger.With(slog.String("component", component))}
}

// caller writes 401 and returns false when no identity is attached.
func (b base) caller(c *gin.Context) (string, bool) {
	uid, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return "", false
	}
	return uid, true
}

// bindJSON decodes and validates the body; on failure it writes 400.
func (b base) bindJSON(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return false
	}
	if err := b.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return false
	}
	return true
}
