package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"gig-coordinator/internal/services"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors turns validator errors into a field -> message map.
func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "gte":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s", fieldName, fieldError.Param())
		default:
			errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		}
	}
	return errorsMap
}

// StatusFor maps a service error to an HTTP status.
func StatusFor(err error) int {
	switch services.KindOf(err) {
	case services.KindNotFound:
		return http.StatusNotFound
	case services.KindUnauthorized:
		return http.StatusForbidden
	case services.KindInvalidState:
		return http.StatusConflict
	case services.KindValidation:
		return http.StatusBadRequest
	case services.KindNotSignedIn:
		return http.StatusUnauthorized
	case services.KindIndexUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the mapped status. Internal errors are logged and hidden.
func respondError(c *gin.Context, logger *slog.Logger, err error, operation string) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("request failed",
			slog.String("operation", operation),
			slog.String("error", err.Error()),
		)
		c.JSON(status, gin.H{"error": "Failed to " + operation})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "kind": services.KindOf(err)})
}
