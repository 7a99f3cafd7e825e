package routes

import (
	"gig-coordinator/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

func RegisterNotificationRoutes(
	rg *gin.RouterGroup,
	notificationHandler handlers.NotificationHandlerInterface,
	authMiddleware gin.HandlerFunc,
) {
	notifications := rg.Group("/notifications")
	notifications.Use(authMiddleware)
	{
		notifications.GET("/stream", notificationHandler.Stream)
	}
}
