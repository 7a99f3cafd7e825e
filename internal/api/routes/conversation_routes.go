package routes

import (
	"gig-coordinator/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterConversationRoutes registers the chat endpoints. sendLimit guards
// message sends only.
func RegisterConversationRoutes(
	rg *gin.RouterGroup,
	convHandler handlers.ConversationHandlerInterface,
	authMiddleware gin.HandlerFunc,
	sendLimit gin.HandlerFunc,
) {
	convs := rg.Group("/conversations")
	convs.Use(authMiddleware)
	{
		convs.POST("", convHandler.EnsureConversation)
		convs.GET("", convHandler.ListConversations)
		convs.GET("/:id/messages", convHandler.ListMessages)
		convs.POST("/:id/messages", sendLimit, convHandler.AppendMessage)
		convs.PATCH("/:id/opened", convHandler.MarkOpened)
	}
}
