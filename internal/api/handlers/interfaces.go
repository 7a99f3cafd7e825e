package handlers

import "github.com/gin-gonic/gin"

// JobHandlerInterface defines the methods needed by the job routes.
type JobHandlerInterface interface {
	CreateJob(c *gin.Context)
	GetJobByID(c *gin.Context)
}

// JobApplicationHandlerInterface defines the methods needed by the application routes.
type JobApplicationHandlerInterface interface {
	ApplyToJob(c *gin.Context)
}

// HireHandlerInterface defines the methods needed by the hire routes.
type HireHandlerInterface interface {
	ProposeHire(c *gin.Context)
	AcceptHire(c *gin.Context)
	RejectHire(c *gin.Context)
	CompleteHire(c *gin.Context)
	GetHire(c *gin.Context)
	ListProposals(c *gin.Context)
}

// ConversationHandlerInterface defines the methods needed by the chat routes.
type ConversationHandlerInterface interface {
	EnsureConversation(c *gin.Context)
	ListConversations(c *gin.Context)
	ListMessages(c *gin.Context)
	AppendMessage(c *gin.Context)
	MarkOpened(c *gin.Context)
}

// NotificationHandlerInterface defines the notification stream.
type NotificationHandlerInterface interface {
	Stream(c *gin.Context)
}

var (
	_ JobHandlerInterface            = (*JobHandler)(nil)
	_ JobApplicationHandlerInterface = (*JobApplicationHandler)(nil)
	_ HireHandlerInterface           = (*HireHandler)(nil)
	_ ConversationHandlerInterface   = (*ConversationHandler)(nil)
	_ NotificationHandlerInterface   = (*NotificationHandler)(nil)
)
