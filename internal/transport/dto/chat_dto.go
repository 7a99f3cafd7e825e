package dto

import (
	"time"

	"gig-coordinator/internal/models"
)

// EnsureConversationRequest opens (or returns) the canonical thread for a pair.
type EnsureConversationRequest struct {
	EmployerUID string `json:"employerUid" validate:"required"`
	WorkerUID   string `json:"workerUid" validate:"required"`
	JobID       string `json:"jobId,omitempty"`
	RequesterID string `json:"-"` // Set from user context
}

type AppendMessageRequest struct {
	ConversationID string `json:"-"` // From path
	SenderID       string `json:"-"` // Set from user context
	Text           string `json:"text"`
}

type MarkOpenedRequest struct {
	ConversationID string      `json:"-"`
	Role           models.Role `json:"-"`
}

// ConversationSummary is one row of the grouped conversation list.
type ConversationSummary struct {
	ID             string      `json:"id"`
	CounterpartUID string      `json:"counterpartUid"`
	Role           models.Role `json:"role"`
	LastMessage    string      `json:"lastMessage,omitempty"`
	LastSenderID   string      `json:"lastSenderId,omitempty"`
	LastMessageAt  *time.Time  `json:"lastMessageAt,omitempty"`
	Unread         bool        `json:"unread"`
}
