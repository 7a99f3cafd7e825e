package services

import (
	"context"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/transport/dto"
)

// JobService defines the interface for job posting logic.
type JobService interface {
	CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error)
	GetJobByID(ctx context.Context, req *dto.GetJobByIDRequest) (*models.Job, error)
}

// JobApplicationService defines the interface for job application logic.
type JobApplicationService interface {
	ApplyToJob(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error)
}

// HireService is the hire coordinator. Every mutating method runs as one
// atomic transaction; a failed precondition leaves all records untouched.
type HireService interface {
	ProposeHire(ctx context.Context, req *dto.ProposeHireRequest) (*models.Hire, error)
	AcceptHire(ctx context.Context, req *dto.HireActionRequest) (*models.Hire, error)
	RejectHire(ctx context.Context, req *dto.HireActionRequest) (*models.Hire, error)
	CompleteHire(ctx context.Context, req *dto.HireActionRequest) (*models.Hire, error)
	GetHire(ctx context.Context, req *dto.GetHireRequest) (*models.Hire, error)
	ListProposalsForWorker(ctx context.Context, workerID string) ([]models.Hire, error)
	SubscribeProposals(ctx context.Context, workerID string, onChange func([]models.Hire), onError func(error)) (docstore.Subscription, error)
}

// ChatService defines conversation and message logic.
type ChatService interface {
	EnsureConversation(ctx context.Context, req *dto.EnsureConversationRequest) (*models.Conversation, error)
	GetConversation(ctx context.Context, conversationID, viewerID string) (*models.Conversation, error)
	AppendMessage(ctx context.Context, req *dto.AppendMessageRequest) (*models.Message, error)
	MarkOpened(ctx context.Context, req *dto.MarkOpenedRequest) error
	ListMessages(ctx context.Context, conversationID, viewerID string) ([]models.Message, error)
	ListConversations(ctx context.Context, viewerID string) ([]dto.ConversationSummary, error)
	SubscribeConversations(ctx context.Context, viewerID string, onChange func([]models.Conversation), onError func(error)) (docstore.Subscription, error)
}
