package storage

import (
	"context"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
)

// Collection names.
const (
	CollectionJobs          = "jobs"
	CollectionApplications  = "applications"
	CollectionHires         = "hires"
	CollectionConversations = "chats"
	CollectionMessages      = "messages"
)

// JobRepository defines job document access.
type JobRepository interface {
	WithTx(tx docstore.Tx) JobRepository
	GetByID(ctx context.Context, id string) (*models.Job, error)
	Create(ctx context.Context, job *models.Job) error
	// SetHireState mirrors the active hire onto the job.
	SetHireState(ctx context.Context, id string, status models.JobHireStatus, activeHireID *string, at time.Time) error
	SetOwner(ctx context.Context, id, ownerUID string) error
	AddApplicant(ctx context.Context, job *models.Job, applicantUID string, at time.Time) error
	// ByField queries jobs where field equals value. Used for legacy owner aliases.
	ByField(field, value string) docstore.Query
}

// ApplicationRepository defines application document access.
type ApplicationRepository interface {
	WithTx(tx docstore.Tx) ApplicationRepository
	GetByID(ctx context.Context, id string) (*models.Application, error)
	Create(ctx context.Context, app *models.Application) error
	UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, at time.Time) error
	ListByJob(ctx context.Context, jobID string) ([]models.Application, error)
}

// HireRepository defines hire document access.
type HireRepository interface {
	WithTx(tx docstore.Tx) HireRepository
	GetByID(ctx context.Context, id string) (*models.Hire, error)
	Create(ctx context.Context, hire *models.Hire) error
	UpdateStatus(ctx context.Context, id string, status models.HireStatus, at time.Time) error
	// ProposalsFor is the worker's pending-offer query, newest first.
	ProposalsFor(workerUID string) docstore.Query
	ListProposals(ctx context.Context, workerUID string) ([]models.Hire, error)
}

// ConversationRepository defines conversation document access.
type ConversationRepository interface {
	WithTx(tx docstore.Tx) ConversationRepository
	GetByID(ctx context.Context, id string) (*models.Conversation, error)
	Create(ctx context.Context, conv *models.Conversation) error
	UpdateLastMessage(ctx context.Context, id string, msg *models.Message) error
	MarkOpened(ctx context.Context, id string, role models.Role, at time.Time) error
	// ByParticipant is the query for conversations where viewer plays role.
	ByParticipant(role models.Role, uid string) docstore.Query
	ListForParticipant(ctx context.Context, uid string) ([]models.Conversation, error)
}

// MessageRepository defines message document access. Messages are never updated.
type MessageRepository interface {
	WithTx(tx docstore.Tx) MessageRepository
	Create(ctx context.Context, msg *models.Message) error
	ListByConversation(ctx context.Context, conversationID string) ([]models.Message, error)
}
