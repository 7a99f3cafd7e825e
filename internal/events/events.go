// Package events publishes hire lifecycle changes after they commit.
package events

import (
	"context"
	"log/slog"
	"time"

	"gig-coordinator/internal/models"
)

// Type is the routing key of an event.
type Type string

const (
	HireProposed  Type = "hire.proposed"
	HireConfirmed Type = "hire.confirmed"
	HireRejected  Type = "hire.rejected"
	HireCompleted Type = "hire.completed"
)

// TypeFor maps a hire status to its event type.
func TypeFor(status models.HireStatus) Type {
	switch status {
	case models.HireStatusConfirmed:
		return HireConfirmed
	case models.HireStatusRejected:
		return HireRejected
	case models.HireStatusCompleted:
		return HireCompleted
	default:
		return HireProposed
	}
}

// HireEvent is the payload published for every hire transition.
type HireEvent struct {
	Type        Type              `json:"type"`
	HireID      string            `json:"hireId"`
	JobID       string            `json:"jobId"`
	EmployerUID string            `json:"employerUid"`
	WorkerUID   string            `json:"workerUid"`
	ChatID      string            `json:"chatId,omitempty"`
	Status      models.HireStatus `json:"status"`
	OccurredAt  time.Time         `json:"occurredAt"`
}

// NewHireEvent builds the event for hire's current status.
func NewHireEvent(hire *models.Hire, at time.Time) HireEvent {
	return HireEvent{
		Type:        TypeFor(hire.Status),
		HireID:      hire.ID,
		JobID:       hire.JobID,
		EmployerUID: hire.EmployerUID,
		WorkerUID:   hire.WorkerUID,
		ChatID:      hire.ChatID,
		Status:      hire.Status,
		OccurredAt:  at,
	}
}

// Publisher delivers hire events to interested parties.
type Publisher interface {
	PublishHireEvent(ctx context.Context, event HireEvent) error
	Close() error
}

// LogPublisher only logs events. It is used when no broker is configured.
type LogPublisher struct {
	logger *slog.Logger
}

func NewLogPublisher(logger *slog.Logger) *LogPublisher {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogPublisher{logger: logger.With(slog.String("component", "events"))}
}

func (p *LogPublisher) PublishHireEvent(_ context.Context, event HireEvent) error {
	p.logger.Info("hire event",
		slog.String("type", string(event.Type)),
		slog.String("hire_id", event.HireID),
		slog.String("job_id", event.JobID),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
