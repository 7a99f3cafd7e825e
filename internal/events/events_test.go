package events_test

import (
	"context"
	"os"
	"testing"
	"time"

	"gig-coordinator/internal/events"
	"gig-coordinator/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewHireEvent(t *testing.T) {
	at := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	hire := &models.Hire{ID: "h1", JobID: "j1", EmployerUID: "e1", WorkerUID: "w1", Status: models.HireStatusRejected}

	ev := events.NewHireEvent(hire, at)
	assert.Equal(t, events.HireRejected, ev.Type)
	assert.Equal(t, "h1", ev.HireID)
	assert.Equal(t, at, ev.OccurredAt)

	assert.Equal(t, events.HireProposed, events.TypeFor(models.HireStatusProposed))
	assert.Equal(t, events.HireConfirmed, events.TypeFor(models.HireStatusConfirmed))
	assert.Equal(t, events.HireCompleted, events.TypeFor(models.HireStatusCompleted))
}

func TestLogPublisher(t *testing.T) {
	p := events.NewLogPublisher(nil)
	assert.NoError(t, p.PublishHireEvent(context.Background(), events.HireEvent{Type: events.HireProposed}))
	assert.NoError(t, p.Close())
}

func TestRabbitMQPublisher_Integration(t *testing.T) {
	url := os.Getenv("TEST_RABBITMQ_URL")
	if url == "" {
		t.Skip("TEST_RABBITMQ_URL not set, skipping RabbitMQ integration test")
	}
	p, err := events.NewRabbitMQPublisher(events.RabbitMQConfig{
		URL:            url,
		Exchange:       "gig.test.hires",
		RetryAttempts:  1,
		PublishTimeout: 5 * time.Second,
	}, nil)
	require.NoError(t, err)
	defer p.Close()

	err = p.PublishHireEvent(context.Background(), events.HireEvent{Type: events.HireProposed, HireID: "h1", OccurredAt: time.Now()})
	assert.NoError(t, err)
}
