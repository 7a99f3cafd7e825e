package services_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/docstore/memory"
	"gig-coordinator/internal/events"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/ownership"
	"gig-coordinator/internal/services"
	"gig-coordinator/internal/storage"
	"gig-coordinator/internal/transport/dto"

	"github.com/stretchr/testify/require"
)

// recordingPublisher captures published events.
type recordingPublisher struct {
	mu     sync.Mutex
	events []events.HireEvent
	err    error
}

func (p *recordingPublisher) PublishHireEvent(_ context.Context, ev events.HireEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
	return p.err
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []events.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := []events.Type{}
	for _, ev := range p.events {
		out = append(out, ev.Type)
	}
	return out
}

// stepClock returns a clock that advances one second per call.
func stepClock() func() time.Time {
	var mu sync.Mutex
	t := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	return func() time.Time {
		mu.Lock()
		defer mu.Unlock()
		t = t.Add(time.Second)
		return t
	}
}

type testEnv struct {
	ctx       context.Context
	store     *memory.Store
	jobs      services.JobService
	apps      services.JobApplicationService
	hires     services.HireService
	chat      services.ChatService
	publisher *recordingPublisher
}

func setupServicesTest(t *testing.T) *testEnv {
	t.Helper()
	store := memory.New()
	t.Cleanup(func() { _ = store.Close() })

	clock := stepClock()
	resolver := ownership.NewResolver()
	pub := &recordingPublisher{}
	return &testEnv{
		ctx:       context.Background(),
		store:     store,
		jobs:      services.NewJobService(store, services.WithClock(clock)),
		apps:      services.NewJobApplicationService(store, resolver, services.WithClock(clock)),
		hires:     services.NewHireService(store, resolver, pub, services.WithClock(clock)),
		chat:      services.NewChatService(store, services.WithClock(clock)),
		publisher: pub,
	}
}

func (e *testEnv) createJob(t *testing.T, employer string) *models.Job {
	t.Helper()
	job, err := e.jobs.CreateJob(e.ctx, &dto.CreateJobRequest{
		Title:        "Evening bar shift",
		Date:         "2024-05-03",
		StartTime:    "18:00",
		EndTime:      "23:00",
		LocationText: "Harbour St 4",
		HourlyPay:    21.5,
		EmployerID:   employer,
	})
	require.NoError(t, err)
	return job
}

func (e *testEnv) apply(t *testing.T, jobID, worker string) *models.Application {
	t.Helper()
	app, err := e.apps.ApplyToJob(e.ctx, &dto.ApplyToJobRequest{JobID: jobID, ApplicantUID: worker})
	require.NoError(t, err)
	return app
}

func (e *testEnv) job(t *testing.T, id string) models.Job {
	t.Helper()
	doc, err := e.store.Get(e.ctx, storage.CollectionJobs, id)
	require.NoError(t, err)
	var job models.Job
	require.NoError(t, doc.DataTo(&job))
	return job
}

func (e *testEnv) application(t *testing.T, id string) models.Application {
	t.Helper()
	doc, err := e.store.Get(e.ctx, storage.CollectionApplications, id)
	require.NoError(t, err)
	var app models.Application
	require.NoError(t, doc.DataTo(&app))
	return app
}

func (e *testEnv) hire(t *testing.T, id string) models.Hire {
	t.Helper()
	doc, err := e.store.Get(e.ctx, storage.CollectionHires, id)
	require.NoError(t, err)
	var hire models.Hire
	require.NoError(t, doc.DataTo(&hire))
	return hire
}

// dump captures the raw bytes and versions of every stored document.
func (e *testEnv) dump(t *testing.T) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, coll := range []string{
		storage.CollectionJobs, storage.CollectionApplications, storage.CollectionHires,
		storage.CollectionConversations, storage.CollectionMessages,
	} {
		docs, err := e.store.List(e.ctx, docstore.NewQuery(coll))
		require.NoError(t, err)
		for _, d := range docs {
			out[coll+"/"+d.ID] = string(d.Data)
		}
	}
	return out
}

// requireUnchanged runs op, expects err to match target, and checks that no document changed.
func (e *testEnv) requireUnchanged(t *testing.T, target error, op func() error) {
	t.Helper()
	before := e.dump(t)
	err := op()
	require.Error(t, err)
	require.True(t, errors.Is(err, target), "want %v, got %v", target, err)
	require.Equal(t, before, e.dump(t))
}
