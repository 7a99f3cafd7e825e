package ownership

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/storage"
)

const writeTimeout = 10 * time.Second

// Normalizer backfills the canonical owner field on legacy jobs the current
// actor owns. Each job is written at most once per Normalizer unless the
// write fails, in which case a later observation may try again.
type Normalizer struct {
	resolver *Resolver
	jobs     storage.JobRepository
	logger   *slog.Logger

	mu         sync.Mutex
	normalized map[string]bool
	wg         sync.WaitGroup
}

func NewNormalizer(resolver *Resolver, jobs storage.JobRepository, logger *slog.Logger) *Normalizer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Normalizer{
		resolver:   resolver,
		jobs:       jobs,
		logger:     logger.With(slog.String("component", "ownership")),
		normalized: map[string]bool{},
	}
}

// needsWrite reports whether job lacks the canonical field but resolves to actor.
func (n *Normalizer) needsWrite(job *models.Job, actor string) bool {
	if actor == "" || job.OwnerUID != "" {
		return false
	}
	owner, ok := n.resolver.Owner(job)
	return ok && owner == actor
}

// claim marks job as normalized and reports whether the caller should write.
func (n *Normalizer) claim(jobID string) bool {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.normalized[jobID] {
		return false
	}
	n.normalized[jobID] = true
	return true
}

func (n *Normalizer) release(jobID string) {
	n.mu.Lock()
	delete(n.normalized, jobID)
	n.mu.Unlock()
}

// Reconcile performs the write synchronously. It returns nil when nothing needed doing.
func (n *Normalizer) Reconcile(ctx context.Context, job *models.Job, actor string) error {
	if !n.needsWrite(job, actor) || !n.claim(job.ID) {
		return nil
	}
	return n.write(ctx, job.ID, actor)
}

func (n *Normalizer) write(ctx context.Context, jobID, actor string) error {
	if err := n.jobs.SetOwner(ctx, jobID, actor); err != nil {
		n.release(jobID)
		n.logger.Warn("failed to backfill job owner",
			slog.String("job_id", jobID),
			slog.String("error", err.Error()),
		)
		return fmt.Errorf("backfill owner of job %s: %w", jobID, err)
	}
	n.logger.Info("backfilled job owner", slog.String("job_id", jobID))
	return nil
}

// Observe schedules writes for every eligible job without blocking.
func (n *Normalizer) Observe(ctx context.Context, jobs []models.Job, actor string) {
	for i := range jobs {
		job := &jobs[i]
		if !n.needsWrite(job, actor) || !n.claim(job.ID) {
			continue
		}
		n.wg.Add(1)
		go func(jobID string) {
			defer n.wg.Done()
			writeCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), writeTimeout)
			defer cancel()
			_ = n.write(writeCtx, jobID, actor)
		}(job.ID)
	}
}

// Wait blocks until scheduled writes finish.
func (n *Normalizer) Wait() {
	n.wg.Wait()
}

type multiSubscription []docstore.Subscription

func (m multiSubscription) Unsubscribe() {
	for _, s := range m {
		s.Unsubscribe()
	}
}

// Watch subscribes to the actor's jobs under every legacy alias and feeds
// each snapshot to Observe.
func (n *Normalizer) Watch(ctx context.Context, store docstore.Store, actor string) (docstore.Subscription, error) {
	var subs multiSubscription
	for _, field := range n.resolver.LegacyFields() {
		sub, err := store.Subscribe(ctx, n.jobs.ByField(field, actor), func(snap docstore.Snapshot) {
			n.Observe(ctx, decodeJobs(n.logger, snap.Documents), actor)
		}, func(err error) {
			n.logger.Warn("job ownership watch ended",
				slog.String("field", field),
				slog.String("error", err.Error()),
			)
		})
		if err != nil {
			subs.Unsubscribe()
			return nil, fmt.Errorf("watch jobs by %s: %w", field, err)
		}
		subs = append(subs, sub)
	}
	return subs, nil
}

func decodeJobs(logger *slog.Logger, docs []*docstore.Document) []models.Job {
	jobs := make([]models.Job, 0, len(docs))
	for _, d := range docs {
		var job models.Job
		if err := d.DataTo(&job); err != nil {
			logger.Warn("skipping malformed job", slog.String("id", d.ID), slog.String("error", err.Error()))
			continue
		}
		job.ID = d.ID
		jobs = append(jobs, job)
	}
	return jobs
}
