package documents

import (
	"context"
	"log/slog"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/storage"
)

// JobRepo implements storage.JobRepository.
type JobRepo struct {
	base
}

func NewJobRepo(store docstore.Store, logger *slog.Logger) *JobRepo {
	return &JobRepo{base: newBase(store, logger)}
}

func (r *JobRepo) WithTx(tx docstore.Tx) storage.JobRepository {
	return &JobRepo{base: r.base.withTx(tx)}
}

// Compile-time check to ensure JobRepo implements JobRepository
var _ storage.JobRepository = (*JobRepo)(nil)

func (r *JobRepo) GetByID(ctx context.Context, id string) (*models.Job, error) {
	var job models.Job
	if err := r.get(ctx, storage.CollectionJobs, id, &job); err != nil {
		return nil, err
	}
	job.ID = id
	return &job, nil
}

func (r *JobRepo) Create(ctx context.Context, job *models.Job) error {
	return r.set(ctx, storage.CollectionJobs, job.ID, job)
}

func (r *JobRepo) SetHireState(ctx context.Context, id string, status models.JobHireStatus, activeHireID *string, at time.Time) error {
	return r.update(ctx, storage.CollectionJobs, id, map[string]any{
		"hireStatus":   status,
		"activeHireId": activeHireID,
		"updatedAt":    at,
	})
}

// SetOwner writes only the canonical owner field.
func (r *JobRepo) SetOwner(ctx context.Context, id, ownerUID string) error {
	return r.update(ctx, storage.CollectionJobs, id, map[string]any{"ownerUid": ownerUID})
}

func (r *JobRepo) AddApplicant(ctx context.Context, job *models.Job, applicantUID string, at time.Time) error {
	if job.HasApplicant(applicantUID) {
		return nil
	}
	applicants := append(append([]string(nil), job.Applicants...), applicantUID)
	return r.update(ctx, storage.CollectionJobs, job.ID, map[string]any{
		"applicants": applicants,
		"updatedAt":  at,
	})
}

func (r *JobRepo) ByField(field, value string) docstore.Query {
	return docstore.NewQuery(storage.CollectionJobs).Where(field, value)
}
