package documents

import (
	"context"
	"log/slog"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/storage"
)

// ApplicationRepo implements storage.ApplicationRepository.
type ApplicationRepo struct {
	base
}

func NewApplicationRepo(store docstore.Store, logger *slog.Logger) *ApplicationRepo {
	return &ApplicationRepo{base: newBase(store, logger)}
}

func (r *ApplicationRepo) WithTx(tx docstore.Tx) storage.ApplicationRepository {
	return &ApplicationRepo{base: r.base.withTx(tx)}
}

var _ storage.ApplicationRepository = (*ApplicationRepo)(nil)

// GetByID normalizes legacy status literals on read.
func (r *ApplicationRepo) GetByID(ctx context.Context, id string) (*models.Application, error) {
	var app models.Application
	if err := r.get(ctx, storage.CollectionApplications, id, &app); err != nil {
		return nil, err
	}
	app.ID = id
	app.Status = app.Status.Normalize()
	return &app, nil
}

func (r *ApplicationRepo) Create(ctx context.Context, app *models.Application) error {
	return r.set(ctx, storage.CollectionApplications, app.ID, app)
}

func (r *ApplicationRepo) UpdateStatus(ctx context.Context, id string, status models.ApplicationStatus, at time.Time) error {
	return r.update(ctx, storage.CollectionApplications, id, map[string]any{
		"status":    status,
		"updatedAt": at,
	})
}

func (r *ApplicationRepo) ListByJob(ctx context.Context, jobID string) ([]models.Application, error) {
	q := docstore.NewQuery(storage.CollectionApplications).
		Where("jobId", jobID).
		OrderByField("createdAt", false)
	docs, err := r.list(ctx, q)
	if err != nil {
		return nil, err
	}
	return decodeAll(r.logger, docs, func(a *models.Application, id string) {
		a.ID = id
		a.Status = a.Status.Normalize()
	}), nil
}
