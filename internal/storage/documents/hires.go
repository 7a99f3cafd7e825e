package documents

import (
	"context"
	"log/slog"
	"time"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/storage"
)

// HireRepo implements storage.HireRepository.
type HireRepo struct {
	base
}

func NewHireRepo(store docstore.Store, logger *slog.Logger) *HireRepo {
	return &HireRepo{base: newBase(store, logger)}
}

func (r *HireRepo) WithTx(tx docstore.Tx) storage.HireRepository {
	return &HireRepo{base: r.base.withTx(tx)}
}

var _ storage.HireRepository = (*HireRepo)(nil)

func (r *HireRepo) GetByID(ctx context.Context, id string) (*models.Hire, error) {
	var hire models.Hire
	if err := r.get(ctx, storage.CollectionHires, id, &hire); err != nil {
		return nil, err
	}
	hire.ID = id
	return &hire, nil
}

func (r *HireRepo) Create(ctx context.Context, hire *models.Hire) error {
	return r.set(ctx, storage.CollectionHires, hire.ID, hire)
}

func (r *HireRepo) UpdateStatus(ctx context.Context, id string, status models.HireStatus, at time.Time) error {
	return r.update(ctx, storage.CollectionHires, id, map[string]any{
		"status":    status,
		"updatedAt": at,
	})
}

func (r *HireRepo) ProposalsFor(workerUID string) docstore.Query {
	return docstore.NewQuery(storage.CollectionHires).
		Where("workerUid", workerUID).
		Where("status", models.HireStatusProposed).
		OrderByField("createdAt", true)
}

func (r *HireRepo) ListProposals(ctx context.Context, workerUID string) ([]models.Hire, error) {
	docs, err := r.list(ctx, r.ProposalsFor(workerUID))
	if err != nil {
		return nil, err
	}
	return DecodeHires(r.logger, docs), nil
}

// DecodeHires decodes hire documents from a query result.
func DecodeHires(logger *slog.Logger, docs []*docstore.Document) []models.Hire {
	if logger == nil {
		logger = slog.Default()
	}
	return decodeAll(logger, docs, func(h *models.Hire, id string) { h.ID = id })
}
