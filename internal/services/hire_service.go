package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gig-coordinator/internal/chat"
	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/events"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/ownership"
	"gig-coordinator/internal/storage"
	"gig-coordinator/internal/storage/documents"
	"gig-coordinator/internal/transport/dto"

	"github.com/google/uuid"
)

type hireService struct {
	store     docstore.Store
	jobRepo   storage.JobRepository
	appRepo   storage.ApplicationRepository
	hireRepo  storage.HireRepository
	convRepo  storage.ConversationRepository
	resolver  *ownership.Resolver
	publisher events.Publisher
	opts      options
}

// NewHireService creates the hire coordinator.
func NewHireService(store docstore.Store, resolver *ownership.Resolver, publisher events.Publisher, opts ...Option) HireService {
	o := buildOptions("hires", opts)
	if publisher == nil {
		publisher = events.NewLogPublisher(o.base)
	}
	return &hireService{
		store:     store,
		jobRepo:   documents.NewJobRepo(store, o.logger),
		appRepo:   documents.NewApplicationRepo(store, o.logger),
		hireRepo:  documents.NewHireRepo(store, o.logger),
		convRepo:  documents.NewConversationRepo(store, o.logger),
		resolver:  resolver,
		publisher: publisher,
		opts:      o,
	}
}

// ProposeHire offers a job to a worker, moving the job out of "open".
func (s *hireService) ProposeHire(ctx context.Context, req *dto.ProposeHireRequest) (*models.Hire, error) {
	log := s.opts.logger
	if err := requireCaller(req.EmployerID); err != nil {
		return nil, err
	}

	var created *models.Hire
	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		created = nil
		txJobRepo := s.jobRepo.WithTx(tx)
		txAppRepo := s.appRepo.WithTx(tx)
		txHireRepo := s.hireRepo.WithTx(tx)
		txConvRepo := s.convRepo.WithTx(tx)

		// 1. Existence: job, then the optional application
		job, err := txJobRepo.GetByID(ctx, req.JobID)
		if err != nil {
			return mapRepoError(log, err, fmt.Sprintf("fetching job %s", req.JobID))
		}
		var app *models.Application
		if req.ApplicationID != "" {
			app, err = txAppRepo.GetByID(ctx, req.ApplicationID)
			if err != nil {
				return mapRepoError(log, err, fmt.Sprintf("fetching application %s", req.ApplicationID))
			}
		}

		// 2. Identity
		if !s.resolver.IsOwner(job, req.EmployerID) {
			log.Warn("ProposeHire: caller does not own job",
				slog.String("job_id", job.ID),
				slog.String("caller", req.EmployerID),
			)
			return fmt.Errorf("%w: only the job owner can propose a hire", ErrUnauthorized)
		}
		if req.WorkerID == "" {
			return fmt.Errorf("%w: worker is required", ErrValidation)
		}
		if req.WorkerID == req.EmployerID {
			return fmt.Errorf("%w: cannot hire yourself", ErrValidation)
		}

		// 3. State
		if status := job.EffectiveHireStatus(); status != models.JobHireStatusOpen {
			return fmt.Errorf("%w: job %s is %s, not open", ErrInvalidState, job.ID, status)
		}
		if app != nil && (app.JobID != job.ID || app.ApplicantUID != req.WorkerID) {
			return fmt.Errorf("%w: application %s is not this worker's application to this job", ErrInvalidState, app.ID)
		}

		// 4. Link the canonical conversation when one exists
		chatID := chat.ConversationID(req.EmployerID, req.WorkerID)
		if _, err := txConvRepo.GetByID(ctx, chatID); err != nil {
			if !errors.Is(err, storage.ErrNotFound) {
				return mapRepoError(log, err, "fetching conversation")
			}
			chatID = ""
		}

		// 5. Writes
		now := s.opts.now()
		hire := &models.Hire{
			ID:          uuid.NewString(),
			JobID:       job.ID,
			EmployerUID: req.EmployerID,
			WorkerUID:   req.WorkerID,
			ChatID:      chatID,
			Status:      models.HireStatusProposed,
			JobSnapshot: models.SnapshotOf(job),
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if app != nil {
			hire.ApplicationID = app.ID
		}
		if err := txHireRepo.Create(ctx, hire); err != nil {
			return mapRepoError(log, err, "creating hire")
		}
		hireID := hire.ID
		if err := txJobRepo.SetHireState(ctx, job.ID, models.JobHireStatusProposed, &hireID, now); err != nil {
			return mapRepoError(log, err, "updating job hire state")
		}
		if app != nil {
			if err := txAppRepo.UpdateStatus(ctx, app.ID, models.ApplicationStatusHiredProposed, now); err != nil {
				return mapRepoError(log, err, "updating application status")
			}
		}

		created = hire
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Hire proposed",
		slog.String("hire_id", created.ID),
		slog.String("job_id", created.JobID),
		slog.String("worker", created.WorkerUID),
	)
	s.publish(ctx, created)
	return created, nil
}

// hireTransition describes one move of an existing hire.
type hireTransition struct {
	name    string
	to      models.HireStatus
	isActor func(h *models.Hire, uid string) bool
}

func isWorker(h *models.Hire, uid string) bool   { return h.WorkerUID == uid }
func isEmployer(h *models.Hire, uid string) bool { return h.EmployerUID == uid }

// AcceptHire confirms a proposed hire. Only the worker may accept.
func (s *hireService) AcceptHire(ctx context.Context, req *dto.HireActionRequest) (*models.Hire, error) {
	return s.transition(ctx, req, hireTransition{name: "AcceptHire", to: models.HireStatusConfirmed, isActor: isWorker})
}

// RejectHire declines a proposed hire and reopens the job.
func (s *hireService) RejectHire(ctx context.Context, req *dto.HireActionRequest) (*models.Hire, error) {
	return s.transition(ctx, req, hireTransition{name: "RejectHire", to: models.HireStatusRejected, isActor: isWorker})
}

// CompleteHire closes a confirmed hire. Only the employer may complete.
func (s *hireService) CompleteHire(ctx context.Context, req *dto.HireActionRequest) (*models.Hire, error) {
	return s.transition(ctx, req, hireTransition{name: "CompleteHire", to: models.HireStatusCompleted, isActor: isEmployer})
}

func (s *hireService) transition(ctx context.Context, req *dto.HireActionRequest, t hireTransition) (*models.Hire, error) {
	log := s.opts.logger
	if err := requireCaller(req.UserID); err != nil {
		return nil, err
	}

	var updated *models.Hire
	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		updated = nil
		txJobRepo := s.jobRepo.WithTx(tx)
		txAppRepo := s.appRepo.WithTx(tx)
		txHireRepo := s.hireRepo.WithTx(tx)

		// 1. Fetch the hire
		hire, err := txHireRepo.GetByID(ctx, req.HireID)
		if err != nil {
			return mapRepoError(log, err, fmt.Sprintf("fetching hire %s", req.HireID))
		}

		// 2. Authorization
		if !t.isActor(hire, req.UserID) {
			log.Warn(t.name+": caller is not a permitted party",
				slog.String("hire_id", hire.ID),
				slog.String("caller", req.UserID),
			)
			return fmt.Errorf("%w: caller cannot %s this hire", ErrUnauthorized, t.to)
		}

		// 3. State
		if !hire.Status.CanTransitionTo(t.to) {
			return fmt.Errorf("%w: hire %s is %s", ErrInvalidState, hire.ID, hire.Status)
		}

		// 4. Related records, read before any write
		job, err := txJobRepo.GetByID(ctx, hire.JobID)
		if err != nil {
			return mapRepoError(log, err, fmt.Sprintf("fetching job %s", hire.JobID))
		}
		if t.to != models.HireStatusRejected && !job.ActiveHireIs(hire.ID) {
			return fmt.Errorf("%w: job %s no longer tracks hire %s", ErrInvalidState, job.ID, hire.ID)
		}
		var app *models.Application
		if hire.ApplicationID != "" && t.to != models.HireStatusCompleted {
			app, err = txAppRepo.GetByID(ctx, hire.ApplicationID)
			if err != nil && !errors.Is(err, storage.ErrNotFound) {
				return mapRepoError(log, err, fmt.Sprintf("fetching application %s", hire.ApplicationID))
			}
		}

		// 5. Writes
		now := s.opts.now()
		if err := txHireRepo.UpdateStatus(ctx, hire.ID, t.to, now); err != nil {
			return mapRepoError(log, err, "updating hire status")
		}
		switch {
		case t.to == models.HireStatusRejected:
			// Reopen only if the job still points at this hire.
			if job.ActiveHireIs(hire.ID) {
				if err := txJobRepo.SetHireState(ctx, job.ID, models.JobHireStatusOpen, nil, now); err != nil {
					return mapRepoError(log, err, "reopening job")
				}
			}
		default:
			if err := txJobRepo.SetHireState(ctx, job.ID, t.to.JobHireStatus(), job.ActiveHireID, now); err != nil {
				return mapRepoError(log, err, "updating job hire state")
			}
		}
		if app != nil {
			if err := txAppRepo.UpdateStatus(ctx, app.ID, models.ApplicationStatusFor(t.to), now); err != nil {
				return mapRepoError(log, err, "updating application status")
			}
		}

		hire.Status = t.to
		hire.UpdatedAt = now
		updated = hire
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Hire "+string(t.to),
		slog.String("hire_id", updated.ID),
		slog.String("job_id", updated.JobID),
	)
	s.publish(ctx, updated)
	return updated, nil
}

// GetHire returns a hire to one of its two parties.
func (s *hireService) GetHire(ctx context.Context, req *dto.GetHireRequest) (*models.Hire, error) {
	if err := requireCaller(req.UserID); err != nil {
		return nil, err
	}
	hire, err := s.hireRepo.GetByID(ctx, req.HireID)
	if err != nil {
		return nil, mapRepoError(s.opts.logger, err, fmt.Sprintf("fetching hire %s", req.HireID))
	}
	if !isWorker(hire, req.UserID) && !isEmployer(hire, req.UserID) {
		return nil, ErrUnauthorized
	}
	return hire, nil
}

// ListProposalsForWorker returns the worker's pending offers, newest first.
func (s *hireService) ListProposalsForWorker(ctx context.Context, workerID string) ([]models.Hire, error) {
	if err := requireCaller(workerID); err != nil {
		return nil, err
	}
	hires, err := s.hireRepo.ListProposals(ctx, workerID)
	if err != nil {
		return nil, mapRepoError(s.opts.logger, err, "listing proposals")
	}
	return hires, nil
}

// SubscribeProposals streams the worker's pending offers.
func (s *hireService) SubscribeProposals(ctx context.Context, workerID string, onChange func([]models.Hire), onError func(error)) (docstore.Subscription, error) {
	if err := requireCaller(workerID); err != nil {
		return nil, err
	}
	return docstore.SubscribeWithFallback(ctx, s.store, s.hireRepo.ProposalsFor(workerID), func(snap docstore.Snapshot) {
		onChange(documents.DecodeHires(s.opts.logger, snap.Documents))
	}, onError, s.opts.logger)
}

// publish is best-effort: the transition already committed.
func (s *hireService) publish(ctx context.Context, hire *models.Hire) {
	event := events.NewHireEvent(hire, hire.UpdatedAt)
	if err := s.publisher.PublishHireEvent(ctx, event); err != nil {
		s.opts.logger.Warn("failed to publish hire event",
			slog.String("type", string(event.Type)),
			slog.String("hire_id", hire.ID),
			slog.String("error", err.Error()),
		)
	}
}
