package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/ownership"
	"gig-coordinator/internal/storage"
	"gig-coordinator/internal/storage/documents"
	"gig-coordinator/internal/transport/dto"
)

type jobApplicationService struct {
	store    docstore.Store
	appRepo  storage.ApplicationRepository
	jobRepo  storage.JobRepository
	resolver *ownership.Resolver
	opts     options
}

// NewJobApplicationService creates a new instance of JobApplicationService.
func NewJobApplicationService(store docstore.Store, resolver *ownership.Resolver, opts ...Option) JobApplicationService {
	o := buildOptions("applications", opts)
	return &jobApplicationService{
		store:    store,
		appRepo:  documents.NewApplicationRepo(store, o.logger),
		jobRepo:  documents.NewJobRepo(store, o.logger),
		resolver: resolver,
		opts:     o,
	}
}

// ApplicationID is deterministic so a worker holds at most one application per job.
func ApplicationID(jobID, applicantUID string) string {
	return jobID + "_" + applicantUID
}

// ApplyToJob records the caller's application and adds them to the job's applicants.
func (s *jobApplicationService) ApplyToJob(ctx context.Context, req *dto.ApplyToJobRequest) (*models.Application, error) {
	log := s.opts.logger
	if err := requireCaller(req.ApplicantUID); err != nil {
		return nil, err
	}

	var created *models.Application
	err := s.store.RunTransaction(ctx, func(ctx context.Context, tx docstore.Tx) error {
		created = nil
		txJobRepo := s.jobRepo.WithTx(tx)
		txAppRepo := s.appRepo.WithTx(tx)

		// 1. Fetch the job and any existing application
		job, err := txJobRepo.GetByID(ctx, req.JobID)
		if err != nil {
			return mapRepoError(log, err, fmt.Sprintf("fetching job %s for application", req.JobID))
		}
		appID := ApplicationID(job.ID, req.ApplicantUID)
		_, err = txAppRepo.GetByID(ctx, appID)
		switch {
		case err == nil:
			return fmt.Errorf("%w: already applied to job", ErrInvalidState)
		case !errors.Is(err, storage.ErrNotFound):
			return mapRepoError(log, err, "checking existing application")
		}

		// 2. Authorization/Validation
		if s.resolver.IsOwner(job, req.ApplicantUID) {
			return fmt.Errorf("%w: employer cannot apply to their own job", ErrUnauthorized)
		}
		if job.EffectiveHireStatus() != models.JobHireStatusOpen {
			log.Warn("ApplyToJob: job not open", slog.String("job_id", job.ID), slog.String("hire_status", string(job.HireStatus)))
			return fmt.Errorf("%w: job is not available for applications", ErrInvalidState)
		}

		// 3. Writes
		now := s.opts.now()
		app := &models.Application{
			ID:                 appID,
			JobID:              job.ID,
			ApplicantProfileID: req.ApplicantProfileID,
			ApplicantUID:       req.ApplicantUID,
			Status:             models.ApplicationStatusApplied,
			CreatedAt:          now,
			UpdatedAt:          now,
		}
		if err := txAppRepo.Create(ctx, app); err != nil {
			return mapRepoError(log, err, "creating application")
		}
		if err := txJobRepo.AddApplicant(ctx, job, req.ApplicantUID, now); err != nil {
			return mapRepoError(log, err, "adding applicant")
		}
		created = app
		return nil
	})
	if err != nil {
		return nil, err
	}

	log.Info("Application created", slog.String("application_id", created.ID), slog.String("job_id", created.JobID))
	return created, nil
}
