package services

import (
	"context"
	"fmt"
	"log/slog"

	"gig-coordinator/internal/docstore"
	"gig-coordinator/internal/models"
	"gig-coordinator/internal/storage"
	"gig-coordinator/internal/storage/documents"
	"gig-coordinator/internal/transport/dto"

	"github.com/google/uuid"
)

type jobService struct {
	jobRepo storage.JobRepository
	opts    options
}

// NewJobService creates a new instance of JobService.
func NewJobService(store docstore.Store, opts ...Option) JobService {
	o := buildOptions("jobs", opts)
	return &jobService{
		jobRepo: documents.NewJobRepo(store, o.logger),
		opts:    o,
	}
}

// CreateJob posts a job owned by the caller. New jobs always record the canonical owner field.
func (s *jobService) CreateJob(ctx context.Context, req *dto.CreateJobRequest) (*models.Job, error) {
	if err := requireCaller(req.EmployerID); err != nil {
		return nil, err
	}
	if models.IsBlank(req.Title) {
		return nil, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if req.HourlyPay < 0 {
		return nil, fmt.Errorf("%w: hourly pay cannot be negative", ErrValidation)
	}

	now := s.opts.now()
	job := &models.Job{
		ID:           uuid.NewString(),
		OwnerUID:     req.EmployerID,
		HireStatus:   models.JobHireStatusOpen,
		Title:        req.Title,
		Date:         req.Date,
		StartTime:    req.StartTime,
		EndTime:      req.EndTime,
		LocationText: req.LocationText,
		HourlyPay:    req.HourlyPay,
		Applicants:   []string{},
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.jobRepo.Create(ctx, job); err != nil {
		return nil, mapRepoError(s.opts.logger, err, "creating job")
	}

	s.opts.logger.Info("Job created", slog.String("job_id", job.ID), slog.String("owner", job.OwnerUID))
	return job, nil
}

func (s *jobService) GetJobByID(ctx context.Context, req *dto.GetJobByIDRequest) (*models.Job, error) {
	job, err := s.jobRepo.GetByID(ctx, req.ID)
	if err != nil {
		return nil, mapRepoError(s.opts.logger, err, fmt.Sprintf("fetching job %s", req.ID))
	}
	return job, nil
}
