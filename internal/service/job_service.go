package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eskalate/jobboard/internal/cache"
	apperrors "github.com/eskalate/jobboard/internal/errors"
	"github.com/eskalate/jobboard/internal/model"
	"github.com/eskalate/jobboard/internal/repository"
)

const jobCacheTTL = 5 * time.Minute

// JobPatch carries the fields of a job update; nil fields are untouched.
type JobPatch struct {
	Title       *string
	Description *string
	Location    *string
	Status      *model.JobStatus
}

// JobService owns job postings and enforces the forward-only status
// lifecycle.
type JobService interface {
	Create(ctx context.Context, ownerID uuid.UUID, title, description, location string, status model.JobStatus) (*model.Job, error)
	Update(ctx context.Context, jobID, requesterID uuid.UUID, patch JobPatch) (*model.Job, error)
	Delete(ctx context.Context, jobID, requesterID uuid.UUID) error
	List(ctx context.Context) ([]model.Job, error)
	ListMine(ctx context.Context, ownerID uuid.UUID) ([]model.Job, error)
	Get(ctx context.Context, jobID uuid.UUID) (*model.Job, error)
}

type jobService struct {
	jobs  repository.JobRepository
	cache *cache.Client
}

// NewJobService creates a new job service.
func NewJobService(jobs repository.JobRepository, cache *cache.Client) JobService {
	return &jobService{jobs: jobs, cache: cache}
}

func (s *jobService) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("job:%s", id)
}

// Create validates and stores a new posting. Status defaults to Draft.
func (s *jobService) Create(ctx context.Context, ownerID uuid.UUID, title, description, location string, status model.JobStatus) (*model.Job, error) {
	if err := validateJobTitle(title); err != nil {
		return nil, err
	}
	if err := validateJobDescription(description); err != nil {
		return nil, err
	}
	if status == "" {
		status = model.JobDraft
	} else if !status.Valid() {
		return nil, apperrors.ErrInvalidJobStatus
	}

	job := &model.Job{
		ID:          uuid.New(),
		Title:       title,
		Description: description,
		Location:    location,
		Status:      status,
		CreatedBy:   ownerID,
	}
	if err := s.jobs.Create(ctx, job); err != nil {
		return nil, fmt.Errorf("create job: %w", err)
	}
	return job, nil
}

// Update applies an owner-only patch. A status change must be a forward move
// in the Draft < Open < Closed order.
func (s *jobService) Update(ctx context.Context, jobID, requesterID uuid.UUID, patch JobPatch) (*model.Job, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("load job: %w", err)
	}
	if job.CreatedBy != requesterID {
		return nil, apperrors.ErrNotJobOwner
	}

	if patch.Title != nil {
		if err := validateJobTitle(*patch.Title); err != nil {
			return nil, err
		}
		job.Title = *patch.Title
	}
	if patch.Description != nil {
		if err := validateJobDescription(*patch.Description); err != nil {
			return nil, err
		}
		job.Description = *patch.Description
	}
	if patch.Location != nil {
		job.Location = *patch.Location
	}
	if patch.Status != nil {
		next := *patch.Status
		if !next.Valid() {
			return nil, apperrors.ErrInvalidJobStatus
		}
		if !job.Status.CanTransitionTo(next) {
			return nil, apperrors.ErrStatusReverted
		}
		job.Status = next
	}

	if err := s.jobs.Update(ctx, job); err != nil {
		return nil, fmt.Errorf("update job: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(job.ID))
	return job, nil
}

// Delete removes an owner's posting and, through the cascade, its
// applications.
func (s *jobService) Delete(ctx context.Context, jobID, requesterID uuid.UUID) error {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrJobNotFound
		}
		return fmt.Errorf("load job: %w", err)
	}
	if job.CreatedBy != requesterID {
		return apperrors.ErrNotJobOwner
	}
	if err := s.jobs.Delete(ctx, jobID); err != nil {
		return fmt.Errorf("delete job: %w", err)
	}
	_ = s.cache.Delete(ctx, s.cacheKey(jobID))
	return nil
}

// List returns every posting.
func (s *jobService) List(ctx context.Context) ([]model.Job, error) {
	return s.jobs.ListAll(ctx)
}

// ListMine returns the owner's postings.
func (s *jobService) ListMine(ctx context.Context, ownerID uuid.UUID) ([]model.Job, error) {
	return s.jobs.ListByOwner(ctx, ownerID)
}

// Get retrieves a single posting through the read cache.
func (s *jobService) Get(ctx context.Context, jobID uuid.UUID) (*model.Job, error) {
	if data, _ := s.cache.Get(ctx, s.cacheKey(jobID)); data != nil {
		var cached model.Job
		if err := json.Unmarshal(data, &cached); err == nil {
			return &cached, nil
		}
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("load job: %w", err)
	}

	if payload, err := json.Marshal(job); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(jobID), payload, jobCacheTTL)
	}
	return job, nil
}

func validateJobTitle(title string) error {
	if title == "" || len(title) > 100 {
		return apperrors.ErrInvalidTitle
	}
	return nil
}

func validateJobDescription(description string) error {
	if n := len(description); n < 20 || n > 2000 {
		return apperrors.ErrInvalidDescription
	}
	return nil
}
