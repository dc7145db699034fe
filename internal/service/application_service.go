package service

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	apperrors "github.com/eskalate/jobboard/internal/errors"
	"github.com/eskalate/jobboard/internal/mail"
	"github.com/eskalate/jobboard/internal/model"
	"github.com/eskalate/jobboard/internal/repository"
	"github.com/eskalate/jobboard/internal/storage"
)

const maxCoverLetterLen = 200

// ApplicationService links applicants to jobs and drives the review workflow.
type ApplicationService interface {
	Apply(ctx context.Context, applicantID, jobID uuid.UUID, resume *storage.File, coverLetter string) (*model.Application, error)
	ListMine(ctx context.Context, applicantID uuid.UUID, filter repository.ApplicationFilter) ([]model.Application, int64, error)
	ListForJob(ctx context.Context, requesterID, jobID uuid.UUID, filter repository.ApplicationFilter) ([]model.Application, int64, error)
	UpdateStatus(ctx context.Context, applicationID, requesterID uuid.UUID, status model.ApplicationStatus) (*model.Application, error)
}

type applicationService struct {
	applications repository.ApplicationRepository
	jobs         repository.JobRepository
	users        repository.UserRepository
	files        storage.FileStore
	outbox       mail.Enqueuer
}

// NewApplicationService creates a new application service.
func NewApplicationService(
	applications repository.ApplicationRepository,
	jobs repository.JobRepository,
	users repository.UserRepository,
	files storage.FileStore,
	outbox mail.Enqueuer,
) ApplicationService {
	return &applicationService{
		applications: applications,
		jobs:         jobs,
		users:        users,
		files:        files,
		outbox:       outbox,
	}
}

// Apply uploads the resume, records the application and notifies the job's
// owner. An applicant may apply to a job at most once; the unique index
// backs up the pre-check when two identical applies race.
func (s *applicationService) Apply(ctx context.Context, applicantID, jobID uuid.UUID, resume *storage.File, coverLetter string) (*model.Application, error) {
	if resume == nil {
		return nil, apperrors.ErrResumeRequired
	}
	if len(coverLetter) > maxCoverLetterLen {
		return nil, apperrors.ErrCoverLetterTooLong
	}

	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrJobNotFound
		}
		return nil, fmt.Errorf("load job: %w", err)
	}

	if existing, err := s.applications.FindByApplicantAndJob(ctx, applicantID, jobID); err == nil && existing != nil {
		return nil, apperrors.ErrAlreadyApplied
	} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check existing application: %w", err)
	}

	resumeLink, err := s.files.Upload(ctx, *resume)
	if err != nil {
		return nil, fmt.Errorf("store resume: %w", err)
	}

	application := &model.Application{
		ID:          uuid.New(),
		ApplicantID: applicantID,
		JobID:       jobID,
		ResumeLink:  resumeLink,
		CoverLetter: coverLetter,
		Status:      model.ApplicationApplied,
	}
	if err := s.applications.Create(ctx, application); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrAlreadyApplied
		}
		return nil, fmt.Errorf("create application: %w", err)
	}

	if company, err := s.users.FindByID(ctx, job.CreatedBy); err == nil {
		s.outbox.Enqueue(ctx, mail.Message{
			To:      company.Email,
			Subject: "New Application Received",
			Body:    fmt.Sprintf("A new applicant has applied to your job posting titled %q.", job.Title),
		})
	} else {
		log.Printf("apply: load company for notification: %v", err)
	}

	return application, nil
}

// ListMine returns the applicant's applications with job and company context.
func (s *applicationService) ListMine(ctx context.Context, applicantID uuid.UUID, filter repository.ApplicationFilter) ([]model.Application, int64, error) {
	return s.applications.ListByApplicant(ctx, applicantID, filter)
}

// ListForJob returns the applications for a posting the requester owns.
func (s *applicationService) ListForJob(ctx context.Context, requesterID, jobID uuid.UUID, filter repository.ApplicationFilter) ([]model.Application, int64, error) {
	job, err := s.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, 0, apperrors.ErrJobNotFound
		}
		return nil, 0, fmt.Errorf("load job: %w", err)
	}
	if job.CreatedBy != requesterID {
		return nil, 0, apperrors.ErrNotJobOwner
	}
	return s.applications.ListByJob(ctx, jobID, filter)
}

// UpdateStatus persists a new review state set by the owning company. Any
// state may follow any other; Interview, Rejected and Hired additionally
// notify the applicant.
func (s *applicationService) UpdateStatus(ctx context.Context, applicationID, requesterID uuid.UUID, status model.ApplicationStatus) (*model.Application, error) {
	if !status.Valid() {
		return nil, apperrors.ErrInvalidAppStatus
	}

	application, err := s.applications.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, fmt.Errorf("load application: %w", err)
	}
	if application.Job == nil || application.Job.CreatedBy != requesterID {
		return nil, apperrors.ErrNotJobOwner
	}

	application.Status = status
	if err := s.applications.Update(ctx, application); err != nil {
		return nil, fmt.Errorf("update application: %w", err)
	}

	if status.Notifies() {
		if applicant, err := s.users.FindByID(ctx, application.ApplicantID); err == nil {
			s.outbox.Enqueue(ctx, mail.Message{
				To:      applicant.Email,
				Subject: "Application Status: " + string(status),
				Body:    statusMessage(status, application.Job.Title),
			})
		} else {
			log.Printf("update status: load applicant for notification: %v", err)
		}
	}

	return application, nil
}

func statusMessage(status model.ApplicationStatus, jobTitle string) string {
	switch status {
	case model.ApplicationInterview:
		return fmt.Sprintf("You have been selected for an interview for the job %q.", jobTitle)
	case model.ApplicationRejected:
		return fmt.Sprintf("We regret to inform you that you were not selected for the job %q.", jobTitle)
	case model.ApplicationHired:
		return fmt.Sprintf("Congratulations! You have been hired for the job %q.", jobTitle)
	default:
		return ""
	}
}
