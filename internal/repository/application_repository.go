package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/eskalate/jobboard/internal/model"
)

// ApplicationFilter narrows and pages application listings. Zero values mean
// "no filter"; paging and sorting fall back to page 1, size 10, newest first.
type ApplicationFilter struct {
	Status      model.ApplicationStatus
	JobStatus   model.JobStatus
	CompanyName string
	Page        int
	PageSize    int
	SortBy      string
	SortOrder   string
}

// sortColumns whitelists the sortable fields; anything else falls back to
// creation time.
var sortColumns = map[string]string{
	"createdAt": "applications.created_at",
	"updatedAt": "applications.updated_at",
	"status":    "applications.status",
}

func (f ApplicationFilter) orderClause() string {
	col, ok := sortColumns[f.SortBy]
	if !ok {
		col = "applications.created_at"
	}
	dir := "DESC"
	if strings.EqualFold(f.SortOrder, "ASC") {
		dir = "ASC"
	}
	return col + " " + dir
}

func (f ApplicationFilter) limits() (offset, limit int) {
	page := f.Page
	if page < 1 {
		page = 1
	}
	size := f.PageSize
	if size < 1 {
		size = 10
	}
	return (page - 1) * size, size
}

// ApplicationRepository defines application persistence operations.
type ApplicationRepository interface {
	Create(ctx context.Context, application *model.Application) error
	Update(ctx context.Context, application *model.Application) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error)
	FindByApplicantAndJob(ctx context.Context, applicantID, jobID uuid.UUID) (*model.Application, error)
	ListByApplicant(ctx context.Context, applicantID uuid.UUID, f ApplicationFilter) ([]model.Application, int64, error)
	ListByJob(ctx context.Context, jobID uuid.UUID, f ApplicationFilter) ([]model.Application, int64, error)
}

type applicationRepository struct {
	db *gorm.DB
}

// NewApplicationRepository creates a new application repository.
func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

// Create creates a new application. The composite unique index on
// (applicant_id, job_id) makes a concurrent duplicate surface as
// gorm.ErrDuplicatedKey.
func (r *applicationRepository) Create(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Create(application).Error
}

// Update updates an existing application.
func (r *applicationRepository) Update(ctx context.Context, application *model.Application) error {
	return r.db.WithContext(ctx).Save(application).Error
}

// FindByID finds an application by ID with its parent job attached.
func (r *applicationRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Application, error) {
	var application model.Application
	if err := r.db.WithContext(ctx).Preload("Job").Where("id = ?", id).First(&application).Error; err != nil {
		return nil, err
	}
	return &application, nil
}

// FindByApplicantAndJob finds the application for an (applicant, job) pair.
func (r *applicationRepository) FindByApplicantAndJob(ctx context.Context, applicantID, jobID uuid.UUID) (*model.Application, error) {
	var application model.Application
	err := r.db.WithContext(ctx).
		Where("applicant_id = ? AND job_id = ?", applicantID, jobID).
		First(&application).Error
	if err != nil {
		return nil, err
	}
	return &application, nil
}

// ListByApplicant returns the applicant's applications enriched with each
// parent job and the owning company's public profile, plus the unpaged total.
func (r *applicationRepository) ListByApplicant(ctx context.Context, applicantID uuid.UUID, f ApplicationFilter) ([]model.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Application{}).
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Joins("JOIN users ON users.id = jobs.created_by").
		Where("applications.applicant_id = ?", applicantID)
	if f.Status != "" {
		q = q.Where("applications.status = ?", f.Status)
	}
	if f.JobStatus != "" {
		q = q.Where("jobs.status = ?", f.JobStatus)
	}
	if f.CompanyName != "" {
		q = q.Where("LOWER(users.name) LIKE ?", "%"+strings.ToLower(f.CompanyName)+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := f.limits()
	var applications []model.Application
	err := q.
		Preload("Job", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "title", "status", "created_by")
		}).
		Preload("Job.Owner", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Order(f.orderClause()).
		Offset(offset).
		Limit(limit).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}

// ListByJob returns the applications for a job enriched with each applicant's
// public profile, plus the unpaged total.
func (r *applicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID, f ApplicationFilter) ([]model.Application, int64, error) {
	q := r.db.WithContext(ctx).Model(&model.Application{}).
		Where("applications.job_id = ?", jobID)
	if f.Status != "" {
		q = q.Where("applications.status = ?", f.Status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset, limit := f.limits()
	var applications []model.Application
	err := q.
		Preload("Applicant", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "email")
		}).
		Order(f.orderClause()).
		Offset(offset).
		Limit(limit).
		Find(&applications).Error
	if err != nil {
		return nil, 0, err
	}
	return applications, total, nil
}
