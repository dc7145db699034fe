package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ApplicationStatus is the review state of an application. Unlike JobStatus
// no ordering is enforced between states.
type ApplicationStatus string

const (
	ApplicationApplied   ApplicationStatus = "Applied"
	ApplicationReviewed  ApplicationStatus = "Reviewed"
	ApplicationInterview ApplicationStatus = "Interview"
	ApplicationRejected  ApplicationStatus = "Rejected"
	ApplicationHired     ApplicationStatus = "Hired"
)

// Valid reports whether s is a known review state.
func (s ApplicationStatus) Valid() bool {
	switch s {
	case ApplicationApplied, ApplicationReviewed, ApplicationInterview, ApplicationRejected, ApplicationHired:
		return true
	default:
		return false
	}
}

// Notifies reports whether a move into s triggers an email to the applicant.
func (s ApplicationStatus) Notifies() bool {
	switch s {
	case ApplicationInterview, ApplicationRejected, ApplicationHired:
		return true
	default:
		return false
	}
}

// Application links one applicant to one job. The (applicant, job) pair is
// unique.
type Application struct {
	ID          uuid.UUID         `json:"id" gorm:"type:char(36);primaryKey"`
	ApplicantID uuid.UUID         `json:"applicantId" gorm:"type:char(36);not null;uniqueIndex:idx_applicant_job"`
	JobID       uuid.UUID         `json:"jobId" gorm:"type:char(36);not null;uniqueIndex:idx_applicant_job"`
	ResumeLink  string            `json:"resumeLink" gorm:"size:255;not null"`
	CoverLetter string            `json:"coverLetter,omitempty" gorm:"size:200"`
	Status      ApplicationStatus `json:"status" gorm:"type:varchar(20);not null;default:'Applied';index"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`

	// Relations
	Applicant *User `json:"applicant,omitempty" gorm:"foreignKey:ApplicantID"`
	Job       *Job  `json:"job,omitempty" gorm:"foreignKey:JobID"`
}

// BeforeCreate sets the UUID before creating the record.
func (a *Application) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
