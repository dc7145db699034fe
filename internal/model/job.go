package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobStatus is the lifecycle state of a posting. Postings only ever move
// forward along Draft -> Open -> Closed.
type JobStatus string

const (
	JobDraft  JobStatus = "Draft"
	JobOpen   JobStatus = "Open"
	JobClosed JobStatus = "Closed"
)

// Valid reports whether s is a known lifecycle state.
func (s JobStatus) Valid() bool {
	return s.Rank() >= 0
}

// Rank returns the position of s in the lifecycle order, or -1 for unknown
// values.
func (s JobStatus) Rank() int {
	switch s {
	case JobDraft:
		return 0
	case JobOpen:
		return 1
	case JobClosed:
		return 2
	default:
		return -1
	}
}

// CanTransitionTo reports whether moving from s to next is a forward move.
// Staying on the same state counts as forward.
func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	return next.Rank() >= s.Rank()
}

// Job is a posting owned by exactly one company user.
type Job struct {
	ID          uuid.UUID `json:"id" gorm:"type:char(36);primaryKey"`
	Title       string    `json:"title" gorm:"size:100;not null"`
	Description string    `json:"description" gorm:"size:2000;not null"`
	Location    string    `json:"location,omitempty" gorm:"size:100"`
	Status      JobStatus `json:"status" gorm:"type:varchar(20);not null;default:'Draft';index"`
	CreatedBy   uuid.UUID `json:"createdBy" gorm:"type:char(36);not null;index"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`

	// Relations
	Owner        *User         `json:"user,omitempty" gorm:"foreignKey:CreatedBy"`
	Applications []Application `json:"-" gorm:"foreignKey:JobID;constraint:OnDelete:CASCADE"`
}

// BeforeCreate sets the UUID before creating the record.
func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
