package models

import (
	"time"

	"github.com/google/uuid"
)

// Application statuses keep the Norwegian wire values the clients display.
const (
	ApplicationStatusSent      = "sendt"
	ApplicationStatusAccepted  = "akseptert"
	ApplicationStatusRejected  = "avslått"
	ApplicationStatusCompleted = "fullført"
)

// Application is a worker's bid on a job. At most one row exists per
// (job_id, applicant_id) pair; rows are never deleted, only transitioned.
type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_applications_job_applicant" json:"job_id"`
	ApplicantID uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_applications_job_applicant" json:"applicant_id"`
	Message     string    `gorm:"type:text" json:"message"`
	Status      string    `gorm:"size:20;not null;default:'sendt';index" json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
