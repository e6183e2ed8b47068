package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	JobStatusOpen      = "open"
	JobStatusAssigned  = "assigned"
	JobStatusCompleted = "completed"
	JobStatusCancelled = "cancelled"
)

const (
	PaymentFixed  = "fixed"
	PaymentHourly = "hourly"
)

const (
	ScheduleFlexible = "flexible"
	ScheduleFixed    = "fixed"
	ScheduleDeadline = "deadline"
)

// Job is a posted task owned by an employer. SelectedWorkerID is set if and
// only if the status is assigned or completed.
type Job struct {
	ID               uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	EmployerID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"employer_id"`
	SelectedWorkerID *uuid.UUID     `gorm:"type:uuid;index" json:"selected_worker_id"`
	Title            string         `gorm:"size:200;not null" json:"title"`
	Description      string         `gorm:"type:text;not null" json:"description"`
	Category         string         `gorm:"size:80;not null;index" json:"category"`
	Pay              int            `gorm:"not null" json:"pay"`
	PaymentType      string         `gorm:"size:20;default:'fixed'" json:"payment_type"`
	DurationMinutes  int            `gorm:"not null" json:"duration_minutes"`
	Area             string         `gorm:"size:120;index" json:"area"`
	StreetAddress    string         `gorm:"size:200" json:"street_address"`
	Latitude         *float64       `json:"latitude"`
	Longitude        *float64       `json:"longitude"`
	ScheduleType     string         `gorm:"size:20;default:'flexible'" json:"schedule_type"`
	StartsAt         *time.Time     `json:"starts_at"`
	EndsAt           *time.Time     `json:"ends_at"`
	Requirements     string         `gorm:"type:text" json:"requirements"`
	Status           string         `gorm:"size:20;not null;default:'open';index" json:"status"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`
}
