package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	CVEntryExperience = "experience"
	CVEntryEducation  = "education"
)

// CVEntry is one line on a worker's CV.
type CVEntry struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID  `gorm:"type:uuid;not null;index" json:"user_id"`
	Type         string     `gorm:"size:20;not null" json:"type"`
	Title        string     `gorm:"size:200;not null" json:"title"`
	Organization string     `gorm:"size:200" json:"organization"`
	FromDate     *time.Time `json:"from_date"`
	ToDate       *time.Time `json:"to_date"`
	Description  string     `gorm:"type:text" json:"description"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}
