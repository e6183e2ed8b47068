package models

import (
	"time"

	"github.com/google/uuid"
)

// Review is a 1-5 rating from one user about another, optionally tied to a
// job. One review per (reviewer, reviewee, job) triple.
type Review struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ReviewerID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_triple" json:"reviewer_id"`
	RevieweeID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_reviews_triple" json:"reviewee_id"`
	JobID      *uuid.UUID `gorm:"type:uuid;index;uniqueIndex:idx_reviews_triple" json:"job_id"`
	Rating     int        `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment    string     `gorm:"type:text" json:"comment"`
	CreatedAt  time.Time  `json:"created_at"`
}
