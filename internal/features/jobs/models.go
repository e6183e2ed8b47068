package jobs

import (
	"time"

	"github.com/fluswork/flus-backend/internal/models"
)

// Business rules validated at creation. These are the only hard limits the
// platform enforces on a posting.
const (
	MinPay             = 50
	MinDurationMinutes = 15
)

// --- DTOs ---

type CreateJobRequest struct {
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	Category        string     `json:"category"`
	Pay             int        `json:"pay"`
	PaymentType     string     `json:"payment_type"`
	DurationMinutes int        `json:"duration_minutes"`
	Area            string     `json:"area"`
	StreetAddress   string     `json:"street_address"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	ScheduleType    string     `json:"schedule_type"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	Requirements    string     `json:"requirements"`
}

// UpdateJobRequest carries partial updates; nil fields stay untouched.
type UpdateJobRequest struct {
	Title           *string    `json:"title"`
	Description     *string    `json:"description"`
	Category        *string    `json:"category"`
	Pay             *int       `json:"pay"`
	PaymentType     *string    `json:"payment_type"`
	DurationMinutes *int       `json:"duration_minutes"`
	Area            *string    `json:"area"`
	StreetAddress   *string    `json:"street_address"`
	Latitude        *float64   `json:"latitude"`
	Longitude       *float64   `json:"longitude"`
	ScheduleType    *string    `json:"schedule_type"`
	StartsAt        *time.Time `json:"starts_at"`
	EndsAt          *time.Time `json:"ends_at"`
	Requirements    *string    `json:"requirements"`
}

type SelectCandidateRequest struct {
	WorkerID string `json:"worker_id"`
}

type ListFilter struct {
	Status       string
	Category     string
	Municipality string
	Limit        int
	Offset       int
}

type JobListResponse struct {
	Jobs  []models.Job `json:"jobs"`
	Total int64        `json:"total"`
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
}
