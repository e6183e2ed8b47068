package applications

import (
	"time"

	"github.com/fluswork/flus-backend/internal/models"
	"github.com/google/uuid"
)

// --- DTOs ---

type ApplyRequest struct {
	JobID   string `json:"job_id"`
	Message string `json:"message"`
}

// ApplicantCard is the denormalized applicant view the employer sees.
type ApplicantCard struct {
	Application   models.Application `json:"application"`
	Name          string             `json:"name"`
	Municipality  string             `json:"municipality"`
	Bio           string             `json:"bio"`
	Phone         string             `json:"phone"`
	AvatarURL     string             `json:"avatar_url"`
	Skills        []string           `json:"skills"`
	Rating        float64            `json:"rating"`
	ReviewCount   int                `json:"review_count"`
	CompletedJobs int                `json:"completed_jobs"`
}

// ApplicationWithJob is the worker's own view of an application.
type ApplicationWithJob struct {
	Application models.Application `json:"application"`
	JobID       uuid.UUID          `json:"job_id"`
	JobTitle    string             `json:"job_title"`
	JobStatus   string             `json:"job_status"`
	Category    string             `json:"category"`
	Pay         int                `json:"pay"`
	Area        string             `json:"area"`
	AppliedAt   time.Time          `json:"applied_at"`
}
