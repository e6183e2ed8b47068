package jobs

import (
	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type JobsFeature struct {
	service *JobService
}

func New(service *JobService) *JobsFeature {
	return &JobsFeature{service: service}
}

func (f *JobsFeature) ID() string { return "jobs" }

func (f *JobsFeature) Models() []interface{} {
	return []interface{}{
		&models.Job{},
	}
}

func (f *JobsFeature) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewJobHandler(f.service)

	router.Get("/jobs", handler.ListJobs)
	router.Post("/jobs", handler.CreateJob)
	router.Get("/jobs/:id", handler.GetJob)
	router.Post("/jobs/:id/select-candidate", handler.SelectCandidate)
	router.Post("/jobs/:id/complete", handler.MarkCompleted)
	router.Post("/jobs/:id/confirm-completion", handler.ConfirmCompletion)
	router.Post("/jobs/:id/cancel", handler.CancelJob)

	router.Get("/my-jobs", handler.ListMyJobs)
	router.Put("/my-jobs/:id", handler.UpdateJob)
	router.Delete("/my-jobs/:id", handler.DeleteJob)
}
