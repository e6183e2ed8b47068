package handlers

import (
	"github.com/fluswork/flus-backend/internal/catalog"
	"github.com/fluswork/flus-backend/internal/features/achievements"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// MetaHandler serves client bootstrap metadata: categories, badge levels
// and the status vocabularies the apps render.
type MetaHandler struct {
	registry *catalog.Registry
}

func NewMetaHandler(registry *catalog.Registry) *MetaHandler {
	return &MetaHandler{registry: registry}
}

func (h *MetaHandler) Get(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"categories": h.registry.All(),
		"levels":     achievements.LevelTable(),
		"job_statuses": []string{
			models.JobStatusOpen,
			models.JobStatusAssigned,
			models.JobStatusCompleted,
			models.JobStatusCancelled,
		},
		"application_statuses": []string{
			models.ApplicationStatusSent,
			models.ApplicationStatusAccepted,
			models.ApplicationStatusRejected,
			models.ApplicationStatusCompleted,
		},
		"payment_types":  []string{models.PaymentFixed, models.PaymentHourly},
		"schedule_types": []string{models.ScheduleFlexible, models.ScheduleFixed, models.ScheduleDeadline},
	})
}
