package applications

import (
	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ApplicationsFeature struct {
	service *ApplicationService
}

func New(service *ApplicationService) *ApplicationsFeature {
	return &ApplicationsFeature{service: service}
}

func (f *ApplicationsFeature) ID() string { return "applications" }

func (f *ApplicationsFeature) Models() []interface{} {
	return []interface{}{
		&models.Application{},
	}
}

func (f *ApplicationsFeature) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewApplicationHandler(f.service)

	router.Post("/applications", handler.Apply)
	router.Get("/applications", handler.ListMine)
	router.Get("/jobs/:id/applications", handler.ListForJob)
}
