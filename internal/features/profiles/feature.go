package profiles

import (
	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ProfilesFeature struct {
	service *ProfileService
}

func New(service *ProfileService) *ProfilesFeature {
	return &ProfilesFeature{service: service}
}

func (f *ProfilesFeature) ID() string { return "profiles" }

func (f *ProfilesFeature) Models() []interface{} {
	return []interface{}{
		&models.Skill{},
	}
}

func (f *ProfilesFeature) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewProfileHandler(f.service)

	router.Get("/profile", handler.GetProfile)
	router.Put("/profile", handler.UpdateProfile)
	router.Get("/profile/skills", handler.ListSkills)
	router.Post("/profile/skills", handler.AddSkill)
	router.Delete("/profile/skills/:id", handler.RemoveSkill)
	router.Get("/users/:id", handler.GetPublicProfile)
}
