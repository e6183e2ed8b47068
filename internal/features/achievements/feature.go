package achievements

import (
	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type AchievementsFeature struct {
	service *AchievementService
}

func New(service *AchievementService) *AchievementsFeature {
	return &AchievementsFeature{service: service}
}

func (f *AchievementsFeature) ID() string { return "achievements" }

// Models is empty: achievements are derived, nothing is persisted.
func (f *AchievementsFeature) Models() []interface{} {
	return nil
}

func (f *AchievementsFeature) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	router.Get("/achievements", func(c *fiber.Ctx) error {
		userID, err := authctx.CurrentUserID(c)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
		}
		return c.JSON(f.service.Compute(userID))
	})
}
