package reviews

import (
	"errors"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ReviewsFeature struct {
	service *ReviewService
}

func New(service *ReviewService) *ReviewsFeature {
	return &ReviewsFeature{service: service}
}

func (f *ReviewsFeature) ID() string { return "reviews" }

func (f *ReviewsFeature) Models() []interface{} {
	return []interface{}{
		&models.Review{},
	}
}

func (f *ReviewsFeature) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	router.Post("/reviews", f.create)
	router.Get("/users/:id/reviews", f.listForUser)
}

func (f *ReviewsFeature) create(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req CreateReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	review, err := f.service.Create(userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrDuplicateReview):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrRevieweeUnknown):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
	}
	return c.Status(fiber.StatusCreated).JSON(review)
}

func (f *ReviewsFeature) listForUser(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid user id"})
	}

	reviewList, err := f.service.ListForUser(targetID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch reviews"})
	}
	return c.JSON(fiber.Map{"reviews": reviewList})
}
