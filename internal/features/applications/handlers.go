package applications

import (
	"errors"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ApplicationHandler struct {
	applicationService *ApplicationService
}

func NewApplicationHandler(applicationService *ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applicationService: applicationService}
}

// Apply handles POST /applications.
func (h *ApplicationHandler) Apply(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	var req ApplyRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid job id"})
	}

	app, err := h.applicationService.Apply(jobID, userID, req.Message)
	if err != nil {
		switch {
		case errors.Is(err, ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrJobNotOpen), errors.Is(err, ErrOwnJob):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to apply"})
		}
	}

	return c.Status(fiber.StatusCreated).JSON(app)
}

// ListMine handles GET /applications - the worker's own applications.
func (h *ApplicationHandler) ListMine(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}

	apps, err := h.applicationService.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch applications"})
	}
	return c.JSON(fiber.Map{"applications": apps})
}

// ListForJob handles GET /jobs/:id/applications - employer only.
func (h *ApplicationHandler) ListForJob(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid job id"})
	}

	cards, err := h.applicationService.ListForJob(jobID, userID)
	if err != nil {
		switch {
		case errors.Is(err, ErrJobNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrNotJobOwner):
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch applications"})
		}
	}
	return c.JSON(fiber.Map{"applications": cards})
}
