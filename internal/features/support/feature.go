package support

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

type SupportFeature struct {
	service *SupportService
}

func New(service *SupportService) *SupportFeature {
	return &SupportFeature{service: service}
}

func (f *SupportFeature) ID() string { return "support" }

func (f *SupportFeature) Models() []interface{} {
	return []interface{}{
		&models.SupportTicket{},
	}
}

func (f *SupportFeature) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	router.Post("/support/tickets", f.create)
	router.Get("/support/tickets", f.listMine)
}

func (f *SupportFeature) RegisterAdminRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	router.Get("/support/tickets", f.listAll)
	router.Post("/support/tickets/:id/respond", f.respond)
}

func (f *SupportFeature) create(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	var req CreateTicketRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	ticket, err := f.service.Create(userID, &req)
	if err != nil {
		if errors.Is(err, ErrCuratorLocked) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(ticket)
}

func (f *SupportFeature) listMine(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	tickets, err := f.service.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch tickets"})
	}
	return c.JSON(fiber.Map{"tickets": tickets})
}

func (f *SupportFeature) listAll(c *fiber.Ctx) error {
	tickets, err := f.service.ListAll(c.Query("status"))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch tickets"})
	}
	return c.JSON(fiber.Map{"tickets": tickets})
}

func (f *SupportFeature) respond(c *fiber.Ctx) error {
	ticketID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid ticket id"})
	}
	var req RespondRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	ticket, err := f.service.Respond(ticketID, &req)
	if err != nil {
		switch {
		case errors.Is(err, ErrTicketNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		case errors.Is(err, ErrTicketClosed):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		default:
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to update ticket"})
		}
	}
	return c.JSON(ticket)
}
