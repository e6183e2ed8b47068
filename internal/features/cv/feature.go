package cv

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

type CVFeature struct {
	service *CVService
}

func New(service *CVService) *CVFeature {
	return &CVFeature{service: service}
}

func (f *CVFeature) ID() string { return "cv" }

func (f *CVFeature) Models() []interface{} {
	return []interface{}{
		&models.CVEntry{},
	}
}

func (f *CVFeature) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	router.Get("/cv", f.get)
	router.Get("/cv/pdf", f.renderPDF)
	router.Post("/cv/entries", f.addEntry)
	router.Put("/cv/entries/:id", f.updateEntry)
	router.Delete("/cv/entries/:id", f.deleteEntry)
}

func (f *CVFeature) get(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	resp, err := f.service.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch CV"})
	}
	return c.JSON(resp)
}

func (f *CVFeature) renderPDF(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	pdf, err := f.service.RenderPDF(userID)
	if err != nil {
		if errors.Is(err, ErrRendererUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Error: true, Message: "CV-generering er ikke tilgjengelig for øyeblikket"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to render CV"})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	return c.Send(pdf)
}

func (f *CVFeature) addEntry(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	entry, err := f.service.AddEntry(userID, &req)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(entry)
}

func (f *CVFeature) updateEntry(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid entry id"})
	}
	var req EntryRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}
	entry, err := f.service.UpdateEntry(userID, entryID, &req)
	if err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.JSON(entry)
}

func (f *CVFeature) deleteEntry(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
	}
	entryID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid entry id"})
	}
	if err := f.service.DeleteEntry(userID, entryID); err != nil {
		if errors.Is(err, ErrEntryNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to delete entry"})
	}
	return c.JSON(fiber.Map{"success": true})
}
