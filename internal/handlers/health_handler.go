package handlers

import (
	"time"

	"github.com/fluswork/flus-backend/internal/catalog"
	"github.com/fluswork/flus-backend/internal/database"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

type HealthHandler struct {
	registry *catalog.Registry
}

func NewHealthHandler(registry *catalog.Registry) *HealthHandler {
	return &HealthHandler{registry: registry}
}

func (h *HealthHandler) Check(c *fiber.Ctx) error {
	resp := dto.HealthResponse{
		Status:        "ok",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		DB:            "up",
		CategoryCount: len(h.registry.All()),
	}
	if err := database.Ping(); err != nil {
		resp.Status = "degraded"
		resp.DB = "down"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
