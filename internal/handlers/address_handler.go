package handlers

import (
	"log/slog"

	"github.com/fluswork/flus-backend/internal/clients"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
)

// AddressHandler proxies address autocomplete to the Kartverket API.
type AddressHandler struct {
	client *clients.AddressClient
}

func NewAddressHandler(client *clients.AddressClient) *AddressHandler {
	return &AddressHandler{client: client}
}

func (h *AddressHandler) Search(c *fiber.Ctx) error {
	query := c.Query("q")
	if len(query) < 2 {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Query must be at least 2 characters",
		})
	}

	hits, err := h.client.Search(query)
	if err != nil {
		slog.Warn("address lookup failed", "query", query, "error", err)
		return c.Status(fiber.StatusBadGateway).JSON(dto.ErrorResponse{
			Error: true, Message: "Address lookup is temporarily unavailable",
		})
	}
	return c.JSON(fiber.Map{"addresses": hits})
}
