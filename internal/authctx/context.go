package authctx

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Locals keys set by the session middleware.
const (
	LocalUserID = "user_id"
	LocalRole   = "user_role"
)

// CurrentUserID extracts the authenticated user id from Fiber context locals.
func CurrentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	id, ok := c.Locals(LocalUserID).(uuid.UUID)
	if !ok || id == uuid.Nil {
		return uuid.Nil, errors.New("no authenticated user in context")
	}
	return id, nil
}

// CurrentRole returns the authenticated user's role, or "" when absent.
func CurrentRole(c *fiber.Ctx) string {
	if role, ok := c.Locals(LocalRole).(string); ok {
		return role
	}
	return ""
}
