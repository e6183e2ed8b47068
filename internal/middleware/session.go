package middleware

import (
	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/gofiber/fiber/v2"
)

// SessionResolver is the slice of AuthService the middleware needs.
type SessionResolver interface {
	ResolveSession(rawToken string) (*models.User, error)
}

// SessionProtected reads the session cookie, resolves it to a user and puts
// the user id and role into locals. Requests without a valid session get 401.
func SessionProtected(cfg *config.Config, resolver SessionResolver) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Cookies(cfg.SessionCookie)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: no session",
			})
		}

		user, err := resolver.ResolveSession(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Error: true, Message: "Unauthorized: invalid or expired session",
			})
		}

		c.Locals(authctx.LocalUserID, user.ID)
		c.Locals(authctx.LocalRole, user.Role)
		return c.Next()
	}
}
