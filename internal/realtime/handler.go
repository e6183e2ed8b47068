package realtime

import (
	"log/slog"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Upgrade gates the websocket route: only upgrade requests pass through.
func Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler returns the websocket endpoint. Session middleware has already
// authenticated the request; the user id rides along in locals.
func Handler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals(authctx.LocalUserID).(uuid.UUID)
		if !ok || userID == uuid.Nil {
			_ = conn.Close()
			return
		}

		client := hub.AddClient(userID, conn)
		defer hub.RemoveClient(client)

		slog.Info("websocket connected", "user_id", userID.String())

		// Drain the read side; the hub only pushes.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
