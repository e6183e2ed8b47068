package conversations

import (
	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type ConversationsFeature struct {
	service *ConversationService
}

func New(service *ConversationService) *ConversationsFeature {
	return &ConversationsFeature{service: service}
}

func (f *ConversationsFeature) ID() string { return "conversations" }

func (f *ConversationsFeature) Models() []interface{} {
	return []interface{}{
		&models.Conversation{},
		&models.Message{},
	}
}

func (f *ConversationsFeature) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	handler := NewConversationHandler(f.service, db)

	router.Get("/conversations", handler.List)
	router.Post("/conversations", handler.Start)
	router.Get("/conversations/:id/messages", handler.ListMessages)
	router.Post("/conversations/:id/messages", handler.SendMessage)
}
