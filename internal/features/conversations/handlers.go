package conversations

import (
	"errors"
	"time"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DemoConversationID is a synthetic onboarding conversation readable by any
// authenticated user. Nothing about it is persisted.
const DemoConversationID = "demo"

type ConversationHandler struct {
	conversationService *ConversationService
	db                  *gorm.DB
}

func NewConversationHandler(conversationService *ConversationService, db *gorm.DB) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService, db: db}
}

// List handles GET /conversations.
func (h *ConversationHandler) List(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	summaries, err := h.conversationService.ListForUser(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch conversations"})
	}
	return c.JSON(fiber.Map{"conversations": summaries})
}

// Start handles POST /conversations - find-or-create for a job the caller
// wants to chat about.
func (h *ConversationHandler) Start(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req StartConversationRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return badRequest(c, "Invalid job id")
	}

	var job models.Job
	if err := h.db.First(&job, "id = ?", jobID).Error; err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Job not found"})
	}

	// The employer opens the channel towards the selected worker; anyone
	// else opening it is the worker side.
	workerID := userID
	if userID == job.EmployerID {
		if job.SelectedWorkerID == nil {
			return badRequest(c, "No worker selected for this job yet")
		}
		workerID = *job.SelectedWorkerID
	}

	conv, err := h.conversationService.FindOrCreate(jobID, workerID, job.EmployerID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to open conversation"})
	}
	return c.Status(fiber.StatusCreated).JSON(conv)
}

// ListMessages handles GET /conversations/:id/messages.
func (h *ConversationHandler) ListMessages(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if c.Params("id") == DemoConversationID {
		return c.JSON(fiber.Map{"messages": demoMessages()})
	}

	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid conversation id")
	}

	messages, err := h.conversationService.ListMessages(convID, userID)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.JSON(fiber.Map{"messages": messages})
}

// SendMessage handles POST /conversations/:id/messages.
func (h *ConversationHandler) SendMessage(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	if c.Params("id") == DemoConversationID {
		return badRequest(c, "The demo conversation is read-only")
	}

	convID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid conversation id")
	}

	var req SendMessageRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	msg, err := h.conversationService.SendMessage(convID, userID, &req)
	if err != nil {
		return h.mapError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(msg)
}

func (h *ConversationHandler) mapError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrConversationNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, ErrNotParticipant):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	case errors.Is(err, ErrEmptyMessage):
		return badRequest(c, err.Error())
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Something went wrong"})
	}
}

// demoMessages builds the synthetic onboarding chat.
func demoMessages() []models.Message {
	base := time.Now().Add(-10 * time.Minute)
	texts := []string{
		"Hei! Velkommen til FLUS 👋",
		"Slik fungerer det: finn en jobb, søk, og avtal detaljene her i chatten.",
		"Når jobben er gjort, sender du et bilde som bekreftelse.",
	}
	messages := make([]models.Message, 0, len(texts))
	for i, text := range texts {
		messages = append(messages, models.Message{
			ID:        uuid.New(),
			Type:      models.MessageTypeText,
			Content:   text,
			Read:      true,
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		})
	}
	return messages
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: msg})
}
