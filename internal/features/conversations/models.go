package conversations

import (
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/google/uuid"
)

// --- DTOs ---

type StartConversationRequest struct {
	JobID string `json:"job_id"`
}

type SendMessageRequest struct {
	Content  string `json:"content"`
	PhotoURL string `json:"photo_url"`
}

// ConversationSummary is one row in the inbox view.
type ConversationSummary struct {
	Conversation models.Conversation `json:"conversation"`
	JobTitle     string              `json:"job_title"`
	JobStatus    string              `json:"job_status"`
	OtherUserID  uuid.UUID           `json:"other_user_id"`
	OtherName    string              `json:"other_name"`
	OtherAvatar  string              `json:"other_avatar"`
	LastMessage  *models.Message     `json:"last_message"`
	UnreadCount  int                 `json:"unread_count"`
}
