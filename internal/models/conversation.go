package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	MessageTypeText   = "text"
	MessageTypePhoto  = "photo"
	MessageTypeSystem = "system"
)

// System event tags carried on system messages.
const (
	EventWorkStarted   = "work_started"
	EventWorkCompleted = "work_completed"
	EventWorkApproved  = "work_approved"
	EventWorkRejected  = "work_rejected"
)

// Conversation is the single channel between a worker and an employer for
// one job. Enforced unique per (job_id, worker_id); never deleted.
type Conversation struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID         uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_conversations_job_worker" json:"job_id"`
	WorkerID      uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_conversations_job_worker" json:"worker_id"`
	EmployerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"employer_id"`
	LastMessageAt time.Time `gorm:"index" json:"last_message_at"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Message is append-only. SenderID is nil for system events.
type Message struct {
	ID             uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ConversationID uuid.UUID  `gorm:"type:uuid;not null;index" json:"conversation_id"`
	SenderID       *uuid.UUID `gorm:"type:uuid;index" json:"sender_id"`
	Type           string     `gorm:"size:20;not null;default:'text'" json:"type"`
	Content        string     `gorm:"type:text" json:"content"`
	PhotoURL       string     `gorm:"type:text" json:"photo_url,omitempty"`
	SystemEvent    string     `gorm:"size:40" json:"system_event,omitempty"`
	Read           bool       `gorm:"default:false" json:"read"`
	CreatedAt      time.Time  `gorm:"index" json:"created_at"`
}
