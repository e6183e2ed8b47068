package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TicketStatusOpen   = "open"
	TicketStatusClosed = "closed"

	TicketCategoryGeneral = "general"
	TicketCategoryCurator = "curator"
)

// SupportTicket is a user request to the platform team. Curator contact
// requests use category "curator" and are gated on achievements.
type SupportTicket struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	Category  string    `gorm:"size:40;not null;default:'general'" json:"category"`
	Subject   string    `gorm:"size:200;not null" json:"subject"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	Status    string    `gorm:"size:20;not null;default:'open';index" json:"status"`
	AdminNote string    `gorm:"size:1000" json:"admin_note,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
