package models

import (
	"time"

	"github.com/google/uuid"
)

// Session maps an opaque cookie token (stored SHA-256 hashed) to a user.
// Rows are deleted at logout and swept once expired.
type Session struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TokenHash string    `gorm:"size:64;not null;uniqueIndex" json:"-"`
	ExpiresAt time.Time `gorm:"not null;index" json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
