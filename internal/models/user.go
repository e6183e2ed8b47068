package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	RoleWorker   = "worker"
	RoleEmployer = "employer"
	RoleBoth     = "both"
	RoleAdmin    = "admin"
)

// User is a registered FLUS account. A user can act as a worker, an
// employer, or both; the auto-approve flag only has effect for employers.
type User struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	Email                 string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password              string         `gorm:"not null" json:"-"`
	Name                  string         `gorm:"size:120;not null" json:"name"`
	Role                  string         `gorm:"size:20;default:'worker'" json:"role"`
	Municipality          string         `gorm:"size:100" json:"municipality"`
	Bio                   string         `gorm:"type:text" json:"bio"`
	Phone                 string         `gorm:"size:30" json:"phone"`
	AvatarURL             string         `gorm:"type:text" json:"avatar_url"`
	CompletedJobs         int            `gorm:"default:0" json:"completed_jobs"`
	AutoApproveApplicants bool           `gorm:"default:false" json:"auto_approve_applications"`
	CreatedAt             time.Time      `json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`
	DeletedAt             gorm.DeletedAt `gorm:"index" json:"-"`
}

// Skill is a single skill tag on a worker profile.
type Skill struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index;uniqueIndex:idx_skills_user_name" json:"user_id"`
	Name      string    `gorm:"size:80;not null;uniqueIndex:idx_skills_user_name" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
