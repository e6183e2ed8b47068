package dto

import (
	"time"

	"github.com/google/uuid"
)

type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	Municipality string `json:"municipality"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type UserResponse struct {
	ID                    uuid.UUID `json:"id"`
	Email                 string    `json:"email"`
	Name                  string    `json:"name"`
	Role                  string    `json:"role"`
	Municipality          string    `json:"municipality"`
	Bio                   string    `json:"bio"`
	Phone                 string    `json:"phone"`
	AvatarURL             string    `json:"avatar_url"`
	CompletedJobs         int       `json:"completed_jobs"`
	AutoApproveApplicants bool      `json:"auto_approve_applications"`
	CreatedAt             time.Time `json:"created_at"`
}

type AuthResponse struct {
	User UserResponse `json:"user"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status        string `json:"status"`
	Timestamp     string `json:"timestamp"`
	DB            string `json:"db"`
	CategoryCount int    `json:"category_count"`
}
