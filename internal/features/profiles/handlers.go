package profiles

import (
	"errors"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProfileHandler struct {
	profileService *ProfileService
}

func NewProfileHandler(profileService *ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetProfile handles GET /profile.
func (h *ProfileHandler) GetProfile(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	user, err := h.profileService.Get(userID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "User not found"})
	}
	return c.JSON(user)
}

// UpdateProfile handles PUT /profile.
func (h *ProfileHandler) UpdateProfile(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	user, err := h.profileService.Update(userID, &req)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "User not found"})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.JSON(user)
}

// GetPublicProfile handles GET /users/:id.
func (h *ProfileHandler) GetPublicProfile(c *fiber.Ctx) error {
	targetID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid user id"})
	}

	card, err := h.profileService.PublicCard(targetID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "User not found"})
	}
	return c.JSON(card)
}

// ListSkills handles GET /profile/skills.
func (h *ProfileHandler) ListSkills(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	skills, err := h.profileService.ListSkills(userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to fetch skills"})
	}
	return c.JSON(fiber.Map{"skills": skills})
}

// AddSkill handles POST /profile/skills.
func (h *ProfileHandler) AddSkill(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req AddSkillRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid request body"})
	}

	skill, err := h.profileService.AddSkill(userID, req.Name)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(skill)
}

// RemoveSkill handles DELETE /profile/skills/:id.
func (h *ProfileHandler) RemoveSkill(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return unauthorized(c)
	}
	skillID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: "Invalid skill id"})
	}

	if err := h.profileService.RemoveSkill(userID, skillID); err != nil {
		if errors.Is(err, ErrSkillNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: true, Message: "Skill not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: true, Message: "Failed to remove skill"})
	}
	return c.JSON(fiber.Map{"message": "Skill removed"})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}
