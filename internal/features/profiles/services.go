package profiles

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrSkillNotFound = errors.New("skill not found")
)

type UpdateProfileRequest struct {
	Name                  *string `json:"name"`
	Bio                   *string `json:"bio"`
	Phone                 *string `json:"phone"`
	Municipality          *string `json:"municipality"`
	AvatarURL             *string `json:"avatar_url"`
	AutoApproveApplicants *bool   `json:"auto_approve_applications"`
}

type AddSkillRequest struct {
	Name string `json:"name"`
}

// PublicProfile is the card shown to other users.
type PublicProfile struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	Role          string    `json:"role"`
	Municipality  string    `json:"municipality"`
	Bio           string    `json:"bio"`
	AvatarURL     string    `json:"avatar_url"`
	CompletedJobs int       `json:"completed_jobs"`
	Skills        []string  `json:"skills"`
	Rating        float64   `json:"rating"`
	ReviewCount   int       `json:"review_count"`
}

type ProfileService struct {
	db *gorm.DB
}

func NewProfileService(db *gorm.DB) *ProfileService {
	return &ProfileService{db: db}
}

func (s *ProfileService) Get(userID uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

func (s *ProfileService) Update(userID uuid.UUID, req *UpdateProfileRequest) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	updates := map[string]interface{}{}
	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, errors.New("name cannot be empty")
		}
		updates["name"] = strings.TrimSpace(*req.Name)
	}
	if req.Bio != nil {
		updates["bio"] = *req.Bio
	}
	if req.Phone != nil {
		updates["phone"] = *req.Phone
	}
	if req.Municipality != nil {
		updates["municipality"] = *req.Municipality
	}
	if req.AvatarURL != nil {
		updates["avatar_url"] = *req.AvatarURL
	}
	if req.AutoApproveApplicants != nil {
		updates["auto_approve_applicants"] = *req.AutoApproveApplicants
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update profile: %w", err)
		}
	}

	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}
	return &user, nil
}

// PublicCard assembles the profile other users see, with rating and skills.
func (s *ProfileService) PublicCard(userID uuid.UUID) (*PublicProfile, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, ErrUserNotFound
	}

	card := &PublicProfile{
		ID:            user.ID,
		Name:          user.Name,
		Role:          user.Role,
		Municipality:  user.Municipality,
		Bio:           user.Bio,
		AvatarURL:     user.AvatarURL,
		CompletedJobs: user.CompletedJobs,
		Skills:        []string{},
	}

	var skills []models.Skill
	if err := s.db.Scopes(authctx.OwnedBy(userID)).Find(&skills).Error; err == nil {
		for _, sk := range skills {
			card.Skills = append(card.Skills, sk.Name)
		}
	}

	type ratingRow struct {
		Avg float64
		Cnt int
	}
	var rating ratingRow
	if err := s.db.Model(&models.Review{}).
		Select("COALESCE(AVG(rating), 0) as avg, COUNT(*) as cnt").
		Where("reviewee_id = ?", userID).
		Scan(&rating).Error; err == nil {
		card.Rating = rating.Avg
		card.ReviewCount = rating.Cnt
	}

	return card, nil
}

func (s *ProfileService) AddSkill(userID uuid.UUID, name string) (*models.Skill, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.New("skill name is required")
	}

	var existing models.Skill
	err := s.db.Scopes(authctx.OwnedBy(userID)).Where("name = ?", name).First(&existing).Error
	if err == nil {
		return &existing, nil
	}

	skill := models.Skill{
		ID:     uuid.New(),
		UserID: userID,
		Name:   name,
	}
	if err := s.db.Create(&skill).Error; err != nil {
		return nil, fmt.Errorf("failed to add skill: %w", err)
	}
	return &skill, nil
}

func (s *ProfileService) RemoveSkill(userID, skillID uuid.UUID) error {
	result := s.db.Scopes(authctx.OwnedBy(userID)).Where("id = ?", skillID).Delete(&models.Skill{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove skill: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrSkillNotFound
	}
	return nil
}

func (s *ProfileService) ListSkills(userID uuid.UUID) ([]models.Skill, error) {
	var skills []models.Skill
	if err := s.db.Scopes(authctx.OwnedBy(userID)).Order("created_at ASC").Find(&skills).Error; err != nil {
		return nil, fmt.Errorf("failed to list skills: %w", err)
	}
	return skills, nil
}
