package cv

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrEntryNotFound = errors.New("cv entry not found")

	// ErrRendererUnavailable means no PDF collaborator is wired in.
	ErrRendererUnavailable = errors.New("pdf renderer unavailable")
)

// Renderer is the external PDF collaborator. FLUS only defines the
// interface; rendering happens outside this service.
type Renderer interface {
	Render(user *models.User, entries []models.CVEntry, skills []models.Skill) ([]byte, error)
}

// noopRenderer is the default when no collaborator is configured.
type noopRenderer struct{}

func (noopRenderer) Render(*models.User, []models.CVEntry, []models.Skill) ([]byte, error) {
	return nil, ErrRendererUnavailable
}

type EntryRequest struct {
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Organization string     `json:"organization"`
	FromDate     *time.Time `json:"from_date"`
	ToDate       *time.Time `json:"to_date"`
	Description  string     `json:"description"`
}

type CVResponse struct {
	Entries []models.CVEntry `json:"entries"`
	Skills  []models.Skill   `json:"skills"`
}

type CVService struct {
	db       *gorm.DB
	renderer Renderer
}

func NewCVService(db *gorm.DB, renderer Renderer) *CVService {
	if renderer == nil {
		renderer = noopRenderer{}
	}
	return &CVService{db: db, renderer: renderer}
}

func (s *CVService) AddEntry(userID uuid.UUID, req *EntryRequest) (*models.CVEntry, error) {
	if req.Type != models.CVEntryExperience && req.Type != models.CVEntryEducation {
		return nil, errors.New("type must be experience or education")
	}
	if strings.TrimSpace(req.Title) == "" {
		return nil, errors.New("title is required")
	}

	entry := models.CVEntry{
		ID:           uuid.New(),
		UserID:       userID,
		Type:         req.Type,
		Title:        strings.TrimSpace(req.Title),
		Organization: req.Organization,
		FromDate:     req.FromDate,
		ToDate:       req.ToDate,
		Description:  req.Description,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, fmt.Errorf("failed to add cv entry: %w", err)
	}
	return &entry, nil
}

func (s *CVService) UpdateEntry(userID, entryID uuid.UUID, req *EntryRequest) (*models.CVEntry, error) {
	var entry models.CVEntry
	if err := s.db.Scopes(authctx.OwnedBy(userID)).First(&entry, "id = ?", entryID).Error; err != nil {
		return nil, ErrEntryNotFound
	}

	updates := map[string]interface{}{
		"organization": req.Organization,
		"description":  req.Description,
	}
	if strings.TrimSpace(req.Title) != "" {
		updates["title"] = strings.TrimSpace(req.Title)
	}
	if req.Type == models.CVEntryExperience || req.Type == models.CVEntryEducation {
		updates["type"] = req.Type
	}
	if req.FromDate != nil {
		updates["from_date"] = *req.FromDate
	}
	if req.ToDate != nil {
		updates["to_date"] = *req.ToDate
	}

	if err := s.db.Model(&entry).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("failed to update cv entry: %w", err)
	}
	return &entry, nil
}

func (s *CVService) DeleteEntry(userID, entryID uuid.UUID) error {
	result := s.db.Scopes(authctx.OwnedBy(userID)).Where("id = ?", entryID).Delete(&models.CVEntry{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete cv entry: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrEntryNotFound
	}
	return nil
}

func (s *CVService) Get(userID uuid.UUID) (*CVResponse, error) {
	resp := &CVResponse{Entries: []models.CVEntry{}, Skills: []models.Skill{}}

	if err := s.db.Scopes(authctx.OwnedBy(userID)).
		Order("from_date DESC").Find(&resp.Entries).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch cv entries: %w", err)
	}
	if err := s.db.Scopes(authctx.OwnedBy(userID)).
		Order("created_at ASC").Find(&resp.Skills).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch skills: %w", err)
	}
	return resp, nil
}

// RenderPDF hands the CV to the external renderer collaborator.
func (s *CVService) RenderPDF(userID uuid.UUID) ([]byte, error) {
	var user models.User
	if err := s.db.First(&user, "id = ?", userID).Error; err != nil {
		return nil, err
	}
	cvData, err := s.Get(userID)
	if err != nil {
		return nil, err
	}
	return s.renderer.Render(&user, cvData.Entries, cvData.Skills)
}
