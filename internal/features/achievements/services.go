package achievements

import (
	"log/slog"

	"github.com/fluswork/flus-backend/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Badge thresholds. Fixed by product, not runtime-configurable.
const (
	CategoryBadgeTarget = 10
	CuratorThreshold    = 150
)

type LevelThreshold struct {
	XP   int    `json:"xp"`
	Name string `json:"name"`
}

// Level thresholds, lowest first.
var levels = []LevelThreshold{
	{1, "nykommer"},
	{5, "aktiv"},
	{10, "pålitelig"},
	{25, "ekspert"},
	{50, "mester"},
}

// LevelTable exposes the thresholds for the public metadata endpoint.
func LevelTable() []LevelThreshold {
	out := make([]LevelThreshold, len(levels))
	copy(out, levels)
	return out
}

type CategoryProgress struct {
	Category string `json:"category"`
	Count    int    `json:"count"`
	Target   int    `json:"target"`
}

type AchievementResponse struct {
	XP              int                `json:"xp"`
	Level           string             `json:"level"`
	Badges          []string           `json:"badges"`
	Categories      []CategoryProgress `json:"categories"`
	CuratorUnlocked bool               `json:"curator_unlocked"`
}

// AchievementService derives XP and badges from completed applications.
// It keeps no state of its own and recomputes on every read.
type AchievementService struct {
	db *gorm.DB
}

func NewAchievementService(db *gorm.DB) *AchievementService {
	return &AchievementService{db: db}
}

// Compute counts the worker's fullført applications per job category.
// On store failure it returns the zeroed structure: achievements are not
// worth failing a page load over.
func (s *AchievementService) Compute(workerID uuid.UUID) *AchievementResponse {
	resp := &AchievementResponse{
		Badges:     []string{},
		Categories: []CategoryProgress{},
	}

	type categoryRow struct {
		Category string
		Cnt      int
	}
	var rows []categoryRow
	err := s.db.Model(&models.Application{}).
		Select("jobs.category as category, COUNT(*) as cnt").
		Joins("JOIN jobs ON jobs.id = applications.job_id").
		Where("applications.applicant_id = ? AND applications.status = ?",
			workerID, models.ApplicationStatusCompleted).
		Group("jobs.category").
		Order("cnt DESC").
		Scan(&rows).Error
	if err != nil {
		slog.Error("achievement lookup failed, returning zeroed result", "error", err, "user_id", workerID.String())
		return resp
	}

	for _, row := range rows {
		resp.XP += row.Cnt
		resp.Categories = append(resp.Categories, CategoryProgress{
			Category: row.Category,
			Count:    row.Cnt,
			Target:   CategoryBadgeTarget,
		})
		if row.Cnt >= CategoryBadgeTarget {
			resp.Badges = append(resp.Badges, row.Category+"-mester")
		}
		if row.Cnt >= CuratorThreshold {
			resp.CuratorUnlocked = true
		}
	}

	for _, lvl := range levels {
		if resp.XP >= lvl.XP {
			resp.Level = lvl.Name
			resp.Badges = append(resp.Badges, lvl.Name)
		}
	}

	return resp
}

// CuratorUnlocked reports whether any single category has crossed the
// curator-contact threshold.
func (s *AchievementService) CuratorUnlocked(workerID uuid.UUID) bool {
	return s.Compute(workerID).CuratorUnlocked
}
