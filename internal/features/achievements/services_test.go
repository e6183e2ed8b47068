package achievements

import (
	"fmt"
	"testing"

	"github.com/fluswork/flus-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Job{}, &models.Application{}))
	return db
}

// seedCompleted creates n completed jobs in the category with matching
// fullført applications for the worker.
func seedCompleted(t *testing.T, db *gorm.DB, workerID, employerID uuid.UUID, category string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		job := models.Job{
			ID: uuid.New(), EmployerID: employerID,
			Title: fmt.Sprintf("%s #%d", category, i), Description: "d",
			Category: category, Pay: 200, DurationMinutes: 30,
			Status: models.JobStatusCompleted, SelectedWorkerID: &workerID,
		}
		require.NoError(t, db.Create(&job).Error)
		app := models.Application{
			ID: uuid.New(), JobID: job.ID, ApplicantID: workerID,
			Status: models.ApplicationStatusCompleted,
		}
		require.NoError(t, db.Create(&app).Error)
	}
}

func TestComputeEmpty(t *testing.T) {
	db := openTestDB(t)
	service := NewAchievementService(db)

	resp := service.Compute(uuid.New())
	assert.Equal(t, 0, resp.XP)
	assert.Empty(t, resp.Level)
	assert.Empty(t, resp.Badges)
	assert.Empty(t, resp.Categories)
	assert.False(t, resp.CuratorUnlocked)
}

func TestComputeLevelThresholds(t *testing.T) {
	db := openTestDB(t)
	service := NewAchievementService(db)
	worker := uuid.New()
	employer := uuid.New()

	seedCompleted(t, db, worker, employer, "hagearbeid", 1)
	resp := service.Compute(worker)
	assert.Equal(t, 1, resp.XP)
	assert.Equal(t, "nykommer", resp.Level)
	assert.Equal(t, []string{"nykommer"}, resp.Badges)

	seedCompleted(t, db, worker, employer, "hagearbeid", 4)
	resp = service.Compute(worker)
	assert.Equal(t, 5, resp.XP)
	assert.Equal(t, "aktiv", resp.Level)
	assert.Contains(t, resp.Badges, "nykommer")
	assert.Contains(t, resp.Badges, "aktiv")
}

func TestComputeCategoryBadge(t *testing.T) {
	db := openTestDB(t)
	service := NewAchievementService(db)
	worker := uuid.New()
	employer := uuid.New()

	seedCompleted(t, db, worker, employer, "rengjøring", CategoryBadgeTarget-1)
	resp := service.Compute(worker)
	assert.NotContains(t, resp.Badges, "rengjøring-mester")
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, CategoryBadgeTarget-1, resp.Categories[0].Count)
	assert.Equal(t, CategoryBadgeTarget, resp.Categories[0].Target)

	seedCompleted(t, db, worker, employer, "rengjøring", 1)
	resp = service.Compute(worker)
	assert.Contains(t, resp.Badges, "rengjøring-mester")
	assert.Equal(t, "pålitelig", resp.Level)
}

func TestComputeCountsOnlyCompletedWork(t *testing.T) {
	db := openTestDB(t)
	service := NewAchievementService(db)
	worker := uuid.New()
	employer := uuid.New()

	seedCompleted(t, db, worker, employer, "hagearbeid", 2)

	// Pending and rejected applications contribute nothing
	job := models.Job{
		ID: uuid.New(), EmployerID: employer, Title: "t", Description: "d",
		Category: "hagearbeid", Pay: 200, DurationMinutes: 30, Status: models.JobStatusOpen,
	}
	require.NoError(t, db.Create(&job).Error)
	require.NoError(t, db.Create(&models.Application{
		ID: uuid.New(), JobID: job.ID, ApplicantID: worker, Status: models.ApplicationStatusSent,
	}).Error)

	resp := service.Compute(worker)
	assert.Equal(t, 2, resp.XP)
}

func TestCuratorUnlockedThreshold(t *testing.T) {
	db := openTestDB(t)
	service := NewAchievementService(db)
	worker := uuid.New()
	employer := uuid.New()

	seedCompleted(t, db, worker, employer, "snømåking", CuratorThreshold-1)
	assert.False(t, service.CuratorUnlocked(worker))

	seedCompleted(t, db, worker, employer, "snømåking", 1)
	assert.True(t, service.CuratorUnlocked(worker))
}

func TestLevelTableIsCopied(t *testing.T) {
	table := LevelTable()
	require.NotEmpty(t, table)
	table[0].Name = "mutert"
	assert.Equal(t, "nykommer", LevelTable()[0].Name)
}
