package reviews

import (
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
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Job{}, &models.Review{}))
	return db
}

func seedUsers(t *testing.T, db *gorm.DB) (models.User, models.User) {
	t.Helper()
	reviewer := models.User{ID: uuid.New(), Email: "kari@example.no", Name: "Kari", Role: models.RoleEmployer}
	reviewee := models.User{ID: uuid.New(), Email: "ola@example.no", Name: "Ola", Role: models.RoleWorker}
	require.NoError(t, db.Create(&reviewer).Error)
	require.NoError(t, db.Create(&reviewee).Error)
	return reviewer, reviewee
}

func TestCreateReviewValidation(t *testing.T) {
	db := openTestDB(t)
	service := NewReviewService(db)
	reviewer, reviewee := seedUsers(t, db)

	_, err := service.Create(reviewer.ID, &CreateReviewRequest{RevieweeID: "ikke-uuid", Rating: 5})
	assert.Error(t, err)

	_, err = service.Create(reviewer.ID, &CreateReviewRequest{RevieweeID: reviewer.ID.String(), Rating: 5})
	assert.ErrorIs(t, err, ErrSelfReview)

	_, err = service.Create(reviewer.ID, &CreateReviewRequest{RevieweeID: reviewee.ID.String(), Rating: 0})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = service.Create(reviewer.ID, &CreateReviewRequest{RevieweeID: reviewee.ID.String(), Rating: 6})
	assert.ErrorIs(t, err, ErrInvalidRating)

	_, err = service.Create(reviewer.ID, &CreateReviewRequest{RevieweeID: uuid.New().String(), Rating: 4})
	assert.ErrorIs(t, err, ErrRevieweeUnknown)
}

func TestDuplicateReviewPerEngagement(t *testing.T) {
	db := openTestDB(t)
	service := NewReviewService(db)
	reviewer, reviewee := seedUsers(t, db)
	jobID := uuid.New()

	_, err := service.Create(reviewer.ID, &CreateReviewRequest{
		RevieweeID: reviewee.ID.String(), JobID: jobID.String(), Rating: 5, Comment: "Utmerket jobb",
	})
	require.NoError(t, err)

	// Same engagement again
	_, err = service.Create(reviewer.ID, &CreateReviewRequest{
		RevieweeID: reviewee.ID.String(), JobID: jobID.String(), Rating: 3,
	})
	assert.ErrorIs(t, err, ErrDuplicateReview)

	// A different job is a different engagement
	_, err = service.Create(reviewer.ID, &CreateReviewRequest{
		RevieweeID: reviewee.ID.String(), JobID: uuid.New().String(), Rating: 4,
	})
	assert.NoError(t, err)
}

func TestDuplicateReviewWithoutJob(t *testing.T) {
	db := openTestDB(t)
	service := NewReviewService(db)
	reviewer, reviewee := seedUsers(t, db)

	_, err := service.Create(reviewer.ID, &CreateReviewRequest{RevieweeID: reviewee.ID.String(), Rating: 4})
	require.NoError(t, err)

	_, err = service.Create(reviewer.ID, &CreateReviewRequest{RevieweeID: reviewee.ID.String(), Rating: 2})
	assert.ErrorIs(t, err, ErrDuplicateReview)
}

func TestListForUserCarriesAuthorNames(t *testing.T) {
	db := openTestDB(t)
	service := NewReviewService(db)
	reviewer, reviewee := seedUsers(t, db)

	_, err := service.Create(reviewer.ID, &CreateReviewRequest{
		RevieweeID: reviewee.ID.String(), Rating: 5, Comment: "Anbefales",
	})
	require.NoError(t, err)

	list, err := service.ListForUser(reviewee.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, reviewer.Name, list[0].AuthorName)
	assert.Equal(t, 5, list[0].Review.Rating)

	// Nobody has reviewed the reviewer
	list, err = service.ListForUser(reviewer.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}
