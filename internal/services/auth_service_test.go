package services

import (
	"testing"
	"time"

	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthService(t *testing.T) (*AuthService, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	cfg := &config.Config{SessionExpiry: time.Hour, SessionCookie: "flus_session"}
	return NewAuthService(db, cfg), db
}

func validRegistration() *dto.RegisterRequest {
	return &dto.RegisterRequest{
		Email:        "Ola@Example.NO",
		Password:     "hemmelig123",
		Name:         "Ola Nordmann",
		Role:         models.RoleWorker,
		Municipality: "Bergen",
	}
}

func TestRegisterValidation(t *testing.T) {
	service, _ := newAuthService(t)

	req := validRegistration()
	req.Password = "kort"
	_, _, err := service.Register(req)
	assert.Error(t, err)

	req = validRegistration()
	req.Name = "  "
	_, _, err = service.Register(req)
	assert.Error(t, err)

	req = validRegistration()
	req.Role = "admin"
	_, _, err = service.Register(req)
	assert.Error(t, err)
}

func TestRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	service, db := newAuthService(t)

	user, token, err := service.Register(validRegistration())
	require.NoError(t, err)
	assert.Equal(t, "ola@example.no", user.Email)
	assert.NotEqual(t, "hemmelig123", user.Password)
	assert.NotEmpty(t, token)

	// The raw token never hits the table
	var session models.Session
	require.NoError(t, db.First(&session, "user_id = ?", user.ID).Error)
	assert.NotEqual(t, token, session.TokenHash)

	_, _, err = service.Register(validRegistration())
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLoginAndResolveSession(t *testing.T) {
	service, _ := newAuthService(t)
	registered, _, err := service.Register(validRegistration())
	require.NoError(t, err)

	_, _, err = service.Login(&dto.LoginRequest{Email: "ola@example.no", Password: "feilpassord"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = service.Login(&dto.LoginRequest{Email: "ukjent@example.no", Password: "hemmelig123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	user, token, err := service.Login(&dto.LoginRequest{Email: "OLA@example.no", Password: "hemmelig123"})
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	resolved, err := service.ResolveSession(token)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, resolved.ID)

	_, err = service.ResolveSession("ikke-en-gyldig-token")
	assert.ErrorIs(t, err, ErrInvalidSession)
}

func TestExpiredSessionIsDeletedOnSight(t *testing.T) {
	service, db := newAuthService(t)
	user, token, err := service.Register(validRegistration())
	require.NoError(t, err)

	require.NoError(t, db.Model(&models.Session{}).Where("user_id = ?", user.ID).
		Update("expires_at", time.Now().Add(-time.Minute)).Error)

	_, err = service.ResolveSession(token)
	assert.ErrorIs(t, err, ErrInvalidSession)

	var count int64
	db.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestLogoutDeletesSession(t *testing.T) {
	service, db := newAuthService(t)
	user, token, err := service.Register(validRegistration())
	require.NoError(t, err)

	require.NoError(t, service.Logout(token))

	var count int64
	db.Model(&models.Session{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	// Unknown tokens are a no-op
	require.NoError(t, service.Logout("finnes-ikke"))
}
