package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/middleware"
	"github.com/fluswork/flus-backend/internal/models"
	"github.com/fluswork/flus-backend/internal/services"
	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newAuthApp(t *testing.T) (*fiber.App, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.User{}, &models.Session{}))

	cfg := &config.Config{SessionExpiry: time.Hour, SessionCookie: "flus_session"}
	authService := services.NewAuthService(db, cfg)
	handler := NewAuthHandler(authService, cfg)

	app := fiber.New()
	app.Post("/api/auth/register", handler.Register)
	app.Post("/api/auth/login", handler.Login)
	app.Post("/api/auth/logout", middleware.SessionProtected(cfg, authService), handler.Logout)
	app.Get("/api/auth/me", middleware.SessionProtected(cfg, authService), handler.Me)
	return app, db
}

func sessionCookie(resp *http.Response) *http.Cookie {
	for _, c := range resp.Cookies() {
		if c.Name == "flus_session" {
			return c
		}
	}
	return nil
}

func registerBody() *strings.Reader {
	return strings.NewReader(`{
		"email": "ola@example.no",
		"password": "hemmelig123",
		"name": "Ola Nordmann",
		"role": "worker",
		"municipality": "Bergen"
	}`)
}

func TestRegisterSetsHTTPOnlyCookie(t *testing.T) {
	app, _ := newAuthApp(t)

	req := httptest.NewRequest("POST", "/api/auth/register", registerBody())
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)
	assert.NotEmpty(t, cookie.Value)

	// The token never appears in the response body
	var body map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	raw, _ := json.Marshal(body)
	assert.NotContains(t, string(raw), cookie.Value)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	app, _ := newAuthApp(t)

	req := httptest.NewRequest("POST", "/api/auth/register", registerBody())
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	req = httptest.NewRequest("POST", "/api/auth/register", registerBody())
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusConflict, resp.StatusCode)
}

func TestLoginAndMeRoundTrip(t *testing.T) {
	app, _ := newAuthApp(t)

	req := httptest.NewRequest("POST", "/api/auth/register", registerBody())
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	req = httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email": "ola@example.no", "password": "hemmelig123"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var me struct {
		User struct {
			Email string `json:"email"`
			Name  string `json:"name"`
		} `json:"user"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&me))
	assert.Equal(t, "ola@example.no", me.User.Email)
	assert.Equal(t, "Ola Nordmann", me.User.Name)
}

func TestLoginWrongPassword(t *testing.T) {
	app, _ := newAuthApp(t)

	req := httptest.NewRequest("POST", "/api/auth/register", registerBody())
	req.Header.Set("Content-Type", "application/json")
	_, err := app.Test(req)
	require.NoError(t, err)

	req = httptest.NewRequest("POST", "/api/auth/login",
		strings.NewReader(`{"email": "ola@example.no", "password": "feil"}`))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestLogoutInvalidatesSession(t *testing.T) {
	app, db := newAuthApp(t)

	req := httptest.NewRequest("POST", "/api/auth/register", registerBody())
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	cookie := sessionCookie(resp)
	require.NotNil(t, cookie)

	req = httptest.NewRequest("POST", "/api/auth/logout", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&models.Session{}).Count(&count)
	assert.Equal(t, int64(0), count)

	req = httptest.NewRequest("GET", "/api/auth/me", nil)
	req.AddCookie(cookie)
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
