package uploads

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fluswork/flus-backend/internal/authctx"
	"github.com/fluswork/flus-backend/internal/config"
	"github.com/fluswork/flus-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const maxPhotoSize = 10 * 1024 * 1024

var validPhotoTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/heic": true,
	"image/webp": true,
}

// UploadsFeature serves photo uploads used by chat messages and avatars.
type UploadsFeature struct {
	uploadDir string
}

func New(uploadDir string) *UploadsFeature {
	return &UploadsFeature{uploadDir: uploadDir}
}

func (f *UploadsFeature) ID() string { return "uploads" }

func (f *UploadsFeature) Models() []interface{} { return nil }

func (f *UploadsFeature) RegisterRoutes(router fiber.Router, db *gorm.DB, cfg *config.Config) {
	router.Post("/upload/photo", f.uploadPhoto)
}

// uploadPhoto handles POST /upload/photo with a multipart/form-data photo.
func (f *UploadsFeature) uploadPhoto(c *fiber.Ctx) error {
	userID, err := authctx.CurrentUserID(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
			Error: true, Message: "Unauthorized",
		})
	}

	file, err := c.FormFile("photo")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Photo file is required",
		})
	}

	if file.Size > maxPhotoSize {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Photo size must be less than 10MB",
		})
	}

	contentType := file.Header.Get("Content-Type")
	if !validPhotoTypes[contentType] {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid photo format. Only JPEG, PNG, HEIC and WebP are allowed",
		})
	}

	fileExt := filepath.Ext(file.Filename)
	if fileExt == "" {
		fileExt = ".jpg"
	}
	filename := fmt.Sprintf("%s_%s%s", userID.String()[:8], uuid.New().String()[:8], fileExt)

	photoDir := filepath.Join(f.uploadDir, "photos")
	if err := os.MkdirAll(photoDir, 0o755); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save photo",
		})
	}
	savePath := filepath.Join(photoDir, filename)
	if err := c.SaveFile(file, savePath); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error: true, Message: "Failed to save photo",
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"url": fmt.Sprintf("/uploads/photos/%s", filename),
	})
}
