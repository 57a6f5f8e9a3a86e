package handlers

import (
	"errors"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"wtms/pkg/logger"

	"github.com/disintegration/imaging"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Ukuran maksimal sisi gambar profil setelah resize.
const profileImageSize = 512

// validateImage memeriksa ukuran dan jenis file gambar profil.
func validateImage(file *multipart.FileHeader) error {
	// Validasi ukuran file maksimal 5MB
	if file.Size > 5<<20 {
		return errors.New("file size exceeds the limit of 5MB")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowedExts := map[string]bool{".jpg": true, ".jpeg": true, ".png": true}
	if !allowedExts[ext] {
		return errors.New("only jpg, jpeg and png images are allowed")
	}

	contentType := file.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") {
		return errors.New("file must be an image")
	}
	return nil
}

// GetFile menyajikan gambar yang pernah diunggah.
func (h *Handler) GetFile(c *fiber.Ctx) error {
	// filepath.Base mencegah path traversal.
	filename := filepath.Base(c.Params("filename"))
	filePath := filepath.Join(h.deps.UploadDir, filename)
	if _, err := os.Stat(filePath); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "File not found",
			"success": false,
			"status":  fiber.StatusNotFound,
			"error":   "not found",
		})
	}
	return c.SendFile(filePath)
}

// UploadProfileImage menyimpan gambar profil (di-resize agar muat dalam
// 512x512) lalu mencatat namanya di profil worker.
func (h *Handler) UploadProfileImage(c *fiber.Ctx) error {
	id, err := workerID(c)
	if err != nil {
		return unauthorized(c, err)
	}

	file, err := c.FormFile("profile_image")
	if err != nil {
		return badRequest(c, "No image uploaded", err)
	}
	if err := validateImage(file); err != nil {
		return badRequest(c, "Invalid image", err)
	}

	src, err := file.Open()
	if err != nil {
		return respondError(c, err, "Error reading image")
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return badRequest(c, "Invalid image", err)
	}
	img = imaging.Fit(img, profileImageSize, profileImageSize, imaging.Lanczos)

	if err := os.MkdirAll(h.deps.UploadDir, 0o755); err != nil {
		return respondError(c, err, "Error creating upload directory")
	}
	newFilename := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
	if err := imaging.Save(img, filepath.Join(h.deps.UploadDir, newFilename)); err != nil {
		return respondError(c, err, "Error saving image")
	}

	worker, err := h.deps.Identity.SetProfileImage(c.UserContext(), id, newFilename)
	if err != nil {
		_ = os.Remove(filepath.Join(h.deps.UploadDir, newFilename))
		return respondError(c, err, "Error updating profile image")
	}

	logger.AuditLogger.Info("Profile image uploaded", zap.Int64("worker_id", id), zap.String("filename", newFilename))
	return c.JSON(fiber.Map{
		"message":       "Profile image uploaded successfully",
		"success":       true,
		"status":        fiber.StatusOK,
		"profile_image": newFilename,
		"worker":        worker,
	})
}
