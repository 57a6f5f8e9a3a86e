package handlers

import (
	"errors"
	"time"

	"wtms/internal/config"
	"wtms/internal/middleware"
	"wtms/internal/models"
	"wtms/pkg/logger"
	"wtms/pkg/validation"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler menyatukan service yang dipakai oleh semua endpoint v1.
type Handler struct {
	deps *config.Dependencies
	loc  *time.Location
}

func New(deps *config.Dependencies) *Handler {
	loc := deps.Location
	if loc == nil {
		loc = time.Local
	}
	return &Handler{deps: deps, loc: loc}
}

// statusFor memetakan error kind ke HTTP status.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, models.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, models.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, models.ErrUnauthorized):
		return fiber.StatusUnauthorized
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error, message string) error {
	status := statusFor(err)
	detail := err.Error()
	if status == fiber.StatusInternalServerError {
		logger.ErrorLogger.Error(message, zap.String("url", c.OriginalURL()), zap.Error(err))
		detail = "internal server error"
	} else {
		logger.RequestLogger.Info(message, zap.Int("status", status), zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  status,
		"error":   detail,
	})
}

func badRequest(c *fiber.Ctx, message string, err error) error {
	logger.RequestLogger.Info(message, zap.Error(err))
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  fiber.StatusBadRequest,
		"error":   err.Error(),
	})
}

// bind membaca JSON body lalu menjalankan validator tag. Pesan yang
// dikembalikan dipakai sebagai "message" di respons 400.
func bind(c *fiber.Ctx, dst interface{}) (string, error) {
	if err := c.BodyParser(dst); err != nil {
		return "Bad request", err
	}
	if err := validation.Validate.Struct(dst); err != nil {
		return "Validation error", err
	}
	return "", nil
}

func workerID(c *fiber.Ctx) (int64, error) {
	id, ok := middleware.WorkerID(c)
	if !ok {
		return 0, errors.New("worker id missing from token")
	}
	return id, nil
}

func unauthorized(c *fiber.Ctx, err error) error {
	logger.SecurityLogger.Warn("Missing worker id", zap.Error(err))
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": "Unauthorized",
		"success": false,
		"status":  fiber.StatusUnauthorized,
		"error":   err.Error(),
	})
}

func idParam(c *fiber.Ctx, name string) (int64, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
