package handlers

import (
	"wtms/internal/service"
	"wtms/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Register membuat akun worker baru.
func (h *Handler) Register(c *fiber.Ctx) error {
	var req service.RegisterInput
	if msg, err := bind(c, &req); err != nil {
		return badRequest(c, msg, err)
	}

	worker, err := h.deps.Identity.Register(c.UserContext(), req)
	if err != nil {
		return respondError(c, err, "Registration failed")
	}

	logger.AuditLogger.Info("User registered", zap.Int64("worker_id", worker.ID))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Registration successful",
		"success": true,
		"status":  fiber.StatusCreated,
		"worker":  worker,
	})
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login memverifikasi kredensial dan mengembalikan bearer token.
func (h *Handler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if msg, err := bind(c, &req); err != nil {
		return badRequest(c, msg, err)
	}

	worker, token, err := h.deps.Identity.Login(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err, "Login failed")
	}

	return c.JSON(fiber.Map{
		"message": "Login successful",
		"success": true,
		"status":  fiber.StatusOK,
		"token":   token,
		"worker":  worker,
	})
}
