package middleware

import (
	"strings"

	"wtms/internal/auth"
	"wtms/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// LocalWorkerID adalah key c.Locals tempat worker id dari token disimpan.
const LocalWorkerID = "workerID"

func unauthorized(c *fiber.Ctx, message string) error {
	logger.SecurityLogger.Warn("Unauthorized request",
		zap.String("reason", message),
		zap.String("url", c.OriginalURL()),
		zap.String("ip", c.IP()),
	)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"message": message,
		"success": false,
		"status":  fiber.StatusUnauthorized,
		"error":   "unauthorized",
	})
}

func UseToken(issuer *auth.Issuer) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Browser tidak bisa mengirim header saat upgrade websocket.
			if tok := c.Query("token"); tok != "" {
				authHeader = "Bearer " + tok
			} else {
				return unauthorized(c, "No token provided")
			}
		}
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return unauthorized(c, "Invalid token format")
		}
		workerID, err := issuer.Parse(parts[1])
		if err != nil {
			return unauthorized(c, "Invalid token")
		}
		c.Locals(LocalWorkerID, workerID)
		return c.Next()
	}
}

// WorkerID mengambil worker id yang diset UseToken.
func WorkerID(c *fiber.Ctx) (int64, bool) {
	id, ok := c.Locals(LocalWorkerID).(int64)
	return id, ok && id > 0
}
