package middleware

import (
	"fmt"
	"runtime/debug"
	"strconv"
	"time"

	"wtms/pkg/logger"
	"wtms/pkg/telemetry"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"go.uber.org/zap"
)

// ErrorHandler menangkap panic menjadi respons 500 dan mencatat setiap request.
func ErrorHandler() fiber.Handler {
	return func(c *fiber.Ctx) (err error) {
		start := time.Now()
		defer func() {
			if r := recover(); r != nil {
				errMsg := fmt.Sprintf("Recovered from panic: %v", r)
				logger.ErrorLogger.Error(errMsg, zap.String("stack", string(debug.Stack())))
				err = c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
					"message": "Internal server error",
					"success": false,
					"status":  fiber.StatusInternalServerError,
					"error":   "internal",
				})
			}
			status := c.Response().StatusCode()
			// String dari fasthttp dipakai ulang; label metric harus disalin.
			method := utils.CopyString(c.Method())
			telemetry.HTTPRequests.WithLabelValues(method, strconv.Itoa(status)).Inc()
			logger.RequestLogger.Info("Request handled",
				zap.String("method", method),
				zap.String("url", c.OriginalURL()),
				zap.Int("status", status),
				zap.Duration("latency", time.Since(start)),
			)
		}()
		return c.Next()
	}
}
