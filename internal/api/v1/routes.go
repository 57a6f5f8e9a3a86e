package v1

import (
	"wtms/internal/api/v1/handlers"
	"wtms/internal/auth"
	"wtms/internal/config"
	"wtms/internal/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(app *fiber.App, deps *config.Dependencies, issuer *auth.Issuer) {
	h := handlers.New(deps)
	requireToken := middleware.UseToken(issuer)

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api/v1")

	// Auth
	api.Post("/register", h.Register)
	api.Post("/login", h.Login)

	// File
	api.Get("/uploads/:filename", h.GetFile)

	// Profile
	profile := api.Group("/profile", requireToken)
	profile.Get("/", h.GetProfile)
	profile.Put("/", h.UpdateProfile)
	profile.Post("/image", h.UploadProfileImage)

	// Works
	works := api.Group("/works", requireToken)
	works.Get("/", h.ListWorks)
	works.Post("/:id/submission", h.SubmitWork)

	// Submissions
	submissions := api.Group("/submissions", requireToken)
	submissions.Get("/", h.ListSubmissions)
	submissions.Get("/export", h.ExportSubmissions)
	submissions.Put("/:id", h.EditSubmission)

	// WebSocket
	api.Get("/ws", handlers.UpgradeWS, requireToken, h.Stream())
}
