package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"wtms/configs"
	v1 "wtms/internal/api/v1"
	"wtms/internal/auth"
	"wtms/internal/cache"
	"wtms/internal/config"
	"wtms/internal/middleware"
	"wtms/internal/repository"
	"wtms/internal/service"
	ws "wtms/internal/websocket"
	"wtms/pkg/database"
	"wtms/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg := loadConfig()
	logger.SystemLogger.Info("Starting application", zap.String("time", time.Now().Format(time.RFC3339)))

	ctx, stop := signal.NotifyContext(contextOrBackground(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.ConnectDB(ctx, cfg)
	if err != nil {
		logger.ErrorLogger.Error("Database connection error", zap.Error(err))
		return err
	}
	defer db.Close()
	logger.SystemLogger.Info("Database Connected")

	if err := repository.CreateTableIfNotExists(db); err != nil {
		return err
	}

	// Redis opsional: tanpa Redis profil dibaca langsung dari database.
	var profileCache cache.Cache = cache.Nop{}
	if rdb, err := database.ConnectRedis(ctx, cfg); err != nil {
		logger.SystemLogger.Warn("Redis unavailable, profile cache disabled", zap.Error(err))
	} else {
		defer rdb.Close()
		profileCache = cache.NewRedis(rdb)
	}

	hub := ws.NewHub(256)
	go hub.Run(ctx)

	issuer := auth.NewIssuer(cfg.JWTSecret, cfg.TokenTTL)
	deps := buildDependencies(cfg, repository.NewPostgres(db), profileCache, issuer, hub)

	app := fiber.New(fiber.Config{BodyLimit: 6 << 20})

	// Middleware
	app.Use(middleware.ErrorHandler())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: 1 * time.Minute,
	}))

	// Daftarkan route API v1
	v1.RegisterRoutes(app, deps, issuer)

	go func() {
		<-ctx.Done()
		logger.SystemLogger.Info("Shutting down")
		_ = app.ShutdownWithTimeout(10 * time.Second)
	}()

	addr := fmt.Sprintf(":%d", cfg.AppPort)
	logger.SystemLogger.Info("Application ready", zap.String("addr", addr))
	if err := app.Listen(addr); err != nil {
		logger.ErrorLogger.Error("Application failed to start", zap.Error(err))
		return err
	}
	return nil
}

func buildDependencies(cfg configs.Config, store repository.Store, c cache.Cache, issuer *auth.Issuer, hub *ws.Hub) *config.Dependencies {
	loc := cfg.Location()
	engine := service.NewEngine(store, service.WithLocation(loc))
	return &config.Dependencies{
		Engine:      engine,
		Submissions: service.NewManager(store, engine, hub),
		Identity:    service.NewIdentity(store, c, issuer, cfg.EncryptionKey, cfg.ProfileCacheTTL),
		Hub:         hub,
		UploadDir:   cfg.UploadDir,
		Location:    loc,
	}
}

// contextOrBackground dipakai subcommand yang dijalankan tanpa cobra context.
func contextOrBackground(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
