// Package main is the entrypoint for the Health Wallet API server.
package main

import (
	"context"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/healthwallet/healthwallet/internal/blob"
	"github.com/healthwallet/healthwallet/internal/cache"
	"github.com/healthwallet/healthwallet/internal/config"
	"github.com/healthwallet/healthwallet/internal/handler"
	"github.com/healthwallet/healthwallet/internal/insights"
	"github.com/healthwallet/healthwallet/internal/middleware"
	"github.com/healthwallet/healthwallet/internal/repository"
	"github.com/healthwallet/healthwallet/internal/server"
	"github.com/healthwallet/healthwallet/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL, cfg.StoreTimeout)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		os.Exit(1)
	}
	defer cacheClient.Close()
	logger.Info("connected to Redis")

	// Initialize object store for uploaded files
	fileStore, err := blob.New(ctx, blob.Config{
		Endpoint:  cfg.BlobEndpoint,
		AccessKey: cfg.BlobAccessKey,
		SecretKey: cfg.BlobSecretKey,
		Bucket:    cfg.BlobBucket,
		UseSSL:    cfg.BlobUseSSL,
	})
	if err != nil {
		logger.Error(
			"failed to connect to object store",
			slog.String("error", sanitizeError(err, cfg.BlobSecretKey)),
			slog.String("endpoint", cfg.BlobEndpoint),
		)
		os.Exit(1)
	}
	logger.Info("connected to object store", "bucket", cfg.BlobBucket)

	// Initialize services
	insightClient := insights.New(cfg.InsightURL, cfg.InsightAPIKey, cfg.InsightTimeout)
	userService := service.NewUserService(repo, []byte(cfg.TokenSecret), cfg.TokenValidity)
	reportService := service.NewReportService(repo)
	shareService := service.NewShareService(repo)
	insightService := service.NewInsightService(reportService, insightClient, cacheClient, logger)

	// Initialize handlers
	h := handler.New()
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	authHandler := handler.NewAuthHandler(userService, logger)
	reportHandler := handler.NewReportHandler(reportService, insightService, fileStore, cfg.MaxUploadSize, logger)
	shareHandler := handler.NewShareHandler(shareService, logger)
	insightHandler := handler.NewInsightHandler(insightService)
	fileHandler := handler.NewFileHandler(reportService, fileStore, logger)

	// Setup router
	r := setupRouter(h, healthHandler, authHandler, reportHandler, shareHandler, insightHandler, fileHandler, cacheClient, cfg, logger)

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
	)

	if err := srv.Run(); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	level := parseLogLevel(cfg.LogLevel)

	opts := &slog.HandlerOptions{
		Level: level,
	}

	if cfg.LogFormat == "json" {
		h = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		h = slog.NewTextHandler(os.Stdout, opts)
	}

	logger := slog.New(h)
	slog.SetDefault(logger)

	return logger
}

// parseLogLevel converts string log level to slog.Level.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(
	h *handler.Handler,
	healthHandler *handler.HealthHandler,
	authHandler *handler.AuthHandler,
	reportHandler *handler.ReportHandler,
	shareHandler *handler.ShareHandler,
	insightHandler *handler.InsightHandler,
	fileHandler *handler.FileHandler,
	cacheClient *cache.Cache,
	cfg *config.Config,
	logger *slog.Logger,
) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))

	// Health endpoints (no auth required)
	r.Get("/healthz", healthHandler.Healthz)
	r.Get("/readyz", healthHandler.Readyz)

	// Root info endpoint
	r.Get("/", h.Hello)

	authCfg := middleware.AuthConfig{
		Logger:      logger,
		TokenSecret: []byte(cfg.TokenSecret),
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:  logger,
		Cache:   cacheClient,
		Enabled: cfg.RateLimitAuthEnabled,
		RPS:     cfg.RateLimitAuthRPS,
		Burst:   cfg.RateLimitAuthBurst,
	}

	// Public auth endpoints, rate limited per IP
	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimitAuth(rateLimitCfg))
		r.Post("/api/register", authHandler.Register)
		r.Post("/api/login", authHandler.Login)
	})

	// Authenticated API
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(authCfg))

		r.Post("/api/reports/upload", reportHandler.Upload)
		r.Get("/api/reports", reportHandler.List)
		r.Get("/api/vitals", reportHandler.Vitals)

		r.Post("/api/share", shareHandler.Share)
		r.Get("/api/shares", shareHandler.List)
		r.Delete("/api/shares/{id}", shareHandler.Revoke)

		r.Get("/api/insight", insightHandler.Get)

		r.Get("/uploads/{filename}", fileHandler.Download)
	})

	// 404 and 405 handlers
	r.NotFound(h.NotFound)
	r.MethodNotAllowed(h.MethodNotAllowed)

	return r
}

var passwordPattern = regexp.MustCompile(`(?i)password=[^\s]+`)

func redactURL(raw string) string {
	if raw == "" {
		return ""
	}

	parsed, err := url.Parse(raw)
	if err != nil {
		return "[redacted]"
	}

	if parsed.User != nil {
		username := parsed.User.Username()
		if username == "" {
			parsed.User = url.User("redacted")
		} else {
			parsed.User = url.User(username)
		}
	}

	return parsed.String()
}

func sanitizeError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}

	msg := err.Error()
	for _, secret := range secrets {
		if secret == "" {
			continue
		}
		redacted := redactURL(secret)
		if redacted == "" {
			redacted = "[redacted]"
		}
		msg = strings.ReplaceAll(msg, secret, redacted)
	}

	return passwordPattern.ReplaceAllString(msg, "password=redacted")
}
