// Package main is the entrypoint for the Clientbook API server.
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

	"github.com/clientbook/clientbook/internal/auth"
	"github.com/clientbook/clientbook/internal/cache"
	"github.com/clientbook/clientbook/internal/config"
	"github.com/clientbook/clientbook/internal/handler"
	"github.com/clientbook/clientbook/internal/metrics"
	"github.com/clientbook/clientbook/internal/middleware"
	"github.com/clientbook/clientbook/internal/repository"
	"github.com/clientbook/clientbook/internal/server"
	"github.com/clientbook/clientbook/internal/service"
)

func main() {
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := initLogger(cfg)

	// Initialize database
	repo, err := repository.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Error(
			"failed to connect to database",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("connected to database")

	if cfg.AutoMigrate {
		if err := repo.Migrate(ctx); err != nil {
			logger.Error("failed to run migrations", slog.String("error", sanitizeError(err, cfg.DatabaseURL)))
			repo.Close()
			os.Exit(1)
		}
		logger.Info("database migrations applied")
	}

	// Initialize cache
	cacheClient, err := cache.New(ctx, cfg.RedisURL)
	if err != nil {
		logger.Error(
			"failed to connect to Redis",
			slog.String("error", sanitizeError(err, cfg.RedisURL)),
			slog.String("redis_url", redactURL(cfg.RedisURL)),
		)
		repo.Close()
		os.Exit(1)
	}
	cacheClient = cacheClient.WithProfileTTL(cfg.ProfileCacheTTL)
	logger.Info("connected to Redis")

	// Session tokens
	secret := cfg.JWTSecret
	if secret == "" {
		secret, err = auth.GenerateSecret(auth.MinSecretLength)
		if err != nil {
			logger.Error("failed to generate JWT secret", "error", err)
			os.Exit(1)
		}
		logger.Warn("JWT_SECRET not set, using a random per-process secret; tokens will not survive a restart")
	}
	tokens, err := auth.NewTokenManager(secret, cfg.TokenTTL, cfg.JWTIssuer)
	if err != nil {
		logger.Error("failed to initialize token manager", "error", err)
		os.Exit(1)
	}

	// Initialize services
	recorder := metrics.NewInMemory()
	deps := routerDeps{
		auth:     service.NewAuthService(repo, cacheClient, tokens, recorder, logger),
		clients:  service.NewClientService(repo, recorder),
		meetings: service.NewMeetingService(repo, repo, recorder),
		health:   handler.NewHealthHandler(repo, cacheClient, logger),
		metrics:  handler.NewMetricsHandler(recorder),
	}

	r := setupRouter(deps, cfg, logger)

	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)
	srv.OnShutdown("postgres", func(context.Context) error {
		repo.Close()
		return nil
	})
	srv.OnShutdown("redis", func(context.Context) error {
		return cacheClient.Close()
	})

	logger.Info("starting server",
		"port", cfg.AppPort,
		"env", cfg.AppEnv,
		"token_ttl", cfg.TokenTTL,
	)

	if err := srv.Run(ctx); err != nil {
		logger.Error("server error", "error", err)
		os.Exit(1)
	}
}

// initLogger initializes the slog logger based on configuration.
func initLogger(cfg *config.Config) *slog.Logger {
	var h slog.Handler

	opts := &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
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

// routerDeps bundles the services and handlers served by the router.
type routerDeps struct {
	auth     *service.AuthService
	clients  *service.ClientService
	meetings *service.MeetingService
	health   *handler.HealthHandler
	metrics  *handler.MetricsHandler
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps, cfg *config.Config, logger *slog.Logger) *chi.Mux {
	h := handler.New()
	authHandler := handler.NewAuthHandler(deps.auth, logger)
	clientHandler := handler.NewClientHandler(deps.clients, logger)
	meetingHandler := handler.NewMeetingHandler(deps.meetings, logger)

	corsCfg := middleware.DefaultCORSConfig()
	corsCfg.AllowedOrigins = cfg.GetCORSAllowedOrigins()

	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recoverer(logger))
	r.Use(middleware.Security(middleware.SecurityConfig{IsDevelopment: cfg.IsDevelopment()}))
	r.Use(middleware.CORS(corsCfg))
	r.Use(middleware.MaxBodySize(cfg.MaxRequestBodySize))

	// Health and info endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Get("/metrics", deps.metrics.Metrics)
	r.Get("/", h.Hello)

	requireAuth := middleware.Auth(middleware.AuthConfig{
		Logger:   logger,
		Verifier: deps.auth,
	})

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.Register)
			r.Post("/login", authHandler.Login)
			r.Post("/forgot-password", authHandler.ForgotPassword)
			r.Post("/reset-password", authHandler.ResetPassword)

			r.With(requireAuth).Get("/profile", authHandler.GetProfile)
			r.With(requireAuth).Put("/profile", authHandler.UpdateProfile)
		})

		r.Route("/clients", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", clientHandler.List)
			r.Post("/", clientHandler.Create)
			r.Get("/{id}", clientHandler.Get)
			r.Put("/{id}", clientHandler.Update)
			r.Delete("/{id}", clientHandler.Delete)
		})

		r.Route("/meetings", func(r chi.Router) {
			r.Use(requireAuth)
			r.Get("/", meetingHandler.List)
			r.Post("/", meetingHandler.Create)
			r.Get("/{id}", meetingHandler.Get)
			r.Put("/{id}", meetingHandler.Update)
			r.Delete("/{id}", meetingHandler.Delete)
		})
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
