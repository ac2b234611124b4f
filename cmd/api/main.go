// Package main is the entrypoint for the WorkHive API server.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/workhive/workhive/internal/analytics"
	"github.com/workhive/workhive/internal/cache"
	"github.com/workhive/workhive/internal/config"
	"github.com/workhive/workhive/internal/database"
	"github.com/workhive/workhive/internal/handler"
	"github.com/workhive/workhive/internal/metrics"
	"github.com/workhive/workhive/internal/middleware"
	"github.com/workhive/workhive/internal/repository"
	"github.com/workhive/workhive/internal/server"
	"github.com/workhive/workhive/internal/service"
)

func main() {
	// Initialize context
	ctx := context.Background()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Initialize logger
	logger := initLogger(cfg)

	// Apply schema migrations before accepting traffic
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Error(
			"failed to run migrations",
			slog.String("error", sanitizeError(err, cfg.DatabaseURL)),
			slog.String("database_url", redactURL(cfg.DatabaseURL)),
		)
		os.Exit(1)
	}
	logger.Info("migrations applied")

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
	defer repo.Close()
	logger.Info("connected to database")

	// Initialize cache / session store
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

	// Initialize metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	recorder := metrics.NewPrometheus(registry)

	// Initialize services
	jobService := service.NewJobService(repo, recorder, cfg.RecentJobsLimit)
	categoryService := service.NewCategoryService(repo, recorder)
	acceptanceService := service.NewAcceptanceService(repo, cacheClient, recorder)
	profileService := service.NewProfileService(repo, recorder)
	accountService := service.NewAccountService(repo, cacheClient, recorder, service.AccountConfig{
		SessionTTL:         cfg.SessionTTL,
		BaseURL:            cfg.BaseURL,
		GoogleClientID:     cfg.GoogleClientID,
		GoogleClientSecret: cfg.GoogleClientSecret,
	})

	// View-event pipeline: publish on job-detail requests, consume into
	// daily stats in the background.
	var viewPublisher *analytics.Publisher
	var viewWorker *analytics.Worker
	if cfg.ViewEventsEnabled {
		viewPublisher = analytics.NewPublisher(cacheClient.Client(), logger, recorder)
		viewWorker = analytics.NewWorker(cacheClient.Client(), repo, logger, analytics.NewConsumerID(), recorder)
		viewWorker.SetBatchSize(cfg.ViewWorkerBatchSize)
	}

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(repo, cacheClient)
	jobHandler := handler.NewJobHandler(jobService, viewPublisher, logger)
	categoryHandler := handler.NewCategoryHandler(categoryService, logger)
	acceptanceHandler := handler.NewAcceptanceHandler(acceptanceService, logger)
	profileHandler := handler.NewProfileHandler(profileService, logger)
	authHandler := handler.NewAuthHandler(accountService, logger)

	// Setup router
	r := setupRouter(routerDeps{
		health:     healthHandler,
		jobs:       jobHandler,
		categories: categoryHandler,
		accepted:   acceptanceHandler,
		profiles:   profileHandler,
		auth:       authHandler,
		cache:      cacheClient,
		registry:   registry,
		cfg:        cfg,
		logger:     logger,
	})

	// Create and run server
	srv := server.New(
		r,
		cfg.AppPort,
		cfg.ReadTimeout,
		cfg.WriteTimeout,
		cfg.ShutdownTimeout,
		logger,
	)

	if viewWorker != nil {
		go func() {
			if err := viewWorker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("view worker stopped", "error", err)
			}
		}()
		srv.OnShutdown(viewWorker.Shutdown)
	}

	logger.Info("starting server",
		"port", cfg.AppPort,
		"base_url", cfg.BaseURL,
		"env", cfg.AppEnv,
		"google_oauth", cfg.GoogleOAuthEnabled(),
		"view_events", cfg.ViewEventsEnabled,
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

// routerDeps bundles everything setupRouter needs.
type routerDeps struct {
	health     *handler.HealthHandler
	jobs       *handler.JobHandler
	categories *handler.CategoryHandler
	accepted   *handler.AcceptanceHandler
	profiles   *handler.ProfileHandler
	auth       *handler.AuthHandler
	cache      *cache.Cache
	registry   *prometheus.Registry
	cfg        *config.Config
	logger     *slog.Logger
}

// setupRouter configures the chi router with all routes and middleware.
func setupRouter(deps routerDeps) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger(deps.logger))
	r.Use(middleware.Recoverer(deps.logger))
	r.Use(middleware.Security(middleware.DefaultSecurityConfig()))
	if origins := deps.cfg.GetCORSAllowedOrigins(); len(origins) > 0 {
		corsCfg := middleware.DefaultCORSConfig()
		corsCfg.AllowedOrigins = origins
		r.Use(middleware.CORS(corsCfg))
	}
	r.Use(middleware.MaxBodySize(deps.cfg.MaxRequestBodySize))

	// Health and metrics endpoints (no auth required)
	r.Get("/healthz", deps.health.Healthz)
	r.Get("/readyz", deps.health.Readyz)
	r.Method("GET", "/metrics", promhttp.HandlerFor(deps.registry, promhttp.HandlerOpts{}))

	// Root info endpoint
	r.Get("/", handler.Root)

	authCfg := middleware.AuthConfig{
		Logger: deps.logger,
		Cache:  deps.cache,
	}

	rateLimitCfg := middleware.RateLimitConfig{
		Logger:     deps.logger,
		Cache:      deps.cache,
		APIEnabled: deps.cfg.RateLimitAPIEnabled,
		IPEnabled:  deps.cfg.RateLimitIPEnabled,
		IPRPS:      deps.cfg.RateLimitIPRPS,
		IPBurst:    deps.cfg.RateLimitIPBurst,
	}

	requireAuth := middleware.Auth(authCfg)
	optionalAuth := middleware.OptionalAuth(authCfg)
	limitAPI := middleware.RateLimitAPI(rateLimitCfg)
	limitIP := middleware.RateLimitIP(rateLimitCfg)

	r.Route("/api/v1", func(r chi.Router) {
		// Account lifecycle
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", deps.auth.Register)
			r.Post("/login", deps.auth.Login)
			r.Post("/logout", deps.auth.Logout)
			r.With(requireAuth).Get("/me", deps.auth.Me)
			r.Get("/google/login", deps.auth.GoogleLogin)
			r.Get("/google/callback", deps.auth.GoogleCallback)
		})

		// Job postings: catalog reads are public, everything else is gated
		r.Route("/jobs", func(r chi.Router) {
			r.With(limitIP).Get("/recent-jobs", deps.jobs.Recent)
			r.With(limitIP).Get("/all-jobs", deps.jobs.ListAll)
			// Optional session so signed-in views are attributed to the
			// user rather than the network address.
			r.With(limitIP, optionalAuth).Get("/job-details/{jobId}", deps.jobs.Get)
			r.With(limitIP).Get("/job-stats/{jobId}", deps.jobs.Stats)
			r.With(requireAuth, limitAPI).Post("/add-job", deps.jobs.Create)
			r.With(requireAuth, limitAPI).Put("/update-job/{jobId}", deps.jobs.Update)
			r.With(requireAuth, limitAPI).Delete("/delete-job/{jobId}", deps.jobs.Delete)
			r.With(requireAuth).Get("/myAddedJobs/{email}", deps.jobs.MyAdded)
		})

		// Categories
		r.Route("/category", func(r chi.Router) {
			r.With(limitIP).Get("/all-categories", deps.categories.ListAll)
			r.With(requireAuth).Get("/user-categories/{uid}", deps.categories.ListByUser)
			r.With(requireAuth, limitAPI).Post("/add-category", deps.categories.Create)
			r.With(requireAuth, limitAPI).Delete("/delete-category/{id}", deps.categories.Delete)
		})

		// Acceptances
		r.Route("/accepted-jobs", func(r chi.Router) {
			r.With(requireAuth).Get("/check-accepted/{jobId}/{email}", deps.accepted.Check)
			r.With(requireAuth, limitAPI).Post("/accept-job", deps.accepted.Accept)
			r.With(requireAuth).Get("/my-accepted-jobs/{email}", deps.accepted.MyAccepted)
			r.With(requireAuth, limitAPI).Delete("/remove-accepted-job/{id}", deps.accepted.Remove)
		})

		// Profiles: reads are public, writes are owner-only
		r.Route("/users", func(r chi.Router) {
			r.With(limitIP).Get("/profile/{uidOrEmail}", deps.profiles.Get)
			r.With(requireAuth, limitAPI).Put("/profile/{uidOrEmail}", deps.profiles.Update)
		})
	})

	// 404 and 405 handlers
	r.NotFound(handler.NotFound)
	r.MethodNotAllowed(handler.MethodNotAllowed)

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
