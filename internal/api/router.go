// Package api provides the HTTP API for bacmon.
package api

import (
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/bacmon/bacmon/internal/api/handler"
	"github.com/bacmon/bacmon/internal/api/middleware"
	"github.com/bacmon/bacmon/internal/bac"
	"github.com/bacmon/bacmon/internal/featureflags"
	"github.com/bacmon/bacmon/internal/monitor"
)

// RouterConfig holds configuration for the router.
type RouterConfig struct {
	Version            string
	BuildTime          string
	Logger             zerolog.Logger
	ServiceName        string
	Metrics            *middleware.Metrics
	Registry           *monitor.Registry
	MonitorMetrics     *monitor.Metrics
	FeatureFlagService *featureflags.Service
	Catalog            *bac.Catalog
	Classifier         *bac.EffectClassifier

	// RateLimit overrides the standard per-IP budget (requests/minute).
	// Zero keeps StandardRateLimit. The strict budget for state-creating
	// endpoints stays fixed.
	RateLimit int
}

// NewRouter creates a new chi router with all API routes configured.
func NewRouter(cfg RouterConfig) *chi.Mux {
	r := chi.NewRouter()

	// Set default service name if not provided
	serviceName := cfg.ServiceName
	if serviceName == "" {
		serviceName = "bacmon-api"
	}

	catalog := cfg.Catalog
	if catalog == nil {
		catalog = bac.DefaultCatalog()
	}
	classifier := cfg.Classifier
	if classifier == nil {
		classifier = bac.NewEffectClassifier(nil, 0)
	}

	// Global middleware - order matters
	r.Use(middleware.RequestID)            // Generate/propagate request ID first
	r.Use(middleware.Tracing(serviceName)) // Distributed tracing
	if cfg.Metrics != nil {
		r.Use(cfg.Metrics.Middleware()) // HTTP metrics
	}
	r.Use(middleware.Logger(cfg.Logger))   // Structured logging
	r.Use(middleware.Recovery(cfg.Logger)) // Panic recovery
	r.Use(chimiddleware.RealIP)            // Real IP extraction
	r.Use(middleware.SecurityHeaders)      // Security headers (HSTS, CSP, etc.)
	r.Use(middleware.RequireTLS)           // TLS enforcement (enabled via REQUIRE_TLS=true)
	r.Use(middleware.ContentTypeJSON)      // JSON content type

	// Initialize handlers
	opsHandler := handler.NewOpsHandler(cfg.Version, cfg.BuildTime, cfg.Registry, cfg.FeatureFlagService, cfg.MonitorMetrics)
	sessionHandler := handler.NewSessionHandler(cfg.Registry)
	statusHandler := handler.NewStatusHandler(cfg.Registry)
	drinkHandler := handler.NewDrinkHandler(cfg.Registry)
	alertsHandler := handler.NewAlertsHandler(cfg.Registry)
	clockHandler := handler.NewClockHandler(cfg.Registry, cfg.FeatureFlagService)
	metadataHandler := handler.NewMetadataHandler(catalog, classifier)
	featureFlagsHandler := handler.NewFeatureFlagsHandler(cfg.FeatureFlagService)

	// Create rate limit middleware for different endpoint categories
	standardCfg := middleware.StandardRateLimit
	if cfg.RateLimit > 0 {
		standardCfg.RequestLimit = cfg.RateLimit
	}
	strictRateLimit := middleware.RateLimitByIP(middleware.StrictRateLimit) // 30 req/min
	standardRateLimit := middleware.RateLimitByIP(standardCfg)              // 100 req/min default

	// API v1 routes
	r.Route("/v1", func(r chi.Router) {
		// Ops endpoints (public)
		r.Route("/ops", func(r chi.Router) {
			r.Get("/health", opsHandler.HealthCheck)
			r.Get("/ready", opsHandler.ReadinessCheck)
			r.Get("/status", opsHandler.SystemStatus)
		})

		// Metadata endpoints - standard rate limiting
		r.Route("/metadata", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/drinks", metadataHandler.GetDrinkCatalog)
			r.Get("/enums", metadataHandler.GetEnums)
		})

		// Session endpoints
		r.Route("/sessions", func(r chi.Router) {
			// Session creation spins up a monitoring loop - strict rate limiting
			r.With(strictRateLimit).Post("/", sessionHandler.CreateSession)
			r.With(standardRateLimit).Get("/", sessionHandler.ListSessions)

			r.Route("/{sessionId}", func(r chi.Router) {
				r.Use(standardRateLimit)

				r.Get("/", sessionHandler.GetSession)
				r.Delete("/", sessionHandler.DeleteSession)
				r.Post("/start", sessionHandler.StartSession)
				r.Post("/stop", sessionHandler.StopSession)
				r.Post("/reset", sessionHandler.ResetSession)

				r.Get("/status", statusHandler.GetStatus)
				r.Get("/history", statusHandler.GetHistory)

				// Drink log
				r.Route("/drinks", func(r chi.Router) {
					r.Post("/", drinkHandler.AddDrink)
					r.Get("/", drinkHandler.ListDrinks)
				})

				// Alerts
				r.Route("/alerts", func(r chi.Router) {
					r.Post("/check", alertsHandler.CheckAlerts)
					r.Put("/cooldown", alertsHandler.SetCooldown)
				})

				// Simulated time (gated by the enable_time_shift flag)
				r.Post("/clock/shift", clockHandler.ShiftClock)
			})
		})

		// Feature flags management
		r.Route("/flags", func(r chi.Router) {
			r.Use(standardRateLimit)
			r.Get("/", featureFlagsHandler.ListFeatureFlags)
			r.Put("/", featureFlagsHandler.UpsertFeatureFlags)
			r.Post("/invalidate", featureFlagsHandler.InvalidateCache)
		})
	})

	return r
}
