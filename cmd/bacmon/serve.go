package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/bacmon/bacmon/internal/alert"
	"github.com/bacmon/bacmon/internal/api"
	"github.com/bacmon/bacmon/internal/api/middleware"
	"github.com/bacmon/bacmon/internal/config"
	"github.com/bacmon/bacmon/internal/featureflags"
	"github.com/bacmon/bacmon/internal/monitor"
	"github.com/bacmon/bacmon/internal/sensor"
	"github.com/bacmon/bacmon/internal/telemetry"
)

func newServeCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the bacmon API server",
		RunE: func(_ *cobra.Command, _ []string) error {
			return runServe(*configPath)
		},
	}
}

func runServe(configPath string) error {
	const serviceName = "bacmon-api"

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log := newLogger(cfg.Logger, serviceName)

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting bacmon API")

	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Telemetry.Environment,
		OTLPEndpoint:   cfg.Telemetry.OTLPEndpoint,
		Enabled:        cfg.Telemetry.Enabled,
	})
	if err != nil {
		return fmt.Errorf("initialize telemetry: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.Telemetry.Enabled {
		log.Info().
			Str("otlp_endpoint", cfg.Telemetry.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	httpMetrics, err := middleware.NewMetrics()
	if err != nil {
		return fmt.Errorf("initialize metrics: %w", err)
	}

	ffService := featureflags.NewService(featureflags.ServiceConfig{
		Repository: featureflags.NewInMemoryRepository(),
		Logger:     log,
		CacheTTL:   1 * time.Minute,
	})
	log.Info().Msg("feature flag service initialized")

	monitorMetrics := &monitor.Metrics{}
	notifier := flagGatedNotifier(ffService, alert.NewLogNotifier(log))

	registry := monitor.NewRegistry(monitor.RegistryConfig{
		Logger:        log,
		Metrics:       monitorMetrics,
		TickInterval:  cfg.Monitor.TickInterval,
		HistoryLimit:  cfg.Monitor.HistoryLimit,
		AlertCooldown: cfg.Monitor.AlertCooldown,
		SourceFactory: sensorFactory(cfg.Sensor),
		Notifier:      notifier,
	})
	log.Info().
		Dur("tick_interval", cfg.Monitor.TickInterval).
		Int("history_limit", cfg.Monitor.HistoryLimit).
		Msg("session registry initialized")

	router := api.NewRouter(api.RouterConfig{
		Version:            Version,
		BuildTime:          BuildTime,
		Logger:             log,
		ServiceName:        serviceName,
		Metrics:            httpMetrics,
		Registry:           registry,
		MonitorMetrics:     monitorMetrics,
		FeatureFlagService: ffService,
		RateLimit:          cfg.Server.RateLimit,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if serveErr := server.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			errCh <- serveErr
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case serveErr := <-errCh:
		registry.StopAll()
		return fmt.Errorf("server error: %w", serveErr)
	case <-quit:
	}

	log.Info().Msg("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		registry.StopAll()
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	registry.StopAll()
	log.Info().Msg("server stopped")
	return nil
}

// flagGatedNotifier suppresses delivery while the disable_alert_delivery flag
// is set. Throttle state and alert metrics still advance upstream, so flipping
// the flag back on resumes delivery mid-session without replaying old events.
func flagGatedNotifier(flags *featureflags.Service, next alert.Notifier) alert.Notifier {
	return alert.NotifierFunc(func(ctx context.Context, event alert.Event) {
		if flags.IsAlertDeliveryDisabled(ctx) {
			return
		}
		next.Notify(ctx, event)
	})
}

// sensorFactory builds one resilient simulator per session. When a base seed
// is configured, each session derives a distinct deterministic seed so
// concurrent sessions never share a noise stream.
func sensorFactory(cfg config.SensorConfig) func() sensor.Source {
	var counter uint64
	return func() sensor.Source {
		seed := cfg.Seed
		if seed != 0 {
			seed += atomic.AddUint64(&counter, 1)
		}
		sim := sensor.NewSimulator(sensor.SimulatorConfig{Seed: seed})
		return sensor.NewResilient(sim, sensor.ResilientConfig{
			Name:           "wearable-sim",
			MaxRetries:     uint64(cfg.MaxRetries),
			BreakerTimeout: cfg.BreakerTimeout,
		})
	}
}
