package cmd

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humaecho"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/donaldgifford/loss-valuation/internal/api/handlers"
	"github.com/donaldgifford/loss-valuation/internal/api/middleware"
	"github.com/donaldgifford/loss-valuation/internal/config"
	"github.com/donaldgifford/loss-valuation/internal/engine"
	"github.com/donaldgifford/loss-valuation/internal/metrics"
	"github.com/donaldgifford/loss-valuation/internal/notify"
	"github.com/donaldgifford/loss-valuation/internal/store"
	"github.com/donaldgifford/loss-valuation/internal/telemetry"
	"github.com/donaldgifford/loss-valuation/pkg/adjust"
	"github.com/donaldgifford/loss-valuation/pkg/logger"
	"github.com/donaldgifford/loss-valuation/pkg/valuation"
)

const (
	shutdownTimeout   = 10 * time.Second
	webhookTimeout    = 10 * time.Second
	limiterPruneEvery = 5 * time.Minute
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server and scheduler",
	RunE:  runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Tracing, Version)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			log.Warn("flushing traces", "error", err)
		}
	}()

	pg, err := store.NewPostgresStore(ctx, cfg.Database.DSN(), store.WithMaxConns(cfg.Database.PoolSize))
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	defer pg.Close()

	if err := pg.Migrate(ctx); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}

	eng := newEngine(cfg, pg, newNotifier(cfg, log), log)

	sched, err := engine.NewScheduler(eng, pg,
		cfg.Schedule.RevalueInterval, cfg.Schedule.CacheSweepInterval, log)
	if err != nil {
		return fmt.Errorf("creating scheduler: %w", err)
	}
	sched.RecoverStaleJobRuns(ctx)
	eng.SyncStateMetrics(ctx)
	sched.Start()

	e := newServer(cfg, pg, eng, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	log.Info("starting server", "addr", addr, "version", Version)

	go func() {
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server error", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down server: %w", err)
	}

	select {
	case <-sched.Stop().Done():
	case <-shutdownCtx.Done():
		log.Warn("scheduler did not stop before the shutdown deadline")
	}

	log.Info("server stopped")
	return nil
}

// newEngine builds the valuation engine from config. s may be nil for
// offline use.
func newEngine(cfg *config.Config, s store.Store, n notify.Notifier, log *slog.Logger) *engine.Engine {
	cache := valuation.NewCache(
		valuation.WithTTL(cfg.Valuation.CacheTTL),
		valuation.WithLookupHook(metrics.ObserveCacheLookup),
	)

	return engine.NewEngine(s, n,
		engine.WithLogger(log),
		engine.WithAdjuster(adjust.NewCalculator(
			adjust.WithEquipmentValues(cfg.Valuation.EquipmentValues),
		)),
		engine.WithValuator(valuation.NewCalculator(cache, valuation.WithLogger(log))),
		engine.WithMinComparables(cfg.Valuation.MinComparables),
		engine.WithReviewConfidence(cfg.Valuation.ReviewConfidence),
		engine.WithRevalueBatchSize(cfg.Schedule.RevalueBatchSize),
		engine.WithBaseURL(cfg.Server.PublicURL),
	)
}

func newNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	if !cfg.Notifications.Discord.Enabled {
		log.Info("review alerts disabled")
		return notify.NewNoOpNotifier(log)
	}
	return notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL,
		notify.WithHTTPClient(&http.Client{Timeout: webhookTimeout}),
	)
}

func newServer(cfg *config.Config, s store.Store, eng *engine.Engine, log *slog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Server.ReadTimeout = cfg.Server.ReadTimeout
	e.Server.WriteTimeout = cfg.Server.WriteTimeout

	e.Use(middleware.Tracing(nil))
	e.Use(middleware.RequestLog(log))
	e.Use(middleware.Metrics())
	if cfg.RateLimit.Enabled {
		rl := middleware.NewRateLimiter(cfg.RateLimit.PerSecond, cfg.RateLimit.Burst)
		go pruneLimiter(rl)
		e.Use(middleware.RateLimit(rl))
	}
	e.Use(middleware.Recovery(log))

	health := handlers.NewHealthHandler(s, Version)
	e.GET("/healthz", health.Healthz)
	e.GET("/readyz", health.Readyz)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := humaecho.New(e, huma.DefaultConfig("Loss Valuation API", Version))
	handlers.RegisterComputeRoutes(api, handlers.NewComputeHandler(eng))
	handlers.RegisterAppraisalRoutes(api, handlers.NewAppraisalsHandler(s, eng))
	handlers.RegisterCacheRoutes(api, handlers.NewCacheHandler(eng))
	handlers.RegisterJobRoutes(api, handlers.NewJobsHandler(s))
	handlers.RegisterSystemStateRoutes(api, handlers.NewSystemStateHandler(s, eng))

	return e
}

func pruneLimiter(rl *middleware.RateLimiter) {
	for range time.Tick(limiterPruneEvery) {
		rl.Prune()
	}
}

// quietLogger is used by commands whose output is the result itself.
func quietLogger() *slog.Logger {
	return logger.NewWithWriter(os.Stderr, "warn", logger.FormatText)
}
