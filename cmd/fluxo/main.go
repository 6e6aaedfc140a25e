package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/boddenberg/fluxo-caixa-go/internal/chart"
	"github.com/boddenberg/fluxo-caixa-go/internal/config"
	"github.com/boddenberg/fluxo-caixa-go/internal/domain"
	"github.com/boddenberg/fluxo-caixa-go/internal/handler"
	"github.com/boddenberg/fluxo-caixa-go/internal/infra/cache"
	"github.com/boddenberg/fluxo-caixa-go/internal/infra/observability"
	"github.com/boddenberg/fluxo-caixa-go/internal/service"

	"go.uber.org/zap"
)

func main() {
	// --- Load .env file (for local development) ---
	if err := config.LoadDotEnv(".env"); err != nil {
		fmt.Fprintf(os.Stderr, "failed to read .env: %v\n", err)
	}

	// --- Config ---
	cfg := config.Load()

	// --- Logger ---
	logger := observability.NewLogger(cfg.LogLevel, cfg.ServiceName)
	defer logger.Sync()

	if err := cfg.Validate(); err != nil {
		logger.Fatal("invalid configuration", zap.Error(err))
	}
	loc := cfg.Location()

	logger.Info("configuration loaded",
		zap.Int("port", cfg.Port),
		zap.String("log_level", cfg.LogLevel),
		zap.String("timezone", loc.String()),
		zap.String("locale", cfg.Locale),
		zap.String("currency", cfg.Currency),
		zap.Bool("seeded", cfg.RandomSeed != 0),
		zap.Duration("cache_ttl", cfg.CacheTTL),
		zap.Int("max_concurrency", cfg.MaxConcurrency),
		zap.Strings("cors_allowed_origins", cfg.CORSAllowedOrigins),
	)

	// --- Tracing ---
	shutdownTracer, err := observability.InitTracer(context.Background(), cfg.OTLPEndpoint, cfg.ServiceName)
	if err != nil {
		logger.Fatal("failed to init tracer", zap.Error(err))
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracer(ctx); err != nil {
			logger.Warn("tracer shutdown", zap.Error(err))
		}
	}()

	// --- Metrics ---
	metrics := observability.NewMetrics()

	// --- Cache ---
	chartCache := cache.New[*domain.ChartConfig](cfg.CacheTTL)
	defer chartCache.Stop()

	// --- Chart factory ---
	clock := chart.SystemClock{Location: loc}
	generator := chart.NewGenerator(chart.NewLockedSource(cfg.RandomSeed), chart.DefaultProfile)
	factory := chart.NewFactory(clock, generator)

	// --- Services ---
	cashflowSvc := service.NewCashFlowService(factory, clock, chartCache, metrics, logger, cfg.MaxConcurrency)

	// --- Router ---
	router := handler.NewRouter(cashflowSvc, metrics, logger, handler.Options{
		Location:       loc,
		Locale:         cfg.Locale,
		Currency:       cfg.Currency,
		AllowedOrigins: cfg.CORSAllowedOrigins,
	})

	// --- Server ---
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// --- Graceful shutdown ---
	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", zap.Int("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case sig := <-quit:
		logger.Info("server shutting down...", zap.String("signal", sig.String()))
	case err := <-serverErr:
		logger.Error("server failed", zap.Error(err))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced shutdown", zap.Error(err))
	}

	logger.Info("server stopped")
}
