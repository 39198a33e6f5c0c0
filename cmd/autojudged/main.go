package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/praveenr-web/AutoJudge/internal/application/usecase"
	"github.com/praveenr-web/AutoJudge/internal/domain/service"
	"github.com/praveenr-web/AutoJudge/internal/infrastructure/config"
	"github.com/praveenr-web/AutoJudge/internal/infrastructure/metrics"
	"github.com/praveenr-web/AutoJudge/internal/infrastructure/pipeline"
	grpcpresentation "github.com/praveenr-web/AutoJudge/internal/presentation/grpc"
	"github.com/praveenr-web/AutoJudge/internal/presentation/rest"
	"github.com/praveenr-web/AutoJudge/pkg/observability"
)

const serviceName = "autojudge"

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		slog.Error("autojudge stopped with error", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration.
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Initialize structured logger via shared observability package.
	logger := observability.InitLogger(observability.LogConfig{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		ServiceName: serviceName,
	})

	logger.Info("starting autojudge",
		"http_port", cfg.HTTPPort,
		"grpc_port", cfg.GRPCPort,
		"classifier_path", cfg.ClassifierPath,
		"regressor_path", cfg.RegressorPath,
	)

	// Tracing is optional.
	if cfg.OTLPEndpoint != "" {
		shutdown, err := observability.InitTracer(ctx, observability.TracingConfig{
			ServiceName: serviceName,
			Endpoint:    cfg.OTLPEndpoint,
			Insecure:    true,
		})
		if err != nil {
			logger.Warn("failed to initialize tracer, continuing without tracing", "error", err)
		} else {
			defer shutdown(context.Background())
		}
	}

	// Metrics.
	meterProvider, metricsHandler, err := observability.InitMetrics(observability.MetricsConfig{ServiceName: serviceName})
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	defer meterProvider.Shutdown(context.Background())

	predictionMetrics, err := metrics.NewPredictionMetrics(meterProvider)
	if err != nil {
		return fmt.Errorf("failed to create prediction metrics: %w", err)
	}

	// Pipelines load on first prediction unless eager loading is requested.
	store := pipeline.NewStore(cfg.ClassifierPath, cfg.RegressorPath, logger)
	store.SetRecorder(predictionMetrics)
	if cfg.EagerLoad {
		loadCtx, loadCancel := context.WithTimeout(ctx, 30*time.Second)
		err := store.Load(loadCtx)
		loadCancel()
		if err != nil {
			return fmt.Errorf("failed to load pipelines: %w", err)
		}
	}

	// Wire domain service and use case.
	predictor := service.NewDifficultyPredictor(store, logger)
	predictUC := usecase.NewPredictDifficulty(predictor, predictionMetrics, logger)

	// gRPC server.
	grpcHandler := grpcpresentation.NewDifficultyServiceHandler(predictUC, logger)
	grpcServer := grpcpresentation.NewServer(grpcHandler, cfg.GRPCAddress(), logger, cfg.GRPCReflection)

	// HTTP server.
	httpServer := &http.Server{
		Addr: cfg.HTTPAddress(),
		Handler: rest.NewRouter(rest.RouterConfig{
			Predict:        predictUC,
			Pipelines:      store,
			MetricsHandler: metricsHandler,
			RateLimitRPS:   cfg.RateLimitRPS,
			Logger:         logger,
		}),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start servers.
	errCh := make(chan error, 2)

	go func() {
		if err := grpcServer.Start(); err != nil {
			errCh <- fmt.Errorf("gRPC server error: %w", err)
		}
	}()

	go func() {
		logger.Info("HTTP server starting", "address", cfg.HTTPAddress())
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	logger.Info("autojudge started",
		"grpc_address", cfg.GRPCAddress(),
		"http_address", cfg.HTTPAddress(),
		"environment", cfg.Environment,
		"eager_load", cfg.EagerLoad,
	)

	// Wait for shutdown signal.
	var serveErr error
	select {
	case <-ctx.Done():
		logger.Info("shutdown signal received")
	case serveErr = <-errCh:
		logger.Error("server error", "error", serveErr)
	}

	// Graceful shutdown.
	logger.Info("shutting down autojudge")

	grpcServer.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	logger.Info("autojudge stopped")
	return serveErr
}
