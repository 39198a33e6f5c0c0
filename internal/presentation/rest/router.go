package rest

import (
	"log/slog"
	"net/http"

	"github.com/praveenr-web/AutoJudge/internal/domain/port"
	"github.com/praveenr-web/AutoJudge/internal/presentation/middleware"
)

// RouterConfig holds the dependencies of the HTTP surface.
type RouterConfig struct {
	Predict        PredictUseCase
	Pipelines      port.PipelineProvider
	MetricsHandler http.Handler
	// RateLimitRPS limits /predict and the form per client IP. Zero disables limiting.
	RateLimitRPS int
	Logger       *slog.Logger
}

// NewRouter builds the HTTP handler serving the API, the form, health
// probes and metrics.
func NewRouter(cfg RouterConfig) http.Handler {
	api := http.NewServeMux()
	NewPredictHandler(cfg.Predict, cfg.Logger).RegisterRoutes(api)
	NewFormHandler(cfg.Predict, cfg.Logger).RegisterRoutes(api)

	var limited http.Handler = api
	if cfg.RateLimitRPS > 0 {
		limiter := middleware.NewPerClientRateLimiter(cfg.RateLimitRPS)
		limited = middleware.PerClientRateLimitMiddleware(limiter)(api)
	}

	mux := http.NewServeMux()
	NewHealthHandler(cfg.Pipelines, cfg.Logger).RegisterRoutes(mux)
	if cfg.MetricsHandler != nil {
		mux.Handle("GET /metrics", cfg.MetricsHandler)
	}
	mux.Handle("/", limited)

	return middleware.Chain(mux,
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware(cfg.Logger),
	)
}
