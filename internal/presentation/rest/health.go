package rest

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/praveenr-web/AutoJudge/internal/domain/port"
)

const serviceName = "autojudge"

// HealthHandler provides HTTP health check endpoints.
type HealthHandler struct {
	pipelines    port.PipelineProvider
	checkTimeout time.Duration
	logger       *slog.Logger
	startTime    time.Time
}

// NewHealthHandler creates a new health check handler. Readiness is
// reported as ready once pipelines can be obtained from the provider.
func NewHealthHandler(pipelines port.PipelineProvider, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{
		pipelines:    pipelines,
		checkTimeout: 5 * time.Second,
		logger:       logger,
		startTime:    time.Now(),
	}
}

// HealthResponse is the JSON response for health checks.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Uptime  string `json:"uptime"`
}

// ReadinessResponse is the JSON response for readiness checks.
type ReadinessResponse struct {
	Status  string            `json:"status"`
	Service string            `json:"service"`
	Checks  map[string]string `json:"checks"`
}

// RegisterRoutes registers health endpoints on the provided ServeMux.
func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /healthz", h.Healthz)
	mux.HandleFunc("GET /readyz", h.Readyz)
}

// Healthz handles liveness probe requests.
func (h *HealthHandler) Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, h.logger, http.StatusOK, HealthResponse{
		Status:  "healthy",
		Service: serviceName,
		Uptime:  time.Since(h.startTime).Round(time.Second).String(),
	})
}

// Readyz handles readiness probe requests.
func (h *HealthHandler) Readyz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.checkTimeout)
	defer cancel()

	resp := ReadinessResponse{
		Status:  "ready",
		Service: serviceName,
		Checks:  map[string]string{"pipelines": "ok"},
	}
	status := http.StatusOK

	if _, err := h.pipelines.Pipelines(ctx); err != nil {
		h.logger.WarnContext(ctx, "readiness check failed", "error", err)
		resp.Status = "not_ready"
		resp.Checks["pipelines"] = "unavailable"
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, h.logger, status, resp)
}
