package rest

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/praveenr-web/AutoJudge/internal/application/dto"
	"github.com/praveenr-web/AutoJudge/internal/application/usecase"
)

const maxRequestBytes = 1 << 20

// PredictUseCase is the application capability behind the prediction endpoints.
type PredictUseCase interface {
	Execute(ctx context.Context, req dto.PredictDifficultyRequest) (dto.PredictionResponse, error)
}

var _ PredictUseCase = (*usecase.PredictDifficulty)(nil)

// PredictHandler serves the JSON prediction API.
type PredictHandler struct {
	predict PredictUseCase
	logger  *slog.Logger
}

// NewPredictHandler creates a new prediction handler.
func NewPredictHandler(predict PredictUseCase, logger *slog.Logger) *PredictHandler {
	return &PredictHandler{predict: predict, logger: logger}
}

// RegisterRoutes registers the API endpoints on the provided ServeMux.
func (h *PredictHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /predict", h.Predict)
}

// Predict handles POST /predict.
func (h *PredictHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req dto.PredictDifficultyRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		writeJSON(w, h.logger, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: unexpected data after JSON object"})
		return
	}

	resp, err := h.predict.Execute(r.Context(), req)
	if err != nil {
		status, body := errorStatus(err)
		writeJSON(w, h.logger, status, body)
		return
	}

	writeJSON(w, h.logger, http.StatusOK, resp)
}
