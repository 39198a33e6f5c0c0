package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/praveenr-web/AutoJudge/internal/application/dto"
	"github.com/praveenr-web/AutoJudge/internal/domain/model"
	"github.com/praveenr-web/AutoJudge/internal/domain/service"
)

// ErrorResponse is the JSON body of every non-2xx API response.
type ErrorResponse struct {
	Error    string `json:"error"`
	Advisory string `json:"advisory,omitempty"`
}

// errorStatus maps a use case error onto an HTTP status and a client-safe body.
func errorStatus(err error) (int, ErrorResponse) {
	var unavailable *service.ModelUnavailableError
	var predErr *service.PredictionError

	switch {
	case errors.Is(err, model.ErrBlankDescription):
		return http.StatusBadRequest, ErrorResponse{
			Error:    model.ErrBlankDescription.Error(),
			Advisory: dto.AdvisoryBlankDescription,
		}
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Error: "difficulty models are unavailable"}
	case errors.As(err, &predErr):
		return http.StatusInternalServerError, ErrorResponse{Error: predErr.Stage + " prediction failed"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Error: "internal error"}
	}
}

func writeJSON(w http.ResponseWriter, logger *slog.Logger, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("failed to write response", "status", status, "error", err)
	}
}
