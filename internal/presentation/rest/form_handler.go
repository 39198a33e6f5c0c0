package rest

import (
	"embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"

	"github.com/praveenr-web/AutoJudge/internal/application/dto"
	"github.com/praveenr-web/AutoJudge/internal/domain/model"
	"github.com/praveenr-web/AutoJudge/internal/domain/valueobject"
)

//go:embed templates/index.html
var templates embed.FS

var indexTemplate = template.Must(template.ParseFS(templates, "templates/index.html"))

// FormView is the data rendered by the HTML page.
type FormView struct {
	Request dto.PredictDifficultyRequest
	Result  *dto.PredictionResponse
	Warning string
	Error   string
	Banner  string
}

// FormHandler serves the browser form at /.
type FormHandler struct {
	predict PredictUseCase
	logger  *slog.Logger
}

// NewFormHandler creates a new form handler.
func NewFormHandler(predict PredictUseCase, logger *slog.Logger) *FormHandler {
	return &FormHandler{predict: predict, logger: logger}
}

// RegisterRoutes registers the form endpoints on the provided ServeMux.
func (h *FormHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /{$}", h.Show)
	mux.HandleFunc("POST /{$}", h.Submit)
}

// Show renders the empty form.
func (h *FormHandler) Show(w http.ResponseWriter, r *http.Request) {
	h.render(w, http.StatusOK, FormView{})
}

// Submit runs a prediction for the submitted form and renders the result.
func (h *FormHandler) Submit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
	if err := r.ParseForm(); err != nil {
		h.render(w, http.StatusBadRequest, FormView{Error: "The form could not be read."})
		return
	}

	view := FormView{Request: dto.PredictDifficultyRequest{
		Description:       r.PostFormValue("description"),
		InputDescription:  r.PostFormValue("input_description"),
		OutputDescription: r.PostFormValue("output_description"),
	}}

	resp, err := h.predict.Execute(r.Context(), view.Request)
	switch {
	case errors.Is(err, model.ErrBlankDescription):
		view.Warning = dto.AdvisoryBlankDescription
		h.render(w, http.StatusOK, view)
	case err != nil:
		status, _ := errorStatus(err)
		view.Error = "The difficulty could not be predicted right now. Please try again later."
		h.render(w, status, view)
	default:
		view.Result = &resp
		view.Banner = bannerClass(resp.Interpretation)
		h.render(w, http.StatusOK, view)
	}
}

func (h *FormHandler) render(w http.ResponseWriter, status int, view FormView) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := indexTemplate.Execute(w, view); err != nil {
		h.logger.Error("failed to render form", "error", err)
	}
}

func bannerClass(interpretation string) string {
	switch interpretation {
	case valueobject.InterpretationBeginner.String():
		return "success"
	case valueobject.InterpretationIntermediate.String():
		return "info"
	default:
		return "error"
	}
}
