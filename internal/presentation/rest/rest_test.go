package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveenr-web/AutoJudge/internal/application/dto"
	"github.com/praveenr-web/AutoJudge/internal/domain/model"
	"github.com/praveenr-web/AutoJudge/internal/domain/port"
	"github.com/praveenr-web/AutoJudge/internal/domain/service"
	"github.com/praveenr-web/AutoJudge/internal/presentation/middleware"
)

// --- Stubs ---

type stubUseCase struct {
	resp  dto.PredictionResponse
	err   error
	calls []dto.PredictDifficultyRequest
}

func (s *stubUseCase) Execute(_ context.Context, req dto.PredictDifficultyRequest) (dto.PredictionResponse, error) {
	s.calls = append(s.calls, req)
	if s.err != nil {
		return dto.PredictionResponse{}, fmt.Errorf("failed to predict difficulty: %w", s.err)
	}
	return s.resp, nil
}

type stubProvider struct {
	err error
}

func (s *stubProvider) Pipelines(context.Context) (port.Pipelines, error) {
	return port.Pipelines{}, s.err
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mediumResponse() dto.PredictionResponse {
	return dto.FromModel(model.Prediction{ClassLabel: "medium", Score: 5.374})
}

func newTestRouter(uc PredictUseCase, provider port.PipelineProvider, rps int) http.Handler {
	return NewRouter(RouterConfig{
		Predict:   uc,
		Pipelines: provider,
		MetricsHandler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("autojudge_predictions_total 1\n"))
		}),
		RateLimitRPS: rps,
		Logger:       testLogger(),
	})
}

func postJSON(t *testing.T, h http.Handler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/predict", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

// --- POST /predict ---

func TestPredict_Success(t *testing.T) {
	uc := &stubUseCase{resp: mediumResponse()}
	rec := postJSON(t, newTestRouter(uc, &stubProvider{}, 0),
		`{"description":"Find shortest path in a graph","input_description":"n m","output_description":"one integer"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))

	var got dto.PredictionResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "medium", got.ClassLabel)
	assert.InDelta(t, 5.374, got.Score, 1e-9)
	assert.Equal(t, "Medium", got.DisplayLabel)
	assert.Equal(t, "5.37", got.DisplayScore)
	assert.Equal(t, "Requires intermediate problem-solving skills.", got.Message)

	require.Len(t, uc.calls, 1)
	assert.Equal(t, dto.PredictDifficultyRequest{
		Description:       "Find shortest path in a graph",
		InputDescription:  "n m",
		OutputDescription: "one integer",
	}, uc.calls[0])
}

func TestPredict_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantError  string
		wantAdvice string
	}{
		{
			name:       "blank description",
			err:        model.ErrBlankDescription,
			wantStatus: http.StatusBadRequest,
			wantError:  model.ErrBlankDescription.Error(),
			wantAdvice: dto.AdvisoryBlankDescription,
		},
		{
			name:       "models unavailable",
			err:        &service.ModelUnavailableError{Err: errors.New("open models/x.json: no such file")},
			wantStatus: http.StatusServiceUnavailable,
			wantError:  "difficulty models are unavailable",
		},
		{
			name:       "classifier failed",
			err:        &service.PredictionError{Stage: service.StageClassifier, Err: errors.New("boom")},
			wantStatus: http.StatusInternalServerError,
			wantError:  "classifier prediction failed",
		},
		{
			name:       "unknown error",
			err:        errors.New("surprise"),
			wantStatus: http.StatusInternalServerError,
			wantError:  "internal error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := postJSON(t, newTestRouter(&stubUseCase{err: tt.err}, &stubProvider{}, 0), `{"description":"x"}`)

			require.Equal(t, tt.wantStatus, rec.Code)
			var body ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
			assert.Equal(t, tt.wantError, body.Error)
			assert.Equal(t, tt.wantAdvice, body.Advisory)
			assert.NotContains(t, rec.Body.String(), "no such file")
		})
	}
}

func TestPredict_MalformedBody(t *testing.T) {
	for name, body := range map[string]string{
		"not json":      `description=x`,
		"unknown field": `{"description":"x","difficulty":"easy"}`,
		"wrong type":    `{"description":42}`,
		"trailing data": `{"description":"x"}garbage`,
		"two objects":   `{"description":"x"} {"description":"y"}`,
	} {
		t.Run(name, func(t *testing.T) {
			uc := &stubUseCase{resp: mediumResponse()}
			rec := postJSON(t, newTestRouter(uc, &stubProvider{}, 0), body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Contains(t, rec.Body.String(), "invalid request body")
			assert.Empty(t, uc.calls)
		})
	}
}

func TestPredict_MethodNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubUseCase{}, &stubProvider{}, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/predict", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPredict_RateLimited(t *testing.T) {
	h := newTestRouter(&stubUseCase{resp: mediumResponse()}, &stubProvider{}, 1)

	assert.Equal(t, http.StatusOK, postJSON(t, h, `{"description":"x"}`).Code)
	assert.Equal(t, http.StatusTooManyRequests, postJSON(t, h, `{"description":"x"}`).Code)

	// Probes are never limited.
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

// --- Health & metrics ---

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubUseCase{}, &stubProvider{}, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	var body HealthResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "healthy", body.Status)
	assert.Equal(t, "autojudge", body.Service)
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		rec := httptest.NewRecorder()
		newTestRouter(&stubUseCase{}, &stubProvider{}, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusOK, rec.Code)
		var body ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "ready", body.Status)
		assert.Equal(t, "ok", body.Checks["pipelines"])
	})

	t.Run("not ready", func(t *testing.T) {
		rec := httptest.NewRecorder()
		provider := &stubProvider{err: errors.New("artifact missing")}
		newTestRouter(&stubUseCase{}, provider, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))

		require.Equal(t, http.StatusServiceUnavailable, rec.Code)
		var body ReadinessResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "not_ready", body.Status)
		assert.Equal(t, "unavailable", body.Checks["pipelines"])
	})
}

func TestMetricsRoute(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubUseCase{}, &stubProvider{}, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "autojudge_predictions_total")
}

// --- HTML form ---

func submitForm(t *testing.T, h http.Handler, values url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestForm_Show(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubUseCase{}, &stubProvider{}, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/html")
	body := rec.Body.String()
	assert.Contains(t, body, "Predict Programming Problem Difficulty")
	assert.Contains(t, body, `name="description"`)
	assert.Contains(t, body, `name="input_description"`)
	assert.Contains(t, body, `name="output_description"`)
	assert.NotContains(t, body, "Prediction Results")
}

func TestForm_UnknownPath(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&stubUseCase{}, &stubProvider{}, 0).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestForm_Submit(t *testing.T) {
	tests := []struct {
		name       string
		label      string
		wantBanner string
		wantText   string
	}{
		{"easy", "easy", `class="banner success"`, "Suitable for beginners."},
		{"medium", "medium", `class="banner info"`, "Requires intermediate problem-solving skills."},
		{"hard", "hard", `class="banner error"`, "Challenging problem (advanced level)."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{resp: dto.FromModel(model.Prediction{ClassLabel: tt.label, Score: 2.005})}
			rec := submitForm(t, newTestRouter(uc, &stubProvider{}, 0), url.Values{
				"description":        {"Count <subarrays> & sums"},
				"input_description":  {"n"},
				"output_description": {"answer"},
			})

			require.Equal(t, http.StatusOK, rec.Code)
			body := rec.Body.String()
			assert.Contains(t, body, "Prediction Results")
			assert.Contains(t, body, tt.wantBanner)
			assert.Contains(t, body, tt.wantText)
			assert.Contains(t, body, dto.FormatScore(2.005))
			// Submitted text is echoed back escaped.
			assert.Contains(t, body, "Count &lt;subarrays&gt; &amp; sums")

			require.Len(t, uc.calls, 1)
			assert.Equal(t, "Count <subarrays> & sums", uc.calls[0].Description)
			assert.Equal(t, "n", uc.calls[0].InputDescription)
			assert.Equal(t, "answer", uc.calls[0].OutputDescription)
		})
	}
}

func TestForm_BlankDescriptionWarns(t *testing.T) {
	uc := &stubUseCase{err: model.ErrBlankDescription}
	rec := submitForm(t, newTestRouter(uc, &stubProvider{}, 0), url.Values{"description": {"   "}})

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.Contains(t, body, dto.AdvisoryBlankDescription)
	assert.NotContains(t, body, "Prediction Results")
}

func TestForm_ModelsUnavailable(t *testing.T) {
	uc := &stubUseCase{err: &service.ModelUnavailableError{Err: errors.New("missing")}}
	rec := submitForm(t, newTestRouter(uc, &stubProvider{}, 0), url.Values{"description": {"x"}})

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "could not be predicted")
	assert.NotContains(t, rec.Body.String(), "Prediction Results")
}

type brokenWriter struct {
	header http.Header
	status int
}

func (b *brokenWriter) Header() http.Header { return b.header }
func (b *brokenWriter) WriteHeader(status int) { b.status = status }
func (b *brokenWriter) Write([]byte) (int, error) { return 0, errors.New("connection reset") }

func TestWriteJSON_LogsEncodeFailure(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&logs, nil))
	w := &brokenWriter{header: http.Header{}}

	writeJSON(w, logger, http.StatusOK, HealthResponse{Status: "ok"})

	assert.Equal(t, http.StatusOK, w.status)
	assert.Equal(t, "application/json", w.header.Get("Content-Type"))

	var entry map[string]any
	require.NoError(t, json.Unmarshal(logs.Bytes(), &entry))
	assert.Equal(t, "ERROR", entry["level"])
	assert.Equal(t, "failed to write response", entry["msg"])
	assert.Contains(t, entry["error"], "connection reset")
}
