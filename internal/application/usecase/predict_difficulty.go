package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/praveenr-web/AutoJudge/internal/application/dto"
	"github.com/praveenr-web/AutoJudge/internal/domain/model"
	"github.com/praveenr-web/AutoJudge/internal/domain/port"
	"github.com/praveenr-web/AutoJudge/internal/domain/service"
)

// Predictor is the domain capability the use case drives.
type Predictor interface {
	Predict(ctx context.Context, statement model.ProblemStatement) (model.Prediction, error)
}

// Compile-time assertion that the domain service satisfies Predictor.
var _ Predictor = (*service.DifficultyPredictor)(nil)

// PredictDifficulty is the use case for predicting the difficulty of one
// programming problem.
type PredictDifficulty struct {
	predictor Predictor
	recorder  port.PredictionRecorder
	tracer    trace.Tracer
	logger    *slog.Logger
}

// NewPredictDifficulty creates a new PredictDifficulty use case. recorder
// may be nil.
func NewPredictDifficulty(predictor Predictor, recorder port.PredictionRecorder, logger *slog.Logger) *PredictDifficulty {
	return &PredictDifficulty{
		predictor: predictor,
		recorder:  recorder,
		tracer:    otel.Tracer("github.com/praveenr-web/AutoJudge/internal/application/usecase"),
		logger:    logger,
	}
}

// Execute runs the prediction and maps the result to the response DTO.
// Errors from the domain service are returned wrapped, so callers can
// still match model.ErrBlankDescription, *service.ModelUnavailableError
// and *service.PredictionError.
func (uc *PredictDifficulty) Execute(ctx context.Context, req dto.PredictDifficultyRequest) (dto.PredictionResponse, error) {
	ctx, span := uc.tracer.Start(ctx, "PredictDifficulty")
	defer span.End()

	start := time.Now()
	prediction, err := uc.predictor.Predict(ctx, req.ToModel())
	elapsed := time.Since(start).Seconds()

	outcome := Outcome(err)
	uc.record(ctx, outcome, prediction.ClassLabel, elapsed)
	span.SetAttributes(attribute.String("autojudge.outcome", outcome))

	if err != nil {
		if outcome == port.OutcomeInvalid {
			uc.logger.DebugContext(ctx, "prediction rejected", "reason", err.Error())
		} else {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			uc.logger.ErrorContext(ctx, "prediction failed", "outcome", outcome, "error", err)
		}
		return dto.PredictionResponse{}, fmt.Errorf("failed to predict difficulty: %w", err)
	}

	span.SetAttributes(attribute.String("autojudge.class_label", prediction.ClassLabel))
	uc.logger.InfoContext(ctx, "prediction served",
		"class_label", prediction.ClassLabel,
		"score", prediction.Score,
		"duration_ms", time.Duration(elapsed*float64(time.Second)).Milliseconds(),
	)

	return dto.FromModel(prediction), nil
}

func (uc *PredictDifficulty) record(ctx context.Context, outcome, classLabel string, seconds float64) {
	if uc.recorder != nil {
		uc.recorder.RecordPrediction(ctx, outcome, classLabel, seconds)
	}
}

// Outcome classifies a prediction error for metrics and logging.
func Outcome(err error) string {
	var unavailable *service.ModelUnavailableError
	var predErr *service.PredictionError

	switch {
	case err == nil:
		return port.OutcomeSuccess
	case errors.Is(err, model.ErrBlankDescription):
		return port.OutcomeInvalid
	case errors.As(err, &unavailable):
		return port.OutcomeModelUnavailable
	case errors.As(err, &predErr):
		return port.OutcomePredictionFailed
	default:
		return port.OutcomePredictionFailed
	}
}
