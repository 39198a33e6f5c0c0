package port

import (
	"context"

	"github.com/praveenr-web/AutoJudge/internal/domain/model"
)

// Classifier is a loaded difficulty classification pipeline.
// Implementations must be safe for concurrent use.
type Classifier interface {
	// PredictClass returns one class label per row of the table.
	PredictClass(ctx context.Context, table model.FeatureTable) ([]string, error)
}

// Regressor is a loaded difficulty regression pipeline.
// Implementations must be safe for concurrent use.
type Regressor interface {
	// PredictScore returns one score per row of the table.
	PredictScore(ctx context.Context, table model.FeatureTable) ([]float64, error)
}

// Pipelines groups the two loaded pipelines.
type Pipelines struct {
	Classifier Classifier
	Regressor  Regressor
}

// PipelineProvider hands out the process-wide pipelines, loading them on
// first use.
type PipelineProvider interface {
	// Pipelines returns the loaded pipelines or the error that prevented
	// loading them.
	Pipelines(ctx context.Context) (Pipelines, error)
}

// Prediction outcomes reported to a PredictionRecorder.
const (
	OutcomeSuccess          = "success"
	OutcomeInvalid          = "invalid"
	OutcomeModelUnavailable = "model_unavailable"
	OutcomePredictionFailed = "prediction_failed"
)

// PredictionRecorder receives the outcome of each prediction request.
type PredictionRecorder interface {
	RecordPrediction(ctx context.Context, outcome string, classLabel string, seconds float64)
}
