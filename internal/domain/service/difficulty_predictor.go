package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/praveenr-web/AutoJudge/internal/domain/model"
	"github.com/praveenr-web/AutoJudge/internal/domain/port"
)

// DifficultyPredictor is the domain service that runs the classifier and
// regressor pipelines against the features of a problem statement.
type DifficultyPredictor struct {
	pipelines port.PipelineProvider
	logger    *slog.Logger
}

// NewDifficultyPredictor creates a DifficultyPredictor backed by the given
// pipeline provider.
func NewDifficultyPredictor(pipelines port.PipelineProvider, logger *slog.Logger) *DifficultyPredictor {
	return &DifficultyPredictor{
		pipelines: pipelines,
		logger:    logger,
	}
}

// Predict validates the statement and returns the predicted class label and
// score. A blank description returns model.ErrBlankDescription before any
// pipeline is touched. Either both values are returned or an error is.
func (p *DifficultyPredictor) Predict(ctx context.Context, statement model.ProblemStatement) (model.Prediction, error) {
	if err := statement.Validate(); err != nil {
		return model.Prediction{}, err
	}

	pipelines, err := p.pipelines.Pipelines(ctx)
	if err != nil {
		return model.Prediction{}, &ModelUnavailableError{Err: err}
	}

	table := model.BuildFeaturesFor(statement)

	labels, err := pipelines.Classifier.PredictClass(ctx, table)
	if err != nil {
		return model.Prediction{}, &PredictionError{Stage: StageClassifier, Err: err}
	}
	if len(labels) != table.Len() {
		return model.Prediction{}, &PredictionError{
			Stage: StageClassifier,
			Err:   fmt.Errorf("expected %d result, got %d", table.Len(), len(labels)),
		}
	}

	scores, err := pipelines.Regressor.PredictScore(ctx, table)
	if err != nil {
		return model.Prediction{}, &PredictionError{Stage: StageRegressor, Err: err}
	}
	if len(scores) != table.Len() {
		return model.Prediction{}, &PredictionError{
			Stage: StageRegressor,
			Err:   fmt.Errorf("expected %d result, got %d", table.Len(), len(scores)),
		}
	}

	p.logger.DebugContext(ctx, "difficulty predicted",
		slog.String("class_label", labels[0]),
		slog.Float64("score", scores[0]),
		slog.Int("text_length", table.Rows[0].TextLength),
	)

	return model.Prediction{
		ClassLabel: labels[0],
		Score:      scores[0],
	}, nil
}
