package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/praveenr-web/AutoJudge/internal/domain/port"
)

// Compile-time assertion that PredictionMetrics implements port.PredictionRecorder.
var _ port.PredictionRecorder = (*PredictionMetrics)(nil)

const meterName = "github.com/praveenr-web/AutoJudge"

// PredictionMetrics records prediction and model load metrics through the
// OpenTelemetry metric API.
type PredictionMetrics struct {
	predictions metric.Int64Counter
	duration    metric.Float64Histogram
	loads       metric.Int64Counter
}

// NewPredictionMetrics registers the instruments on the given provider.
func NewPredictionMetrics(provider metric.MeterProvider) (*PredictionMetrics, error) {
	meter := provider.Meter(meterName)

	predictions, err := meter.Int64Counter("autojudge_predictions",
		metric.WithDescription("Difficulty prediction requests by outcome."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating predictions counter: %w", err)
	}

	duration, err := meter.Float64Histogram("autojudge_prediction_duration",
		metric.WithDescription("Time spent serving a difficulty prediction."),
		metric.WithUnit("s"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating duration histogram: %w", err)
	}

	loads, err := meter.Int64Counter("autojudge_model_loads",
		metric.WithDescription("Pipeline artifact load attempts by result."),
	)
	if err != nil {
		return nil, fmt.Errorf("creating model loads counter: %w", err)
	}

	return &PredictionMetrics{
		predictions: predictions,
		duration:    duration,
		loads:       loads,
	}, nil
}

// RecordPrediction counts one prediction request and its latency.
// classLabel is only attached for successful predictions.
func (m *PredictionMetrics) RecordPrediction(ctx context.Context, outcome string, classLabel string, seconds float64) {
	attrs := []attribute.KeyValue{attribute.String("outcome", outcome)}
	if outcome == port.OutcomeSuccess {
		attrs = append(attrs, attribute.String("class_label", classLabel))
	}

	m.predictions.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.duration.Record(ctx, seconds, metric.WithAttributes(attribute.String("outcome", outcome)))
}

// RecordModelLoad counts one pipeline load attempt.
func (m *PredictionMetrics) RecordModelLoad(ctx context.Context, result string) {
	m.loads.Add(ctx, 1, metric.WithAttributes(attribute.String("result", result)))
}
