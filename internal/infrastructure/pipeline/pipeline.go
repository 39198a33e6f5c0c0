package pipeline

import (
	"context"
	"fmt"
	"math"
	"slices"

	"github.com/praveenr-web/AutoJudge/internal/domain/model"
	"github.com/praveenr-web/AutoJudge/internal/domain/port"
)

// Compile-time assertions that the pipelines satisfy the domain ports.
var (
	_ port.Classifier = (*Classifier)(nil)
	_ port.Regressor  = (*Regressor)(nil)
)

// Classifier is a loaded classification pipeline. It holds no mutable
// state after construction and is safe for concurrent use.
type Classifier struct {
	artifact *Artifact
}

// NewClassifier builds a Classifier from a validated artifact.
func NewClassifier(a *Artifact) (*Classifier, error) {
	if a.Kind != KindClassifier {
		return nil, fmt.Errorf("artifact kind is %q, want %q", a.Kind, KindClassifier)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &Classifier{artifact: a}, nil
}

// Classes returns the labels the classifier can produce.
func (c *Classifier) Classes() []string {
	return slices.Clone(c.artifact.Estimator.Classes)
}

// PredictClass returns the most likely class label for each row.
func (c *Classifier) PredictClass(ctx context.Context, table model.FeatureTable) ([]string, error) {
	if err := checkTable(ctx, c.artifact, table); err != nil {
		return nil, err
	}

	est := c.artifact.Estimator
	labels := make([]string, 0, table.Len())
	for _, row := range table.Rows {
		x, err := c.artifact.transform(row)
		if err != nil {
			return nil, err
		}

		if len(est.Coef) == 1 {
			// Binary model: one decision function, positive means classes[1].
			d := dot(est.Coef[0], x) + est.Intercept[0]
			if math.IsNaN(d) {
				return nil, fmt.Errorf("decision value is NaN")
			}
			if d > 0 {
				labels = append(labels, est.Classes[1])
			} else {
				labels = append(labels, est.Classes[0])
			}
			continue
		}

		best, bestScore := 0, math.Inf(-1)
		for k, w := range est.Coef {
			d := dot(w, x) + est.Intercept[k]
			if math.IsNaN(d) {
				return nil, fmt.Errorf("decision value for class %q is NaN", est.Classes[k])
			}
			if d > bestScore {
				best, bestScore = k, d
			}
		}
		labels = append(labels, est.Classes[best])
	}

	return labels, nil
}

// Regressor is a loaded regression pipeline. It holds no mutable state
// after construction and is safe for concurrent use.
type Regressor struct {
	artifact *Artifact
}

// NewRegressor builds a Regressor from a validated artifact.
func NewRegressor(a *Artifact) (*Regressor, error) {
	if a.Kind != KindRegressor {
		return nil, fmt.Errorf("artifact kind is %q, want %q", a.Kind, KindRegressor)
	}
	if err := a.Validate(); err != nil {
		return nil, err
	}
	return &Regressor{artifact: a}, nil
}

// PredictScore returns the predicted difficulty score for each row.
func (r *Regressor) PredictScore(ctx context.Context, table model.FeatureTable) ([]float64, error) {
	if err := checkTable(ctx, r.artifact, table); err != nil {
		return nil, err
	}

	est := r.artifact.Estimator
	scores := make([]float64, 0, table.Len())
	for _, row := range table.Rows {
		x, err := r.artifact.transform(row)
		if err != nil {
			return nil, err
		}
		y := dot(est.Coef[0], x) + est.Intercept[0]
		if math.IsNaN(y) || math.IsInf(y, 0) {
			return nil, fmt.Errorf("score is not finite: %v", y)
		}
		scores = append(scores, y)
	}

	return scores, nil
}

func checkTable(ctx context.Context, a *Artifact, table model.FeatureTable) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !slices.Equal(table.Columns(), a.Columns) {
		return fmt.Errorf("feature columns %v do not match trained columns %v", table.Columns(), a.Columns)
	}
	if table.Len() == 0 {
		return fmt.Errorf("feature table is empty")
	}
	return nil
}
