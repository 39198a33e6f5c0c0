package pipeline

import (
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/praveenr-web/AutoJudge/internal/domain/model"
)

// testClassifierArtifact scores three classes over the terms graph, tree
// and sum plus the kw_dp flag:
//
//	easy   = 2*sum + 0.5
//	medium = 2*graph
//	hard   = 2*tree + 3*kw_dp
func testClassifierArtifact() *Artifact {
	return &Artifact{
		Kind:    KindClassifier,
		Version: 1,
		Columns: slices.Clone(model.FeatureColumns),
		Text: &TextStep{
			Column:     model.ColumnCombinedText,
			Lowercase:  true,
			Vocabulary: map[string]int{"graph": 0, "tree": 1, "sum": 2},
			IDF:        []float64{1, 1, 1},
			Norm:       NormNone,
		},
		Numeric: &NumericStep{
			Columns: []string{model.ColumnKwDP},
		},
		Estimator: EstimatorSpec{
			Type:    EstimatorLogisticRegression,
			Classes: []string{"easy", "medium", "hard"},
			Coef: [][]float64{
				{0, 0, 2, 0},
				{2, 0, 0, 0},
				{0, 2, 0, 3},
			},
			Intercept: []float64{0.5, 0, 0},
		},
	}
}

// testRegressorArtifact scores text_length/10 + 2*kw_graph + 0.5.
func testRegressorArtifact() *Artifact {
	return &Artifact{
		Kind:    KindRegressor,
		Version: 1,
		Columns: slices.Clone(model.FeatureColumns),
		Numeric: &NumericStep{
			Columns: []string{model.ColumnTextLength, model.ColumnKwGraph},
			Mean:    []float64{0, 0},
			Scale:   []float64{10, 1},
		},
		Estimator: EstimatorSpec{
			Type:      EstimatorLinearRegression,
			Coef:      [][]float64{{1, 2}},
			Intercept: []float64{0.5},
		},
	}
}

func writeArtifact(t *testing.T, dir, name string, a *Artifact) string {
	t.Helper()

	format := formatFor(name)
	data, err := EncodeArtifact(a, format)
	require.NoError(t, err)

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}
