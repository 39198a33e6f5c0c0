package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/praveenr-web/AutoJudge/internal/domain/model"
)

// Artifact kinds.
const (
	KindClassifier = "classifier"
	KindRegressor  = "regressor"
)

// Estimator types.
const (
	EstimatorLogisticRegression = "logistic_regression"
	EstimatorLinearRegression   = "linear_regression"
)

// Text normalisation modes.
const (
	NormL2   = "l2"
	NormNone = "none"
)

// Artifact is the serialized form of a trained pipeline: a TF-IDF step
// over the text column, a standardisation step over numeric columns, and
// a linear estimator over their concatenation.
type Artifact struct {
	Kind      string        `json:"kind" yaml:"kind"`
	Version   int           `json:"version" yaml:"version"`
	Columns   []string      `json:"columns" yaml:"columns"`
	Text      *TextStep     `json:"text,omitempty" yaml:"text,omitempty"`
	Numeric   *NumericStep  `json:"numeric,omitempty" yaml:"numeric,omitempty"`
	Estimator EstimatorSpec `json:"estimator" yaml:"estimator"`
}

// TextStep configures TF-IDF vectorisation of one text column.
type TextStep struct {
	Column         string         `json:"column" yaml:"column"`
	Lowercase      bool           `json:"lowercase" yaml:"lowercase"`
	MinTokenLength int            `json:"min_token_length,omitempty" yaml:"min_token_length,omitempty"`
	Vocabulary     map[string]int `json:"vocabulary" yaml:"vocabulary"`
	IDF            []float64      `json:"idf" yaml:"idf"`
	Norm           string         `json:"norm,omitempty" yaml:"norm,omitempty"`
	SublinearTF    bool           `json:"sublinear_tf,omitempty" yaml:"sublinear_tf,omitempty"`
}

// NumericStep configures standardisation of numeric columns. Mean and
// Scale may be empty, in which case values pass through.
type NumericStep struct {
	Columns []string  `json:"columns" yaml:"columns"`
	Mean    []float64 `json:"mean,omitempty" yaml:"mean,omitempty"`
	Scale   []float64 `json:"scale,omitempty" yaml:"scale,omitempty"`
}

// EstimatorSpec holds the fitted linear model.
type EstimatorSpec struct {
	Type      string      `json:"type" yaml:"type"`
	Classes   []string    `json:"classes,omitempty" yaml:"classes,omitempty"`
	Coef      [][]float64 `json:"coef" yaml:"coef"`
	Intercept []float64   `json:"intercept" yaml:"intercept"`
}

// ReadArtifact reads and validates the artifact at path. Files ending in
// .yaml or .yml are decoded as YAML, everything else as JSON. Unknown
// fields are rejected.
func ReadArtifact(path string) (*Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading artifact %s: %w", path, err)
	}

	a, err := DecodeArtifact(data, formatFor(path))
	if err != nil {
		return nil, fmt.Errorf("decoding artifact %s: %w", path, err)
	}

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("invalid artifact %s: %w", path, err)
	}

	return a, nil
}

// DecodeArtifact decodes an artifact in the given format ("json" or "yaml")
// without validating it.
func DecodeArtifact(data []byte, format string) (*Artifact, error) {
	var a Artifact
	switch format {
	case "yaml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&a); err != nil {
			return nil, err
		}
	case "json":
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&a); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unsupported artifact format %q", format)
	}
	return &a, nil
}

// EncodeArtifact serializes an artifact in the given format.
func EncodeArtifact(a *Artifact, format string) ([]byte, error) {
	switch format {
	case "yaml":
		return yaml.Marshal(a)
	case "json":
		return json.MarshalIndent(a, "", "  ")
	default:
		return nil, fmt.Errorf("unsupported artifact format %q", format)
	}
}

func formatFor(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return "yaml"
	default:
		return "json"
	}
}

// Dim returns the length of the transformed feature vector.
func (a *Artifact) Dim() int {
	dim := 0
	if a.Text != nil {
		dim += len(a.Text.IDF)
	}
	if a.Numeric != nil {
		dim += len(a.Numeric.Columns)
	}
	return dim
}

// Validate checks the artifact for internal consistency and against the
// feature schema. A pipeline trained on a different column layout is
// rejected here rather than producing wrong predictions later.
func (a *Artifact) Validate() error {
	if a.Kind != KindClassifier && a.Kind != KindRegressor {
		return fmt.Errorf("unknown kind %q", a.Kind)
	}

	if !slices.Equal(a.Columns, model.FeatureColumns) {
		return fmt.Errorf("column schema mismatch: artifact has %v, expected %v", a.Columns, model.FeatureColumns)
	}

	if a.Text == nil && a.Numeric == nil {
		return fmt.Errorf("artifact has no transform steps")
	}

	if a.Text != nil {
		if err := a.Text.validate(); err != nil {
			return fmt.Errorf("text step: %w", err)
		}
	}

	if a.Numeric != nil {
		if err := a.Numeric.validate(); err != nil {
			return fmt.Errorf("numeric step: %w", err)
		}
	}

	if err := a.Estimator.validate(a.Kind, a.Dim()); err != nil {
		return fmt.Errorf("estimator: %w", err)
	}

	return nil
}

func (s *TextStep) validate() error {
	if _, ok := (model.FeatureRecord{}).Text(s.Column); !ok {
		return fmt.Errorf("%q is not a text column", s.Column)
	}
	if len(s.Vocabulary) != len(s.IDF) {
		return fmt.Errorf("vocabulary has %d terms but idf has %d weights", len(s.Vocabulary), len(s.IDF))
	}
	for term, idx := range s.Vocabulary {
		if idx < 0 || idx >= len(s.IDF) {
			return fmt.Errorf("term %q index %d out of range", term, idx)
		}
	}
	switch s.Norm {
	case "", NormL2, NormNone:
	default:
		return fmt.Errorf("unknown norm %q", s.Norm)
	}
	if s.MinTokenLength < 0 {
		return fmt.Errorf("min_token_length must not be negative")
	}
	return nil
}

func (s *NumericStep) validate() error {
	if len(s.Columns) == 0 {
		return fmt.Errorf("no columns")
	}
	for _, col := range s.Columns {
		if _, ok := (model.FeatureRecord{}).Numeric(col); !ok {
			return fmt.Errorf("%q is not a numeric column", col)
		}
	}
	if len(s.Mean) != 0 && len(s.Mean) != len(s.Columns) {
		return fmt.Errorf("mean has %d values for %d columns", len(s.Mean), len(s.Columns))
	}
	if len(s.Scale) != 0 && len(s.Scale) != len(s.Columns) {
		return fmt.Errorf("scale has %d values for %d columns", len(s.Scale), len(s.Columns))
	}
	return nil
}

func (e *EstimatorSpec) validate(kind string, dim int) error {
	switch kind {
	case KindClassifier:
		if e.Type != EstimatorLogisticRegression {
			return fmt.Errorf("classifier needs %s, got %q", EstimatorLogisticRegression, e.Type)
		}
		if len(e.Classes) < 2 {
			return fmt.Errorf("classifier needs at least 2 classes, got %d", len(e.Classes))
		}
		binary := len(e.Classes) == 2 && len(e.Coef) == 1
		if !binary && len(e.Coef) != len(e.Classes) {
			return fmt.Errorf("%d coefficient rows for %d classes", len(e.Coef), len(e.Classes))
		}
	case KindRegressor:
		if e.Type != EstimatorLinearRegression {
			return fmt.Errorf("regressor needs %s, got %q", EstimatorLinearRegression, e.Type)
		}
		if len(e.Coef) != 1 {
			return fmt.Errorf("regressor needs 1 coefficient row, got %d", len(e.Coef))
		}
	}

	if len(e.Intercept) != len(e.Coef) {
		return fmt.Errorf("%d intercepts for %d coefficient rows", len(e.Intercept), len(e.Coef))
	}
	for i, row := range e.Coef {
		if len(row) != dim {
			return fmt.Errorf("coefficient row %d has %d weights, feature vector has %d", i, len(row), dim)
		}
	}
	return nil
}
