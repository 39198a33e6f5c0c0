package pipeline

import (
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/praveenr-web/AutoJudge/internal/domain/model"
)

const defaultMinTokenLength = 2

// transform turns one feature record into the estimator's input vector:
// TF-IDF weights first, standardised numeric columns after.
func (a *Artifact) transform(row model.FeatureRecord) ([]float64, error) {
	x := make([]float64, 0, a.Dim())

	if a.Text != nil {
		text, ok := row.Text(a.Text.Column)
		if !ok {
			return nil, fmt.Errorf("missing text column %q", a.Text.Column)
		}
		x = append(x, a.Text.vectorize(text)...)
	}

	if a.Numeric != nil {
		for i, col := range a.Numeric.Columns {
			v, ok := row.Numeric(col)
			if !ok {
				return nil, fmt.Errorf("missing numeric column %q", col)
			}
			x = append(x, a.Numeric.standardize(i, v))
		}
	}

	return x, nil
}

func (s *TextStep) vectorize(text string) []float64 {
	vec := make([]float64, len(s.IDF))

	if s.Lowercase {
		text = strings.ToLower(text)
	}

	for _, tok := range tokenize(text, s.minTokenLength()) {
		if idx, ok := s.Vocabulary[tok]; ok {
			vec[idx]++
		}
	}

	for i, tf := range vec {
		if tf == 0 {
			continue
		}
		if s.SublinearTF {
			tf = 1 + math.Log(tf)
		}
		vec[i] = tf * s.IDF[i]
	}

	if s.Norm == "" || s.Norm == NormL2 {
		var sum float64
		for _, v := range vec {
			sum += v * v
		}
		if sum > 0 {
			norm := math.Sqrt(sum)
			for i := range vec {
				vec[i] /= norm
			}
		}
	}

	return vec
}

func (s *TextStep) minTokenLength() int {
	if s.MinTokenLength == 0 {
		return defaultMinTokenLength
	}
	return s.MinTokenLength
}

// tokenize splits text into runs of letters, digits and underscores,
// keeping runs of at least minLen runes.
func tokenize(text string, minLen int) []string {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	})

	tokens := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) >= minLen {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func (s *NumericStep) standardize(i int, v float64) float64 {
	if len(s.Mean) > 0 {
		v -= s.Mean[i]
	}
	if len(s.Scale) > 0 && s.Scale[i] != 0 {
		v /= s.Scale[i]
	}
	return v
}

func dot(w, x []float64) float64 {
	var sum float64
	for i := range w {
		sum += w[i] * x[i]
	}
	return sum
}
