package pipeline

import "sort"

// Summary describes an artifact without exposing its weights.
type Summary struct {
	Kind           string   `json:"kind"`
	Version        int      `json:"version"`
	Estimator      string   `json:"estimator"`
	Columns        []string `json:"columns"`
	TextColumn     string   `json:"text_column,omitempty"`
	VocabularySize int      `json:"vocabulary_size"`
	NumericColumns []string `json:"numeric_columns,omitempty"`
	Classes        []string `json:"classes,omitempty"`
	FeatureDim     int      `json:"feature_dim"`
	TopTerms       []string `json:"top_terms,omitempty"`
}

// Summarize returns a Summary of the artifact. TopTerms lists up to
// topN vocabulary terms with the highest idf weight; a negative topN
// lists none.
func (a *Artifact) Summarize(topN int) Summary {
	topN = max(topN, 0)
	s := Summary{
		Kind:       a.Kind,
		Version:    a.Version,
		Estimator:  a.Estimator.Type,
		Columns:    a.Columns,
		Classes:    a.Estimator.Classes,
		FeatureDim: a.Dim(),
	}

	if a.Text != nil {
		s.TextColumn = a.Text.Column
		s.VocabularySize = len(a.Text.Vocabulary)

		terms := make([]string, 0, len(a.Text.Vocabulary))
		for term := range a.Text.Vocabulary {
			terms = append(terms, term)
		}
		sort.Slice(terms, func(i, j int) bool {
			wi := a.Text.IDF[a.Text.Vocabulary[terms[i]]]
			wj := a.Text.IDF[a.Text.Vocabulary[terms[j]]]
			if wi != wj {
				return wi > wj
			}
			return terms[i] < terms[j]
		})
		if len(terms) > topN {
			terms = terms[:topN]
		}
		if len(terms) > 0 {
			s.TopTerms = terms
		}
	}

	if a.Numeric != nil {
		s.NumericColumns = a.Numeric.Columns
	}

	return s
}
