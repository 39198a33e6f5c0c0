package model

import (
	"strings"
	"unicode/utf8"
)

// Feature column names. The order of FeatureColumns is the order the
// pipelines were trained on and must not change.
const (
	ColumnCombinedText = "combined_text"
	ColumnTextLength   = "text_length"
	ColumnDigitCount   = "digit_count"
	ColumnSymbolCount  = "symbol_count"
	ColumnKwGraph      = "kw_graph"
	ColumnKwTree       = "kw_tree"
	ColumnKwDP         = "kw_dp"
	ColumnKwRecursion  = "kw_recursion"
)

// FeatureColumns lists every feature column in table order.
var FeatureColumns = []string{
	ColumnCombinedText,
	ColumnTextLength,
	ColumnDigitCount,
	ColumnSymbolCount,
	ColumnKwGraph,
	ColumnKwTree,
	ColumnKwDP,
	ColumnKwRecursion,
}

// symbolSet holds the characters counted by SymbolCount.
const symbolSet = "+-*/=<>"

// FeatureRecord is the engineered representation of a problem statement.
type FeatureRecord struct {
	CombinedText string `json:"combined_text" yaml:"combined_text"`
	TextLength   int    `json:"text_length" yaml:"text_length"`
	DigitCount   int    `json:"digit_count" yaml:"digit_count"`
	SymbolCount  int    `json:"symbol_count" yaml:"symbol_count"`
	KwGraph      int    `json:"kw_graph" yaml:"kw_graph"`
	KwTree       int    `json:"kw_tree" yaml:"kw_tree"`
	KwDP         int    `json:"kw_dp" yaml:"kw_dp"`
	KwRecursion  int    `json:"kw_recursion" yaml:"kw_recursion"`
}

// Values returns the record's values in FeatureColumns order. The first
// element is the combined text; the rest are ints.
func (r FeatureRecord) Values() []any {
	return []any{
		r.CombinedText,
		r.TextLength,
		r.DigitCount,
		r.SymbolCount,
		r.KwGraph,
		r.KwTree,
		r.KwDP,
		r.KwRecursion,
	}
}

// Numeric returns the value of a numeric column by name.
func (r FeatureRecord) Numeric(column string) (float64, bool) {
	switch column {
	case ColumnTextLength:
		return float64(r.TextLength), true
	case ColumnDigitCount:
		return float64(r.DigitCount), true
	case ColumnSymbolCount:
		return float64(r.SymbolCount), true
	case ColumnKwGraph:
		return float64(r.KwGraph), true
	case ColumnKwTree:
		return float64(r.KwTree), true
	case ColumnKwDP:
		return float64(r.KwDP), true
	case ColumnKwRecursion:
		return float64(r.KwRecursion), true
	default:
		return 0, false
	}
}

// Text returns the value of a text column by name.
func (r FeatureRecord) Text(column string) (string, bool) {
	if column == ColumnCombinedText {
		return r.CombinedText, true
	}
	return "", false
}

// FeatureTable is the single-row tabular input the pipelines consume.
type FeatureTable struct {
	Rows []FeatureRecord
}

// Columns returns the table's column names in order.
func (t FeatureTable) Columns() []string {
	cols := make([]string, len(FeatureColumns))
	copy(cols, FeatureColumns)
	return cols
}

// Len returns the number of rows.
func (t FeatureTable) Len() int {
	return len(t.Rows)
}

// BuildFeatures derives the feature table for one problem statement.
// Keyword flags are plain substring checks on the lower-cased text, so
// "adpx" sets kw_dp. Pipelines were trained on exactly this behaviour.
func BuildFeatures(description, inputDescription, outputDescription string) FeatureTable {
	combined := description + " " + inputDescription + " " + outputDescription
	lower := strings.ToLower(combined)

	record := FeatureRecord{
		CombinedText: combined,
		TextLength:   utf8.RuneCountInString(combined),
		DigitCount:   countDigits(combined),
		SymbolCount:  countSymbols(combined),
		KwGraph:      flag(strings.Contains(lower, "graph")),
		KwTree:       flag(strings.Contains(lower, "tree")),
		KwDP:         flag(strings.Contains(lower, "dp") || strings.Contains(lower, "dynamic programming")),
		KwRecursion:  flag(strings.Contains(lower, "recursion")),
	}

	return FeatureTable{Rows: []FeatureRecord{record}}
}

// BuildFeaturesFor is BuildFeatures applied to a ProblemStatement.
func BuildFeaturesFor(p ProblemStatement) FeatureTable {
	return BuildFeatures(p.Description, p.InputDescription, p.OutputDescription)
}

func countDigits(s string) int {
	n := 0
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			n++
		}
	}
	return n
}

func countSymbols(s string) int {
	n := 0
	for _, r := range s {
		if strings.ContainsRune(symbolSet, r) {
			n++
		}
	}
	return n
}

func flag(b bool) int {
	if b {
		return 1
	}
	return 0
}
