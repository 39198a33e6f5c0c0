package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/praveenr-web/AutoJudge/internal/domain/model"
)

func singleRow(t *testing.T, table model.FeatureTable) model.FeatureRecord {
	t.Helper()
	require.Equal(t, 1, table.Len())
	return table.Rows[0]
}

func TestBuildFeatures_CombinedText(t *testing.T) {
	tests := []struct {
		name     string
		d, i, o  string
		expected string
	}{
		{"all fields", "desc", "in", "out", "desc in out"},
		{"empty input and output", "desc", "", "", "desc  "},
		{"all empty", "", "", "", "  "},
		{"whitespace preserved", "  a ", "\tb", "c\n", "  a  \tb c\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := singleRow(t, model.BuildFeatures(tt.d, tt.i, tt.o))
			assert.Equal(t, tt.expected, row.CombinedText)
			assert.Equal(t, tt.d+" "+tt.i+" "+tt.o, row.CombinedText)
		})
	}
}

func TestBuildFeatures_Counts(t *testing.T) {
	// "a1+b2=c3" joined with two empty fields gains two trailing spaces.
	row := singleRow(t, model.BuildFeatures("a1+b2=c3", "", ""))
	assert.Equal(t, 10, row.TextLength)
	assert.Equal(t, 3, row.DigitCount)
	assert.Equal(t, 2, row.SymbolCount)
}

func TestBuildFeatures_CountsOnCombinedText(t *testing.T) {
	row := singleRow(t, model.BuildFeatures("a1+b2", "=c3", ""))
	assert.Equal(t, "a1+b2 =c3 ", row.CombinedText)
	assert.Equal(t, 10, row.TextLength)
	assert.Equal(t, 3, row.DigitCount)
	assert.Equal(t, 2, row.SymbolCount)
}

func TestBuildFeatures_AllSymbols(t *testing.T) {
	row := singleRow(t, model.BuildFeatures("+-*/=<>", "%^&", "!"))
	assert.Equal(t, 7, row.SymbolCount)
	assert.Equal(t, 0, row.DigitCount)
}

func TestBuildFeatures_TextLengthCountsRunes(t *testing.T) {
	row := singleRow(t, model.BuildFeatures("héllo", "", ""))
	assert.Equal(t, 7, row.TextLength)
}

func TestBuildFeatures_DigitsAreASCIIOnly(t *testing.T) {
	// Arabic-Indic digits are not counted.
	row := singleRow(t, model.BuildFeatures("12٣٤", "", ""))
	assert.Equal(t, 2, row.DigitCount)
}

func TestBuildFeatures_Keywords(t *testing.T) {
	tests := []struct {
		name                         string
		text                         string
		graph, tree, dp, recursion int
	}{
		{"case insensitive graph and tree", "This Graph has a TREE structure", 1, 1, 0, 0},
		{"dynamic programming phrase", "Solve with Dynamic Programming", 0, 0, 1, 0},
		{"bare dp substring", "adpx", 0, 0, 1, 0},
		{"dp false positive", "dpendency", 0, 0, 1, 0},
		{"recursion", "Use RECURSION carefully", 0, 0, 0, 1},
		{"no keywords", "Sum two numbers", 0, 0, 0, 0},
		{"substring inside word", "subtrees of a paragraphs", 1, 1, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			row := singleRow(t, model.BuildFeatures(tt.text, "", ""))
			assert.Equal(t, tt.graph, row.KwGraph, "kw_graph")
			assert.Equal(t, tt.tree, row.KwTree, "kw_tree")
			assert.Equal(t, tt.dp, row.KwDP, "kw_dp")
			assert.Equal(t, tt.recursion, row.KwRecursion, "kw_recursion")
		})
	}
}

func TestBuildFeatures_KeywordAcrossFields(t *testing.T) {
	// Joining spaces separate the fields, so "gra" + "ph" never matches.
	row := singleRow(t, model.BuildFeatures("gra", "ph", ""))
	assert.Equal(t, 0, row.KwGraph)

	row = singleRow(t, model.BuildFeatures("d", "", "tree"))
	assert.Equal(t, 1, row.KwTree)
}

func TestBuildFeatures_Deterministic(t *testing.T) {
	first := model.BuildFeatures("Find shortest path in a graph", "n m", "one int")
	second := model.BuildFeatures("Find shortest path in a graph", "n m", "one int")
	assert.Equal(t, first, second)
}

func TestFeatureTable_Columns(t *testing.T) {
	table := model.BuildFeatures("x", "y", "z")
	assert.Equal(t, []string{
		"combined_text",
		"text_length",
		"digit_count",
		"symbol_count",
		"kw_graph",
		"kw_tree",
		"kw_dp",
		"kw_recursion",
	}, table.Columns())

	// Mutating the returned slice must not affect the canonical order.
	cols := table.Columns()
	cols[0] = "changed"
	assert.Equal(t, "combined_text", model.FeatureColumns[0])
}

func TestFeatureRecord_Values(t *testing.T) {
	row := singleRow(t, model.BuildFeatures("graph 1", "", ""))
	values := row.Values()
	require.Len(t, values, len(model.FeatureColumns))
	assert.Equal(t, "graph 1  ", values[0])
	assert.Equal(t, 9, values[1])
	assert.Equal(t, 1, values[2])
	assert.Equal(t, 0, values[3])
	assert.Equal(t, 1, values[4])
}

func TestFeatureRecord_Lookups(t *testing.T) {
	row := singleRow(t, model.BuildFeatures("tree 42", "", ""))

	v, ok := row.Numeric(model.ColumnDigitCount)
	require.True(t, ok)
	assert.Equal(t, 2.0, v)

	v, ok = row.Numeric(model.ColumnKwTree)
	require.True(t, ok)
	assert.Equal(t, 1.0, v)

	_, ok = row.Numeric(model.ColumnCombinedText)
	assert.False(t, ok)

	text, ok := row.Text(model.ColumnCombinedText)
	require.True(t, ok)
	assert.Equal(t, "tree 42  ", text)

	_, ok = row.Text(model.ColumnTextLength)
	assert.False(t, ok)
}

func TestProblemStatement_Validate(t *testing.T) {
	tests := []struct {
		name        string
		description string
		wantErr     bool
	}{
		{"non-empty", "Find a path", false},
		{"padded", "  x  ", false},
		{"empty", "", true},
		{"spaces only", "   ", true},
		{"tabs and newlines", "\t\n ", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := model.NewProblemStatement(tt.description, "input", "output").Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrBlankDescription)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestBuildFeaturesFor_UsesUntrimmedFields(t *testing.T) {
	p := model.NewProblemStatement("  graph  ", "", "")
	row := singleRow(t, model.BuildFeaturesFor(p))
	assert.Equal(t, "  graph    ", row.CombinedText)
}
