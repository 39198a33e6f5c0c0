// Package cli renders predictions, feature records and artifact summaries
// for terminal output.
package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/praveenr-web/AutoJudge/internal/application/dto"
	"github.com/praveenr-web/AutoJudge/internal/domain/model"
	"github.com/praveenr-web/AutoJudge/internal/domain/valueobject"
	"github.com/praveenr-web/AutoJudge/internal/infrastructure/pipeline"
)

const (
	colorSuccess = lipgloss.Color("#2E9E4F")
	colorInfo    = lipgloss.Color("#2F6FD0")
	colorError   = lipgloss.Color("#C83232")
	colorWarning = lipgloss.Color("#C89B1E")
	colorDim     = lipgloss.Color("#888888")
)

// Printer writes styled output to w. Colour is used only when w is a
// terminal that supports it.
type Printer struct {
	w      io.Writer
	title  lipgloss.Style
	label  lipgloss.Style
	value  lipgloss.Style
	dim    lipgloss.Style
	banner lipgloss.Style
}

// NewPrinter creates a Printer writing to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:      w,
		title:  r.NewStyle().Bold(true).Underline(true),
		label:  r.NewStyle().Foreground(colorDim).Width(18),
		value:  r.NewStyle().Bold(true),
		dim:    r.NewStyle().Foreground(colorDim),
		banner: r.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1),
	}
}

// Prediction prints the class, the two-decimal score and the
// interpretation banner.
func (p *Printer) Prediction(resp dto.PredictionResponse) {
	fmt.Fprintln(p.w, p.title.Render("Prediction Results"))
	fmt.Fprintln(p.w, p.label.Render("Difficulty Class")+p.value.Render(resp.DisplayLabel))
	fmt.Fprintln(p.w, p.label.Render("Difficulty Score")+p.value.Render(resp.DisplayScore))
	fmt.Fprintln(p.w, p.bannerFor(resp.Interpretation).Render(resp.Message))
}

// Warning prints an advisory banner.
func (p *Printer) Warning(msg string) {
	fmt.Fprintln(p.w, p.banner.BorderForeground(colorWarning).Foreground(colorWarning).Render(msg))
}

// Error prints an error banner.
func (p *Printer) Error(msg string) {
	fmt.Fprintln(p.w, p.banner.BorderForeground(colorError).Foreground(colorError).Render(msg))
}

// Features prints a feature record as one column per line, in schema order.
func (p *Printer) Features(rec model.FeatureRecord) {
	fmt.Fprintln(p.w, p.title.Render("Feature Record"))
	for i, v := range rec.Values() {
		fmt.Fprintln(p.w, p.label.Render(model.FeatureColumns[i])+p.value.Render(formatValue(v)))
	}
}

// Summary prints an artifact summary under the given heading.
func (p *Printer) Summary(heading string, s pipeline.Summary) {
	fmt.Fprintln(p.w, p.title.Render(heading))
	p.row("kind", s.Kind)
	p.row("version", fmt.Sprint(s.Version))
	p.row("estimator", s.Estimator)
	p.row("feature dim", fmt.Sprint(s.FeatureDim))
	if s.TextColumn != "" {
		p.row("text column", s.TextColumn)
		p.row("vocabulary", fmt.Sprint(s.VocabularySize))
	}
	if len(s.NumericColumns) > 0 {
		p.row("numeric columns", strings.Join(s.NumericColumns, ", "))
	}
	if len(s.Classes) > 0 {
		p.row("classes", strings.Join(s.Classes, ", "))
	}
	if len(s.TopTerms) > 0 {
		p.row("top terms", strings.Join(s.TopTerms, ", "))
	}
}

// JSON writes v as indented JSON.
func (p *Printer) JSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode output: %w", err)
	}
	return nil
}

func (p *Printer) row(label, value string) {
	fmt.Fprintln(p.w, p.label.Render(label)+p.dim.Render(value))
}

func (p *Printer) bannerFor(interpretation string) lipgloss.Style {
	var c lipgloss.Color
	switch interpretation {
	case valueobject.InterpretationBeginner.String():
		c = colorSuccess
	case valueobject.InterpretationIntermediate.String():
		c = colorInfo
	default:
		c = colorError
	}
	return p.banner.BorderForeground(c).Foreground(c)
}

func formatValue(v any) string {
	if s, ok := v.(string); ok {
		return fmt.Sprintf("%q", s)
	}
	return fmt.Sprint(v)
}
