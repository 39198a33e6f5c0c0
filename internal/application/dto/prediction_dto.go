package dto

import (
	"fmt"

	"github.com/praveenr-web/AutoJudge/internal/domain/model"
	"github.com/praveenr-web/AutoJudge/internal/domain/valueobject"
)

// AdvisoryBlankDescription is shown instead of a prediction when the
// description is blank.
const AdvisoryBlankDescription = "Please enter at least the problem description."

// PredictDifficultyRequest is the input DTO for the PredictDifficulty use case.
type PredictDifficultyRequest struct {
	Description       string `json:"description"`
	InputDescription  string `json:"input_description"`
	OutputDescription string `json:"output_description"`
}

// ToModel maps the request to a domain ProblemStatement.
func (r PredictDifficultyRequest) ToModel() model.ProblemStatement {
	return model.NewProblemStatement(r.Description, r.InputDescription, r.OutputDescription)
}

// PredictionResponse is the output DTO returned after a prediction.
// ClassLabel and Score are the raw pipeline outputs; the Display fields
// and the interpretation are presentation helpers derived from them.
type PredictionResponse struct {
	ClassLabel     string  `json:"class_label"`
	Score          float64 `json:"score"`
	DisplayLabel   string  `json:"display_label"`
	DisplayScore   string  `json:"display_score"`
	Interpretation string  `json:"interpretation"`
	Message        string  `json:"message"`
}

// FromModel maps a domain prediction to the response DTO.
func FromModel(p model.Prediction) PredictionResponse {
	interp := valueobject.InterpretLabel(p.ClassLabel)
	return PredictionResponse{
		ClassLabel:     p.ClassLabel,
		Score:          p.Score,
		DisplayLabel:   valueobject.DisplayLabel(p.ClassLabel),
		DisplayScore:   FormatScore(p.Score),
		Interpretation: interp.String(),
		Message:        interp.Message(),
	}
}

// FormatScore renders a score with two decimal places.
func FormatScore(score float64) string {
	return fmt.Sprintf("%.2f", score)
}
