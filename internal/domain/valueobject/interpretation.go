package valueobject

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Interpretation is an immutable value object describing how a predicted
// difficulty class should be read by a person.
type Interpretation struct {
	value   string
	message string
}

var (
	InterpretationBeginner     = Interpretation{value: "BEGINNER", message: "Suitable for beginners."}
	InterpretationIntermediate = Interpretation{value: "INTERMEDIATE", message: "Requires intermediate problem-solving skills."}
	InterpretationAdvanced     = Interpretation{value: "ADVANCED", message: "Challenging problem (advanced level)."}
)

// InterpretLabel maps a classifier label onto an Interpretation.
// Matching is case-insensitive. Labels other than "easy" and "medium",
// including ones the classifier was never expected to produce, are advanced.
func InterpretLabel(label string) Interpretation {
	switch strings.ToLower(label) {
	case "easy":
		return InterpretationBeginner
	case "medium":
		return InterpretationIntermediate
	default:
		return InterpretationAdvanced
	}
}

// String returns the string representation.
func (i Interpretation) String() string {
	return i.value
}

// Message returns the banner text shown alongside a prediction.
func (i Interpretation) Message() string {
	return i.message
}

// IsZero reports whether the interpretation is uninitialized.
func (i Interpretation) IsZero() bool {
	return i.value == ""
}

// DisplayLabel formats a class label for display: first character upper
// case, remainder lower case ("mEDIUM" becomes "Medium").
func DisplayLabel(label string) string {
	if label == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(label)
	return string(unicode.ToUpper(r)) + strings.ToLower(label[size:])
}
