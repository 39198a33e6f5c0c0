package model

import (
	"errors"
	"strings"
)

// ErrBlankDescription is returned when the problem description is empty
// after trimming whitespace.
var ErrBlankDescription = errors.New("problem description is required")

// ProblemStatement is the free-text description of a programming problem.
// Only Description is required; the other two fields may be empty.
type ProblemStatement struct {
	Description       string
	InputDescription  string
	OutputDescription string
}

// NewProblemStatement creates a ProblemStatement from its three fields.
// Fields are kept untrimmed; trimming only affects validation.
func NewProblemStatement(description, inputDescription, outputDescription string) ProblemStatement {
	return ProblemStatement{
		Description:       description,
		InputDescription:  inputDescription,
		OutputDescription: outputDescription,
	}
}

// Validate reports ErrBlankDescription if the description is blank.
func (p ProblemStatement) Validate() error {
	if strings.TrimSpace(p.Description) == "" {
		return ErrBlankDescription
	}
	return nil
}
