package service

import "fmt"

// Pipeline stages named in PredictionError.
const (
	StageClassifier = "classifier"
	StageRegressor  = "regressor"
)

// ModelUnavailableError reports that the pipeline artifacts could not be loaded.
type ModelUnavailableError struct {
	Err error
}

func (e *ModelUnavailableError) Error() string {
	return fmt.Sprintf("difficulty models unavailable: %v", e.Err)
}

func (e *ModelUnavailableError) Unwrap() error {
	return e.Err
}

// PredictionError reports that a pipeline failed during inference.
type PredictionError struct {
	Stage string
	Err   error
}

func (e *PredictionError) Error() string {
	return fmt.Sprintf("%s prediction failed: %v", e.Stage, e.Err)
}

func (e *PredictionError) Unwrap() error {
	return e.Err
}
