package model

// Prediction is the result of running both pipelines on one problem.
// ClassLabel and Score are passed through from the pipelines unchanged.
type Prediction struct {
	ClassLabel string
	Score      float64
}
