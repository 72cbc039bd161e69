package models

import (
	"strings"
	"time"
)

// Signal labels emitted by the prediction model.
const (
	SignalUp   = "UP"
	SignalDown = "DOWN"
)

// PredictionRecord is one normalized row of the predictions table.
// Nil pointers and empty strings mark values that were absent or unparseable.
type PredictionRecord struct {
	Ticker string     `json:"Ticker"`
	Date   *time.Time `json:"Date"`
	ProbUp *float64   `json:"ProbUp"`
	Signal string     `json:"Signal"`
}

// NormalizedSignal returns the signal upper-cased for set membership checks.
func (r PredictionRecord) NormalizedSignal() string {
	return strings.ToUpper(r.Signal)
}

// ProbUpOr returns ProbUp, or fallback when it is null.
func (r PredictionRecord) ProbUpOr(fallback float64) float64 {
	if r.ProbUp == nil {
		return fallback
	}
	return *r.ProbUp
}
