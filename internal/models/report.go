package models

import (
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Names of the scalar metrics extracted from a classification report.
const (
	MetricROCAUC    = "ROC-AUC"
	MetricAccuracy  = "Accuracy"
	MetricPrecision = "Precision"
	MetricRecall    = "Recall"
)

// ClassTable is the per-class metrics block of a classification report.
// Every row has one cell per column; the first column holds the class label.
type ClassTable struct {
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows"`
}

// ColumnIndex returns the index of the named column, or -1.
func (t *ClassTable) ColumnIndex(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Label returns the class label of row i.
func (t *ClassTable) Label(i int) string {
	if i < 0 || i >= len(t.Rows) || len(t.Rows[i]) == 0 {
		return ""
	}
	return t.Rows[i][0]
}

// Cell returns the raw text of the named column in row i.
func (t *ClassTable) Cell(i int, column string) string {
	j := t.ColumnIndex(column)
	if j < 0 || i < 0 || i >= len(t.Rows) || j >= len(t.Rows[i]) {
		return ""
	}
	return t.Rows[i][j]
}

// Float returns the named cell of row i as a number, or nil if blank or unparseable.
func (t *ClassTable) Float(i int, column string) *float64 {
	raw := strings.TrimSpace(t.Cell(i, column))
	if raw == "" {
		return nil
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return nil
	}
	return &v
}

// ScalarMetric is one "Name: value" line of a report.
type ScalarMetric struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
}

// FeatureImportance is one entry of the report's feature importance section.
type FeatureImportance struct {
	Feature    string `json:"feature"`
	Importance int    `json:"importance"`
}

// ReportMetrics is the structured content of one classification report.
type ReportMetrics struct {
	ClassTable         *ClassTable         `json:"class_table"`
	Scalars            []ScalarMetric      `json:"scalars"`
	FeatureImportances []FeatureImportance `json:"feature_importances"`
}

// Scalar returns the named scalar metric if the report contained it.
func (m ReportMetrics) Scalar(name string) (float64, bool) {
	for _, s := range m.Scalars {
		if s.Name == name {
			return s.Value, true
		}
	}
	return 0, false
}

// ReportFile identifies a report on disk.
type ReportFile struct {
	Name      string    `json:"name"`
	Path      string    `json:"-"`
	Timestamp time.Time `json:"timestamp"`
}
