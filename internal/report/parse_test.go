package report

import (
	"strings"
	"testing"

	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sklearnReport = `Klassifikationsreport
Trainingszeitraum: 2015-01-01 bis 2024-12-31

              precision    recall  f1-score   support

           0       0.55      0.60      0.57       100
           1       0.60      0.55      0.57       110

    accuracy                           0.57       210
   macro avg       0.57      0.57      0.57       210
weighted avg       0.58      0.57      0.57       210

ROC-AUC: 0.6123
Accuracy : 0.5714
Precision: 0.6000
Recall   : 0.5500

Feature Importances (LightGBM split count):
ret_5d            412
rsi 14 day        398
volume_z          120
dtype: int64
`

func TestParse_SklearnReport(t *testing.T) {
	m := Parse(sklearnReport)

	require.NotNil(t, m.ClassTable)
	assert.Equal(t, []string{"Unnamed: 0", "precision", "recall", "f1-score", "support"}, m.ClassTable.Columns)

	wantRows := [][]string{
		{"0", "0.55", "0.60", "0.57", "100"},
		{"1", "0.60", "0.55", "0.57", "110"},
		{"accuracy", "", "", "0.57", "210"},
		{"macro avg", "0.57", "0.57", "0.57", "210"},
		{"weighted avg", "0.58", "0.57", "0.57", "210"},
	}
	if diff := cmp.Diff(wantRows, m.ClassTable.Rows); diff != "" {
		t.Errorf("class table rows (-want +got):\n%s", diff)
	}

	wantScalars := []models.ScalarMetric{
		{Name: "ROC-AUC", Value: 0.6123},
		{Name: "Accuracy", Value: 0.5714},
		{Name: "Precision", Value: 0.6},
		{Name: "Recall", Value: 0.55},
	}
	if diff := cmp.Diff(wantScalars, m.Scalars); diff != "" {
		t.Errorf("scalars (-want +got):\n%s", diff)
	}

	wantFeatures := []models.FeatureImportance{
		{Feature: "ret_5d", Importance: 412},
		{Feature: "rsi 14 day", Importance: 398},
		{Feature: "volume_z", Importance: 120},
	}
	if diff := cmp.Diff(wantFeatures, m.FeatureImportances); diff != "" {
		t.Errorf("feature importances (-want +got):\n%s", diff)
	}
}

func TestParse_TwoRowTableWithRocAucOnly(t *testing.T) {
	text := strings.Join([]string{
		"      precision    recall  f1-score   support",
		"   0       0.50      0.40      0.44        10",
		"   1       0.60      0.70      0.65        12",
		"ROC-AUC: 0.812",
	}, "\n")

	m := Parse(text)
	require.NotNil(t, m.ClassTable)
	assert.Len(t, m.ClassTable.Rows, 2)
	assert.Equal(t, []models.ScalarMetric{{Name: "ROC-AUC", Value: 0.812}}, m.Scalars)

	v, ok := m.Scalar(models.MetricROCAUC)
	assert.True(t, ok)
	assert.Equal(t, 0.812, v)
	_, ok = m.Scalar(models.MetricAccuracy)
	assert.False(t, ok)
}

func TestParse_FeatureImportancesStopAtBlank(t *testing.T) {
	text := strings.Join([]string{
		"Feature Importances",
		"AAPL_close 120",
		"Volume 95",
		"",
		"MSFT_close 10",
	}, "\n")

	m := Parse(text)
	assert.Equal(t, []models.FeatureImportance{
		{Feature: "AAPL_close", Importance: 120},
		{Feature: "Volume", Importance: 95},
	}, m.FeatureImportances)
	assert.Nil(t, m.ClassTable)
	assert.Empty(t, m.Scalars)
}

func TestParse_FeatureImportancesSkipNonNumericAndSortStable(t *testing.T) {
	text := strings.Join([]string{
		"== Feature Importances ==",
		"  alpha 5",
		"  beta 0.5",
		"  lonely",
		"  gamma 9",
		"  delta 5",
		"  eps -3",
		"dtype: int32",
		"  after 100",
	}, "\n")

	m := Parse(text)
	assert.Equal(t, []models.FeatureImportance{
		{Feature: "gamma", Importance: 9},
		{Feature: "alpha", Importance: 5},
		{Feature: "delta", Importance: 5},
	}, m.FeatureImportances)
}

func TestParse_NoSections(t *testing.T) {
	m := Parse("nothing to see here\n")
	assert.Nil(t, m.ClassTable)
	assert.Empty(t, m.Scalars)
	assert.Empty(t, m.FeatureImportances)
}

func TestParse_FirstScalarMatchWins(t *testing.T) {
	m := Parse("ROC-AUC: 0.7\nROC-AUC: 0.9\nRecall :  .5\n")
	assert.Equal(t, []models.ScalarMetric{
		{Name: "ROC-AUC", Value: 0.7},
		{Name: "Recall", Value: 0.5},
	}, m.Scalars)
}

func TestParse_TableWithoutRocAucRunsToEnd(t *testing.T) {
	text := "\n  precision recall f1-score support\n a 0.1 0.2 0.3 4\n\n\n"
	m := Parse(text)
	require.NotNil(t, m.ClassTable)
	assert.Len(t, m.ClassTable.Rows, 1)
}

func TestParse_WindowsLineEndings(t *testing.T) {
	m := Parse(strings.ReplaceAll(sklearnReport, "\n", "\r\n"))
	require.NotNil(t, m.ClassTable)
	assert.Len(t, m.ClassTable.Rows, 5)
	assert.Len(t, m.Scalars, 4)
	assert.Len(t, m.FeatureImportances, 3)
}

func TestColumnNames(t *testing.T) {
	got := columnNames([]string{"", "score", "score", "", "score"})
	assert.Equal(t, []string{"Unnamed: 0", "score", "score.1", "Unnamed: 3", "score.2"}, got)
}

func TestClassTableAccessors(t *testing.T) {
	m := Parse(sklearnReport)
	tbl := m.ClassTable

	assert.Equal(t, "macro avg", tbl.Label(3))
	assert.Equal(t, "0.58", tbl.Cell(4, ColPrecision))
	require.NotNil(t, tbl.Float(0, ColSupport))
	assert.Equal(t, 100.0, *tbl.Float(0, ColSupport))
	assert.Nil(t, tbl.Float(2, ColPrecision))
	assert.Equal(t, "", tbl.Cell(0, "missing"))
}
