package dashboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassification_FullReport(t *testing.T) {
	svc := newFixture(t).service()

	view := svc.Classification()
	require.Empty(t, view.Warning)
	assert.Equal(t, "Klassifikationsreport_20240108_101500.txt", view.ReportName)
	require.NotNil(t, view.ClassTable)
	assert.Len(t, view.ClassTable.Rows, 2)
	assert.Empty(t, view.TableInfo)

	require.Len(t, view.Scalars, 2)
	assert.Equal(t, ScalarView{Name: "ROC-AUC", Value: "0.612"}, view.Scalars[0])
	assert.Equal(t, ScalarView{Name: "Accuracy", Value: "0.571"}, view.Scalars[1])

	require.Len(t, view.Features, 2)
	assert.Equal(t, "ret_5d", view.Features[0].Feature)
	assert.Empty(t, view.FeatureInfo)
}

func TestClassification_Placeholders(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.WriteFile(filepath.Join(f.reportsDir, "Klassifikationsreport_20250101_000000.txt"), []byte("empty report\n"), 0644))

	view := f.service().Classification()
	assert.Equal(t, "Klassifikationsreport_20250101_000000.txt", view.ReportName)
	assert.Nil(t, view.ClassTable)
	assert.Equal(t, "Classification metrics table not detected in report text.", view.TableInfo)
	assert.Equal(t, "No scalar summary metrics (ROC-AUC/Accuracy/Precision/Recall) found in report.", view.ScalarInfo)
	assert.Equal(t, "No feature importances section found or it was empty.", view.FeatureInfo)
}

func TestClassification_MissingDirAndNoReports(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.RemoveAll(f.reportsDir))
	view := f.service().Classification()
	assert.Equal(t, "Reports folder not found. Expected a 'reports/' directory.", view.Warning)

	require.NoError(t, os.MkdirAll(f.reportsDir, 0755))
	view = f.service().Classification()
	assert.Equal(t, "No classification report files found.", view.Warning)
}
