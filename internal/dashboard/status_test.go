package dashboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_ReportsAvailableInputs(t *testing.T) {
	f := newFixture(t)
	st := f.service().Status()

	assert.Equal(t, "results_stock_prediction.json", st.PredictionsFile)
	assert.True(t, st.PredictionsFound)
	assert.Equal(t, 5, st.PredictionRows)
	assert.Equal(t, 2, st.PriceFiles)
	assert.Equal(t, "Klassifikationsreport_20240108_101500.txt", st.LatestReport)
}

func TestStatus_MissingInputs(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, os.Remove(f.predsPath))
	require.NoError(t, os.RemoveAll(f.reportsDir))
	require.NoError(t, os.RemoveAll(filepath.Join(f.root, "data")))

	st := f.service().Status()
	assert.False(t, st.PredictionsFound)
	assert.Zero(t, st.PredictionRows)
	assert.Zero(t, st.PriceFiles)
	assert.Empty(t, st.LatestReport)
}
