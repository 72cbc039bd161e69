package dashboard

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/predictions"
	"github.com/bobmcallan/sharedash/internal/prices"
	"github.com/bobmcallan/sharedash/internal/report"
	"github.com/bobmcallan/sharedash/internal/tickers"
	"github.com/stretchr/testify/require"
)

// fixture is a data directory laid out like a deployment.
type fixture struct {
	root       string
	predsPath  string
	pricesDir  string
	reportsDir string
}

const fixturePredictions = `{
	"AAPL": [
		{"Date": 1704067200000, "ProbUp": 0.41, "Signal": "DOWN"},
		{"Date": 1704672000000, "ProbUp": 0.73, "Signal": "UP"}
	],
	"MSFT": {"Date": 1704672000000, "ProbUp": 0.55, "Signal": "UP"},
	"ZZZZ": {"Date": 1704672000000, "ProbUp": 0.12, "Signal": "DOWN"},
	"EMPTY": {"Date": 1704672000000, "ProbUp": 0.5, "Signal": "UP"}
}`

const fixtureAAPL = `Date,Open,High,Low,Close,Volume
2023-12-01,100,102,99,101,1000
2024-01-02,101,103,100,100.5,2000
2024-01-05,100.5,105,100,104,3000
`

const fixtureReport = `              precision    recall  f1-score   support

           0       0.55      0.60      0.57       100
           1       0.60      0.55      0.57       110

ROC-AUC: 0.6123
Accuracy : 0.5714

Feature Importances:
ret_5d   412
vol_z    120
`

func newFixture(t *testing.T) fixture {
	t.Helper()
	root := t.TempDir()
	f := fixture{
		root:       root,
		predsPath:  filepath.Join(root, "results_stock_prediction.json"),
		pricesDir:  filepath.Join(root, "data", "prices"),
		reportsDir: filepath.Join(root, "reports"),
	}
	require.NoError(t, os.MkdirAll(f.pricesDir, 0755))
	require.NoError(t, os.MkdirAll(f.reportsDir, 0755))
	require.NoError(t, os.WriteFile(f.predsPath, []byte(fixturePredictions), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(f.pricesDir, "AAPL_US.csv"), []byte(fixtureAAPL), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(f.pricesDir, "EMPTY.csv"), []byte("Date,Close\nbad,1\n"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(f.reportsDir, "Klassifikationsreport_20240108_101500.txt"), []byte(fixtureReport), 0644))
	return f
}

func (f fixture) service() *Service {
	logger := common.NewSilentLogger()
	return NewService(
		predictions.NewLoader(f.predsPath, 4, logger),
		prices.NewLoader(f.pricesDir, false, 8, logger),
		report.NewLoader(f.reportsDir, 4, logger),
		tickers.Default(),
		Options{},
		logger,
	)
}
