package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/dashboard"
	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/bobmcallan/sharedash/internal/predictions"
	"github.com/bobmcallan/sharedash/internal/prices"
	"github.com/bobmcallan/sharedash/internal/report"
	"github.com/bobmcallan/sharedash/internal/tickers"
)

const testPredictions = `{
	"AAPL": [
		{"Date": 1704067200000, "ProbUp": 0.41, "Signal": "DOWN"},
		{"Date": 1704672000000, "ProbUp": 0.73, "Signal": "UP"}
	],
	"MSFT": {"Date": 1704672000000, "ProbUp": 0.55, "Signal": "UP"},
	"ZZZZ": {"Date": 1704672000000, "ProbUp": 0.12, "Signal": "DOWN"},
	"EMPTY": {"Date": 1704672000000, "ProbUp": 0.5, "Signal": "UP"}
}`

const testPricesAAPL = `Date,Open,High,Low,Close,Volume
2023-12-01,100,102,99,101,1000
2024-01-02,101,103,100,100.5,2000
2024-01-05,100.5,105,100,104,3000
`

const testReportName = "Klassifikationsreport_20240108_101500.txt"

const testReport = `              precision    recall  f1-score   support

           0       0.55      0.60      0.57       100
           1       0.60      0.55      0.57       110

ROC-AUC: 0.6123
Accuracy : 0.5714

Feature Importances:
ret_5d   412
vol_z    120
`

type testEnv struct {
	root      string
	predsPath string
	svc       *dashboard.Service
}

// newTestEnv writes a data directory and builds a service over it.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	root := t.TempDir()
	pricesDir := filepath.Join(root, "data", "prices")
	reportsDir := filepath.Join(root, "reports")
	for _, dir := range []string{pricesDir, reportsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}

	files := map[string]string{
		filepath.Join(root, "results_stock_prediction.json"): testPredictions,
		filepath.Join(pricesDir, "AAPL_US.csv"):               testPricesAAPL,
		filepath.Join(pricesDir, "EMPTY.csv"):                 "Date,Close\nbad,1\n",
		filepath.Join(reportsDir, testReportName):             testReport,
	}
	for path, content := range files {
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}

	logger := common.NewSilentLogger()
	env := &testEnv{root: root, predsPath: filepath.Join(root, "results_stock_prediction.json")}
	env.svc = dashboard.NewService(
		predictions.NewLoader(env.predsPath, 4, logger),
		prices.NewLoader(pricesDir, false, 8, logger),
		report.NewLoader(reportsDir, 4, logger),
		tickers.Default(),
		dashboard.Options{HorizonDays: 5, DefaultPreset: prices.Preset1M},
		logger,
	)
	return env
}

func (e *testEnv) pages() *PageHandler {
	return NewPageHandler(common.NewSilentLogger(), false, e.svc, models.DefaultFilterSpec())
}

func (e *testEnv) api() *APIHandler {
	return NewAPIHandler(common.NewSilentLogger(), e.svc, models.DefaultFilterSpec())
}

func serve(h http.HandlerFunc, method, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	w := httptest.NewRecorder()
	h(w, req)
	return w
}

func TestHealthHandler_ReturnsOK(t *testing.T) {
	handler := NewHealthHandler(nil, nil)

	req := httptest.NewRequest("GET", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("expected status ok, got %v", body["status"])
	}
	if _, ok := body["data"]; ok {
		t.Error("expected no data section without a service")
	}
}

func TestHealthHandler_ReportsDataStatus(t *testing.T) {
	env := newTestEnv(t)
	handler := NewHealthHandler(nil, env.svc)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/api/health", nil))

	var body healthResponse
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if body.Data == nil {
		t.Fatal("expected data section")
	}
	if !body.Data.PredictionsFound || body.Data.PredictionRows != 5 {
		t.Errorf("unexpected prediction status %+v", body.Data)
	}
	if body.Data.LatestReport != testReportName {
		t.Errorf("expected latest report %s, got %s", testReportName, body.Data.LatestReport)
	}
}

func TestHealthHandler_RejectsNonGET(t *testing.T) {
	handler := NewHealthHandler(nil, nil)

	req := httptest.NewRequest("POST", "/api/health", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected status 405, got %d", w.Code)
	}
}

func TestVersionHandler_ReturnsJSON(t *testing.T) {
	handler := NewVersionHandler(nil)

	req := httptest.NewRequest("GET", "/api/version", nil)
	w := httptest.NewRecorder()

	handler.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	contentType := w.Header().Get("Content-Type")
	if contentType != "application/json" {
		t.Errorf("expected Content-Type application/json, got %s", contentType)
	}

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	for _, field := range []string{"version", "build", "git_commit", "go_version"} {
		if _, ok := body[field]; !ok {
			t.Errorf("expected %s field in response", field)
		}
	}
}

func TestWriteError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()
	WriteError(w, http.StatusTeapot, "short and stout")

	if w.Code != http.StatusTeapot {
		t.Errorf("expected 418, got %d", w.Code)
	}
	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatal(err)
	}
	if body["status"] != "error" || body["error"] != "short and stout" {
		t.Errorf("unexpected envelope %v", body)
	}
}

func TestRequireMethod_AllowsHEADForGET(t *testing.T) {
	w := httptest.NewRecorder()
	if !RequireMethod(w, httptest.NewRequest("HEAD", "/", nil), http.MethodGet) {
		t.Error("HEAD should be accepted for GET routes")
	}
	w = httptest.NewRecorder()
	if RequireMethod(w, httptest.NewRequest("DELETE", "/", nil), http.MethodGet) {
		t.Error("DELETE should be rejected")
	}
	if w.Code != http.StatusMethodNotAllowed {
		t.Errorf("expected 405, got %d", w.Code)
	}
}

func TestFilterFromRequest_ReportsInvalidParams(t *testing.T) {
	req := httptest.NewRequest("GET", "/shares?pmin=abc&limit=0&sort=ticker", nil)
	spec, err := FilterFromRequest(req, models.DefaultFilterSpec())

	if spec.Sort != models.SortTickerAsc {
		t.Errorf("valid parameters should still apply, got sort %s", spec.Sort)
	}
	params := invalidParams(err)
	if len(params) != 2 {
		t.Fatalf("expected two invalid params, got %v", params)
	}
}
