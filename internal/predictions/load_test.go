package predictions

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeJSON(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "predictions.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func fptr(v float64) *float64 { return &v }

func tptr(ms int64) *time.Time {
	t := time.UnixMilli(ms).UTC()
	return &t
}

func TestLoad_ObjectAndArrayShapesNormalizeIdentically(t *testing.T) {
	byTicker, err := Load(writeJSON(t, `{"A": [{"Date":0,"ProbUp":0.7,"Signal":"UP"}]}`))
	require.NoError(t, err)
	flat, err := Load(writeJSON(t, `[{"Ticker":"A","Date":0,"ProbUp":0.7,"Signal":"UP"}]`))
	require.NoError(t, err)

	if diff := cmp.Diff(flat, byTicker); diff != "" {
		t.Errorf("normalized tables differ (-array +object):\n%s", diff)
	}
	require.Len(t, flat, 1)
	assert.Equal(t, "A", flat[0].Ticker)
	assert.Equal(t, time.Unix(0, 0).UTC(), *flat[0].Date)
}

func TestLoad_MissingFileYieldsEmptyTable(t *testing.T) {
	records, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
	assert.Equal(t, []string{"Ticker", "Date", "ProbUp", "Signal"}, Columns)
}

func TestLoad_ObjectValueIsSingleRecord(t *testing.T) {
	records, err := Load(writeJSON(t, `{"MSFT": {"Date": 1700000000000, "ProbUp": 0.4, "Signal": "DOWN"}}`))
	require.NoError(t, err)

	want := []models.PredictionRecord{
		{Ticker: "MSFT", Date: tptr(1700000000000), ProbUp: fptr(0.4), Signal: "DOWN"},
	}
	if diff := cmp.Diff(want, records); diff != "" {
		t.Errorf("unexpected records (-want +got):\n%s", diff)
	}
}

func TestLoad_PreservesDocumentOrder(t *testing.T) {
	records, err := Load(writeJSON(t, `{
		"ZZZ": [{"Date": 1}, {"Date": 2}],
		"AAA": {"Date": 3},
		"MMM": [{"Date": 4}]
	}`))
	require.NoError(t, err)

	var tickers []string
	for _, r := range records {
		tickers = append(tickers, r.Ticker)
	}
	assert.Equal(t, []string{"ZZZ", "ZZZ", "AAA", "MMM"}, tickers)
}

func TestLoad_RepeatedKeyKeepsLastValue(t *testing.T) {
	records, err := Load(writeJSON(t, `{
		"A": [{"Date": 1, "ProbUp": 0.1}, {"Date": 2, "ProbUp": 0.2}],
		"B": {"Date": 3, "ProbUp": 0.3},
		"A": [{"Date": 4, "ProbUp": 0.9}]
	}`))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "A", records[0].Ticker)
	require.NotNil(t, records[0].ProbUp)
	assert.Equal(t, 0.9, *records[0].ProbUp)
	assert.Equal(t, "B", records[1].Ticker)
}

func TestLoad_SkipsNonObjectEntries(t *testing.T) {
	records, err := Load(writeJSON(t, `{
		"A": [1, "x", null, {"ProbUp": 0.5}],
		"B": "not a record",
		"C": 42,
		"D": null
	}`))
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "A", records[0].Ticker)

	records, err = Load(writeJSON(t, `[{"Ticker": "A"}, 3, [1, 2], "s"]`))
	require.NoError(t, err)
	require.Len(t, records, 1)
}

func TestLoad_ElementTickerOverridesKey(t *testing.T) {
	records, err := Load(writeJSON(t, `{"A": [{"Ticker": "B", "ProbUp": 0.1}, {"Ticker": null}]}`))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, "B", records[0].Ticker)
	assert.Equal(t, "", records[1].Ticker)
}

func TestLoad_MissingFieldsAreNull(t *testing.T) {
	records, err := Load(writeJSON(t, `[{"Ticker": "A"}]`))
	require.NoError(t, err)
	require.Len(t, records, 1)

	r := records[0]
	assert.Nil(t, r.Date)
	assert.Nil(t, r.ProbUp)
	assert.Equal(t, "", r.Signal)
}

func TestLoad_CoercesProbUp(t *testing.T) {
	records, err := Load(writeJSON(t, `[
		{"ProbUp": "0.25"},
		{"ProbUp": true},
		{"ProbUp": false},
		{"ProbUp": "abc"},
		{"ProbUp": ""},
		{"ProbUp": null},
		{"ProbUp": {"x": 1}},
		{"ProbUp": 0.9}
	]`))
	require.NoError(t, err)
	require.Len(t, records, 8)

	want := []*float64{fptr(0.25), fptr(1), fptr(0), nil, nil, nil, nil, fptr(0.9)}
	for i, w := range want {
		if diff := cmp.Diff(w, records[i].ProbUp); diff != "" {
			t.Errorf("record %d ProbUp (-want +got):\n%s", i, diff)
		}
	}
}

func TestLoad_CoercesDate(t *testing.T) {
	records, err := Load(writeJSON(t, `[
		{"Date": 1704067200000},
		{"Date": "1704067200000"},
		{"Date": "2024-01-01"},
		{"Date": true},
		{"Date": 1e300}
	]`))
	require.NoError(t, err)
	require.Len(t, records, 5)

	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	require.NotNil(t, records[0].Date)
	assert.True(t, want.Equal(*records[0].Date))
	require.NotNil(t, records[1].Date)
	assert.True(t, want.Equal(*records[1].Date))
	assert.Nil(t, records[2].Date)
	assert.Nil(t, records[3].Date)
	assert.Nil(t, records[4].Date)
}

func TestLoad_StringifiesSignal(t *testing.T) {
	records, err := Load(writeJSON(t, `[{"Signal": 1}, {"Signal": "up"}, {"Signal": null}]`))
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "1", records[0].Signal)
	assert.Equal(t, "up", records[1].Signal)
	assert.Equal(t, "UP", records[1].NormalizedSignal())
	assert.Equal(t, "", records[2].Signal)
}

func TestLoad_MalformedJSONIsError(t *testing.T) {
	_, err := Load(writeJSON(t, `{"A": [`))
	assert.Error(t, err)
}

func TestLoad_ScalarRootIsError(t *testing.T) {
	_, err := Load(writeJSON(t, `"just a string"`))
	assert.Error(t, err)

	_, err = Load(writeJSON(t, `42`))
	assert.Error(t, err)
}
