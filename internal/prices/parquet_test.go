package prices

import (
	"path/filepath"
	"testing"

	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadParquet_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "MSFT.parquet")
	records := []BarRecord{
		{Symbol: "MSFT", Timestamp: day(2024, 2, 2).UnixMilli(), Open: 10, High: 12, Low: 9, Close: 9.5, Volume: 300},
		{Symbol: "MSFT", Timestamp: day(2024, 2, 1).UnixMilli(), Open: 8, High: 11, Low: 8, Close: 10, Volume: 200},
	}
	require.NoError(t, WriteParquet(path, records))

	series, err := LoadParquet(path)
	require.NoError(t, err)

	assert.Equal(t, "MSFT.parquet", series.Source)
	assert.Equal(t, models.OHLCVColumns, series.Columns)
	require.Len(t, series.Bars, 2)
	assert.Equal(t, day(2024, 2, 1), series.Bars[0].Date)
	assert.True(t, series.Bars[0].IsUp())
	assert.False(t, series.Bars[1].IsUp())
	assert.Equal(t, 300.0, *series.Bars[1].Volume)
}

func TestLoad_DispatchesOnExtension(t *testing.T) {
	dir := t.TempDir()
	pq := filepath.Join(dir, "A.PARQUET")
	require.NoError(t, WriteParquet(pq, []BarRecord{{Symbol: "A", Timestamp: day(2024, 1, 1).UnixMilli(), Close: 1}}))
	csvPath := writeFile(t, dir, "B.csv", "Date,Close\n2024-01-01,2\n")

	s, err := Load(pq)
	require.NoError(t, err)
	assert.Len(t, s.Bars, 1)

	s, err = Load(csvPath)
	require.NoError(t, err)
	assert.Equal(t, 2.0, *s.Bars[0].Close)
}
