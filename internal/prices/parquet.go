package prices

import (
	"fmt"
	"path/filepath"
	"sort"
	"time"

	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/parquet-go/parquet-go"
)

// BarRecord is the Parquet schema for daily OHLCV bars.
type BarRecord struct {
	Symbol    string  `parquet:"symbol"`
	Timestamp int64   `parquet:"timestamp,timestamp(millisecond)"` // Unix ms
	Open      float64 `parquet:"open"`
	High      float64 `parquet:"high"`
	Low       float64 `parquet:"low"`
	Close     float64 `parquet:"close"`
	Volume    int64   `parquet:"volume"`
}

// LoadParquet reads a Parquet bar file. Every OHLCV column is present.
func LoadParquet(path string) (*models.PriceSeries, error) {
	rows, err := parquet.ReadFile[BarRecord](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet price file %s: %w", filepath.Base(path), err)
	}

	series := &models.PriceSeries{
		Source:  filepath.Base(path),
		Columns: append([]models.PriceColumn(nil), models.OHLCVColumns...),
		Bars:    make([]models.PriceBar, 0, len(rows)),
	}
	for _, r := range rows {
		open, high, low, cl := r.Open, r.High, r.Low, r.Close
		vol := float64(r.Volume)
		series.Bars = append(series.Bars, models.PriceBar{
			Date:   time.UnixMilli(r.Timestamp).UTC(),
			Open:   &open,
			High:   &high,
			Low:    &low,
			Close:  &cl,
			Volume: &vol,
		})
	}

	sort.SliceStable(series.Bars, func(i, j int) bool {
		return series.Bars[i].Date.Before(series.Bars[j].Date)
	})
	return series, nil
}

// WriteParquet writes bars in the Parquet bar schema.
func WriteParquet(path string, records []BarRecord) error {
	return parquet.WriteFile(path, records)
}
