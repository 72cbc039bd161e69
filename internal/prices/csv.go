// Package prices loads per-ticker price history and maps tickers to price files.
package prices

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/spf13/cast"
)

// dateLayouts are tried in order when parsing the Date column.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05-07:00",
	"01/02/2006",
	"2006/01/02",
}

// parseDate parses a price file date cell. ok is false for blank or unrecognised values.
func parseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// parseNumber coerces a numeric cell. Blank and unparseable cells are null.
func parseNumber(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	f, err := cast.ToFloat64E(s)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// LoadCSV reads a price CSV with a header row containing at least a Date column.
// Rows with an unparseable date are dropped and the rest are sorted by date.
func LoadCSV(path string) (*models.PriceSeries, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open price file: %w", err)
	}
	defer f.Close()

	series, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read price file %s: %w", filepath.Base(path), err)
	}
	series.Source = filepath.Base(path)
	return series, nil
}

// ReadCSV parses price rows from r.
func ReadCSV(r io.Reader) (*models.PriceSeries, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, errors.New("missing header row")
		}
		return nil, err
	}

	dateIdx := -1
	colIdx := make(map[models.PriceColumn]int)
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if name == "Date" && dateIdx < 0 {
			dateIdx = i
			continue
		}
		for _, col := range models.OHLCVColumns {
			if name == string(col) {
				if _, seen := colIdx[col]; !seen {
					colIdx[col] = i
				}
			}
		}
	}
	if dateIdx < 0 {
		return nil, errors.New("missing Date column")
	}

	series := &models.PriceSeries{}
	for _, col := range models.OHLCVColumns {
		if _, ok := colIdx[col]; ok {
			series.Columns = append(series.Columns, col)
		}
	}

	cell := func(row []string, i int) string {
		if i < 0 || i >= len(row) {
			return ""
		}
		return row[i]
	}

	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}

		date, ok := parseDate(cell(row, dateIdx))
		if !ok {
			continue
		}
		bar := models.PriceBar{Date: date}
		for col, i := range colIdx {
			v := parseNumber(cell(row, i))
			switch col {
			case models.ColumnOpen:
				bar.Open = v
			case models.ColumnHigh:
				bar.High = v
			case models.ColumnLow:
				bar.Low = v
			case models.ColumnClose:
				bar.Close = v
			case models.ColumnVolume:
				bar.Volume = v
			}
		}
		series.Bars = append(series.Bars, bar)
	}

	sort.SliceStable(series.Bars, func(i, j int) bool {
		return series.Bars[i].Date.Before(series.Bars[j].Date)
	})
	return series, nil
}
