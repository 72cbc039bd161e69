package models

import "time"

// PriceColumn names one of the OHLCV columns of a price file.
type PriceColumn string

const (
	ColumnOpen   PriceColumn = "Open"
	ColumnHigh   PriceColumn = "High"
	ColumnLow    PriceColumn = "Low"
	ColumnClose  PriceColumn = "Close"
	ColumnVolume PriceColumn = "Volume"
)

// OHLCVColumns lists the numeric price columns in file order.
var OHLCVColumns = []PriceColumn{ColumnOpen, ColumnHigh, ColumnLow, ColumnClose, ColumnVolume}

// PriceBar is one dated row of a price series.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   *float64  `json:"open"`
	High   *float64  `json:"high"`
	Low    *float64  `json:"low"`
	Close  *float64  `json:"close"`
	Volume *float64  `json:"volume"`
}

// Value returns the bar's value for col.
func (b PriceBar) Value(col PriceColumn) *float64 {
	switch col {
	case ColumnOpen:
		return b.Open
	case ColumnHigh:
		return b.High
	case ColumnLow:
		return b.Low
	case ColumnClose:
		return b.Close
	case ColumnVolume:
		return b.Volume
	}
	return nil
}

// IsUp reports whether the bar closed at or above its open.
// A bar missing either value is not an up bar.
func (b PriceBar) IsUp() bool {
	if b.Open == nil || b.Close == nil {
		return false
	}
	return *b.Close >= *b.Open
}

// PriceSeries is a date-sorted price table loaded from one file.
type PriceSeries struct {
	Source  string        `json:"source"`
	Columns []PriceColumn `json:"columns"`
	Bars    []PriceBar    `json:"bars"`
}

// Has reports whether the source file carried col.
func (s *PriceSeries) Has(col PriceColumn) bool {
	for _, c := range s.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Empty reports whether the series has no usable bars.
func (s *PriceSeries) Empty() bool {
	return s == nil || len(s.Bars) == 0
}

// Span returns the first and last bar dates. Both are zero for an empty series.
func (s *PriceSeries) Span() (time.Time, time.Time) {
	if s.Empty() {
		return time.Time{}, time.Time{}
	}
	return s.Bars[0].Date, s.Bars[len(s.Bars)-1].Date
}
