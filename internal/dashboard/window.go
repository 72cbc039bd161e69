package dashboard

import (
	"errors"
	"fmt"
	"time"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/bobmcallan/sharedash/internal/prices"
)

// ErrEmptyPrices is returned when a price file has no usable rows.
var ErrEmptyPrices = errors.New("price data is empty or invalid")

// PricePoint is one bar of a chart window.
type PricePoint struct {
	Date   string   `json:"date"`
	Open   *float64 `json:"open"`
	High   *float64 `json:"high"`
	Low    *float64 `json:"low"`
	Close  *float64 `json:"close"`
	Volume *float64 `json:"volume"`
	IsUp   bool     `json:"is_up"`
}

// PriceWindow is the slice of a ticker's price history shown for a preset.
type PriceWindow struct {
	Ticker      string               `json:"ticker"`
	Company     string               `json:"company"`
	Preset      prices.Preset        `json:"preset"`
	Start       string               `json:"start"`
	End         string               `json:"end"`
	Source      string               `json:"source"`
	Columns     []models.PriceColumn `json:"columns"`
	Points      []PricePoint         `json:"points"`
	LastClose   string               `json:"last_close"`
	TotalVolume string               `json:"total_volume"`
}

// HasCandles reports whether the window can be drawn as OHLC candles.
func (w *PriceWindow) HasCandles() bool {
	for _, c := range []models.PriceColumn{models.ColumnOpen, models.ColumnHigh, models.ColumnLow, models.ColumnClose} {
		if !w.has(c) {
			return false
		}
	}
	return true
}

// HasVolume reports whether the source carried a Volume column.
func (w *PriceWindow) HasVolume() bool {
	return w.has(models.ColumnVolume)
}

func (w *PriceWindow) has(col models.PriceColumn) bool {
	for _, c := range w.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// PriceWindow resolves ticker to its price file and slices the preset's window.
// It returns prices.ErrNoPriceFile when no file matches and ErrEmptyPrices
// when the file has no dated rows.
func (s *Service) PriceWindow(ticker string, preset prices.Preset) (*PriceWindow, error) {
	series, err := s.prices.Series(ticker)
	if err != nil {
		return nil, err
	}
	if series.Empty() {
		return nil, fmt.Errorf("%s: %w", ticker, ErrEmptyPrices)
	}

	start, end, _ := prices.Window(series, preset)
	bars := prices.Slice(series, preset)

	w := &PriceWindow{
		Ticker:  ticker,
		Company: s.names.Name(ticker),
		Preset:  preset,
		Start:   start.Format(time.DateOnly),
		End:     end.Format(time.DateOnly),
		Source:  series.Source,
		Columns: series.Columns,
		Points:  make([]PricePoint, 0, len(bars)),
	}

	var lastClose *float64
	var volume float64
	haveVolume := false
	for _, b := range bars {
		w.Points = append(w.Points, PricePoint{
			Date:   b.Date.Format(time.DateOnly),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
			IsUp:   b.IsUp(),
		})
		if b.Close != nil {
			lastClose = b.Close
		}
		if b.Volume != nil {
			volume += *b.Volume
			haveVolume = true
		}
	}

	w.LastClose = common.FormatDecimal(lastClose, 2)
	if haveVolume {
		w.TotalVolume = common.FormatVolume(&volume)
	} else {
		w.TotalVolume = common.FormatVolume(nil)
	}
	return w, nil
}
