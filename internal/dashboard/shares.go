package dashboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/filter"
	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/bobmcallan/sharedash/internal/prices"
)

// ShareOptions selects which tickers show details and with which timeframe.
type ShareOptions struct {
	Open    map[string]bool
	Presets map[string]prices.Preset
}

// SharesView is the Share Information tab.
type SharesView struct {
	Spec            models.FilterSpec
	PredictionsFile string
	PricesDir       string
	Warning         string
	Shown           int
	Total           int
	Items           []ShareItem
}

// ShareItem is one ticker section of the share tab.
type ShareItem struct {
	Ticker      string
	Company     string
	Badge       SignalBadge
	ProbText    string
	DateText    string
	HorizonDays int
	Open        bool
	Preset      prices.Preset
	Detail      *ShareDetail
}

// ShareDetail is the expanded price section of a ticker.
type ShareDetail struct {
	Warning string
	Window  *PriceWindow
}

// Shares builds the share tab: the latest prediction per ticker, filtered,
// with price details for the tickers in opts.Open.
func (s *Service) Shares(spec models.FilterSpec, opts ShareOptions) SharesView {
	view := SharesView{
		Spec:            spec,
		PredictionsFile: s.PredictionsFile(),
		PricesDir:       s.pricesDirLabel(),
	}

	records, err := s.predictions.Records()
	if err != nil || len(records) == 0 {
		view.Warning = fmt.Sprintf("No predictions found. Please ensure '%s' exists.", view.PredictionsFile)
		return view
	}

	latest := filter.LatestPerTicker(records)
	shown := filter.Apply(latest, spec)
	view.Total = len(latest)
	view.Shown = len(shown)

	for _, r := range shown {
		ticker := strings.TrimSpace(r.Ticker)
		if ticker == "" {
			continue
		}
		date := ""
		if r.Date != nil {
			date = common.FormatDate(r.Date)
		}
		item := ShareItem{
			Ticker:      ticker,
			Company:     s.names.Name(ticker),
			Badge:       Badge(r.Signal),
			ProbText:    common.FormatPercent(r.ProbUp),
			DateText:    date,
			HorizonDays: s.opts.HorizonDays,
			Open:        opts.Open[ticker],
			Preset:      s.presetFor(ticker, opts.Presets),
		}
		if item.Open {
			item.Detail = s.detail(ticker, item.Preset)
		}
		view.Items = append(view.Items, item)
	}
	return view
}

func (s *Service) presetFor(ticker string, presets map[string]prices.Preset) prices.Preset {
	if p, ok := presets[ticker]; ok {
		return p
	}
	return s.opts.DefaultPreset
}

// detail loads the price window of an expanded ticker, turning soft failures into a warning.
func (s *Service) detail(ticker string, preset prices.Preset) *ShareDetail {
	w, err := s.PriceWindow(ticker, preset)
	switch {
	case errors.Is(err, prices.ErrNoPriceFile):
		return &ShareDetail{Warning: fmt.Sprintf("No price data found for this ticker in '%s'.", s.pricesDirLabel())}
	case errors.Is(err, ErrEmptyPrices):
		return &ShareDetail{Warning: "Price data is empty or invalid for this ticker."}
	case err != nil:
		s.logger.Warn().Str("ticker", ticker).Str("error", err.Error()).Msg("price detail unavailable")
		return &ShareDetail{Warning: "Price data is empty or invalid for this ticker."}
	}
	return &ShareDetail{Window: w}
}
