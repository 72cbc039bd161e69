// Package dashboard composes loaded data into the views shown on each tab.
package dashboard

import (
	"path/filepath"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/predictions"
	"github.com/bobmcallan/sharedash/internal/prices"
	"github.com/bobmcallan/sharedash/internal/report"
	"github.com/bobmcallan/sharedash/internal/tickers"
)

// Options configures a Service.
type Options struct {
	HorizonDays   int
	DefaultPreset prices.Preset
}

// Service builds tab views from the prediction, price and report loaders.
type Service struct {
	predictions *predictions.Loader
	prices      *prices.Loader
	reports     *report.Loader
	names       *tickers.Directory
	opts        Options
	logger      *common.Logger
}

// NewService creates a Service.
func NewService(
	preds *predictions.Loader,
	px *prices.Loader,
	reports *report.Loader,
	names *tickers.Directory,
	opts Options,
	logger *common.Logger,
) *Service {
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = 5
	}
	if _, ok := prices.ParsePreset(string(opts.DefaultPreset)); !ok {
		opts.DefaultPreset = prices.DefaultPreset
	}
	return &Service{
		predictions: preds,
		prices:      px,
		reports:     reports,
		names:       names,
		opts:        opts,
		logger:      logger,
	}
}

// DefaultPreset returns the chart timeframe used when none is selected.
func (s *Service) DefaultPreset() prices.Preset {
	return s.opts.DefaultPreset
}

// CompanyName returns the display name of ticker.
func (s *Service) CompanyName(ticker string) string {
	return s.names.Name(ticker)
}

// PredictionsFile returns the base name of the predictions file.
func (s *Service) PredictionsFile() string {
	return filepath.Base(s.predictions.Path())
}

// pricesDirLabel renders the price directory as a slash-terminated relative path.
func (s *Service) pricesDirLabel() string {
	dir := filepath.ToSlash(filepath.Clean(s.prices.Dir()))
	if dir == "" || dir[len(dir)-1] != '/' {
		dir += "/"
	}
	return dir
}
