package dashboard

import (
	"fmt"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/filter"
	"github.com/bobmcallan/sharedash/internal/models"
)

// View selects which predictions a table is built from.
type View string

const (
	// ViewLatest keeps the most recent prediction of each ticker.
	ViewLatest View = "latest"
	// ViewAll keeps the full prediction history.
	ViewAll View = "all"
)

// ParseView returns the named view, defaulting to ViewAll.
func ParseView(s string) View {
	if View(s) == ViewLatest {
		return ViewLatest
	}
	return ViewAll
}

// ProbabilityRow is one row of the probability table.
type ProbabilityRow struct {
	Ticker   string
	Company  string
	DateText string
	ProbText string
	Badge    SignalBadge
	Signal   string
}

// ProbabilitiesView is the Probability Information tab.
type ProbabilitiesView struct {
	Spec            models.FilterSpec
	PredictionsFile string
	Warning         string
	Shown           int
	Total           int
	Rows            []ProbabilityRow
}

// Predictions returns the filtered table for view and the row count before filtering.
func (s *Service) Predictions(view View, spec models.FilterSpec) ([]models.PredictionRecord, int, error) {
	records, err := s.predictions.Records()
	if err != nil {
		return nil, 0, err
	}
	if view == ViewLatest {
		records = filter.LatestPerTicker(records)
	}
	return filter.Apply(records, spec), len(records), nil
}

// Probabilities builds the probability tab over the full prediction history.
func (s *Service) Probabilities(spec models.FilterSpec) ProbabilitiesView {
	view := ProbabilitiesView{
		Spec:            spec,
		PredictionsFile: s.PredictionsFile(),
	}

	records, total, err := s.Predictions(ViewAll, spec)
	if err != nil || total == 0 {
		view.Warning = fmt.Sprintf("Prediction data file missing or empty (%s).", view.PredictionsFile)
		return view
	}

	view.Total = total
	view.Shown = len(records)
	for _, r := range records {
		date := ""
		if r.Date != nil {
			date = common.FormatDate(r.Date)
		}
		view.Rows = append(view.Rows, ProbabilityRow{
			Ticker:   r.Ticker,
			Company:  s.names.Name(r.Ticker),
			DateText: date,
			ProbText: common.FormatDecimal(r.ProbUp, 3),
			Badge:    Badge(r.Signal),
			Signal:   r.Signal,
		})
	}
	return view
}
