// Package filter applies the sidebar selections to prediction tables.
package filter

import (
	"sort"

	"github.com/bobmcallan/sharedash/internal/models"
)

// Apply filters, sorts and truncates records according to spec. The input
// slice is not modified. Applying the same spec to the result returns it unchanged.
func Apply(records []models.PredictionRecord, spec models.FilterSpec) []models.PredictionRecord {
	active := make(map[string]bool, 2)
	for _, s := range spec.Signals() {
		active[s] = true
	}

	out := make([]models.PredictionRecord, 0, len(records))
	for _, r := range records {
		if !active[r.NormalizedSignal()] {
			continue
		}
		p := r.ProbUpOr(-1)
		if p < spec.ProbMin || p > spec.ProbMax {
			continue
		}
		out = append(out, r)
	}

	sortRecords(out, spec.Sort)

	if !spec.Limit.All && spec.Limit.N >= 0 && len(out) > spec.Limit.N {
		out = out[:spec.Limit.N]
	}
	return out
}

// sortRecords orders records in place. Null probabilities and empty tickers
// sort last in every direction.
func sortRecords(records []models.PredictionRecord, key models.SortKey) {
	switch key {
	case models.SortProbUpAsc, models.SortProbUpDesc:
		desc := key == models.SortProbUpDesc
		sort.SliceStable(records, func(i, j int) bool {
			a, b := records[i].ProbUp, records[j].ProbUp
			if a == nil || b == nil {
				return a != nil && b == nil
			}
			if desc {
				return *a > *b
			}
			return *a < *b
		})
	case models.SortTickerAsc:
		sort.SliceStable(records, func(i, j int) bool {
			a, b := records[i].Ticker, records[j].Ticker
			if a == "" || b == "" {
				return a != "" && b == ""
			}
			return a < b
		})
	}
}

// LatestPerTicker keeps the most recent record of each ticker. Records
// without a ticker are dropped, and an undated record only survives when its
// ticker has no dated one. The result is ordered by ticker.
func LatestPerTicker(records []models.PredictionRecord) []models.PredictionRecord {
	work := make([]models.PredictionRecord, 0, len(records))
	for _, r := range records {
		if r.Ticker != "" {
			work = append(work, r)
		}
	}

	sort.SliceStable(work, func(i, j int) bool {
		a, b := work[i], work[j]
		if a.Ticker != b.Ticker {
			return a.Ticker < b.Ticker
		}
		// Undated rows sort first so a dated row is always kept. This is the
		// reverse of a nulls-last dataframe sort.
		switch {
		case a.Date == nil:
			return b.Date != nil
		case b.Date == nil:
			return false
		}
		return a.Date.Before(*b.Date)
	})

	out := make([]models.PredictionRecord, 0, len(work))
	for i, r := range work {
		if i+1 < len(work) && work[i+1].Ticker == r.Ticker {
			continue
		}
		out = append(out, r)
	}
	return out
}
