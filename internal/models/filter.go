package models

import (
	"strconv"
	"strings"
)

// SortKey selects the ordering of a filtered prediction table.
type SortKey string

const (
	SortProbUpDesc SortKey = "prob_desc"
	SortProbUpAsc  SortKey = "prob_asc"
	SortTickerAsc  SortKey = "ticker"
)

// SortKeys lists the sort options in menu order.
var SortKeys = []SortKey{SortProbUpDesc, SortProbUpAsc, SortTickerAsc}

// Label returns the menu label of the sort key.
func (k SortKey) Label() string {
	switch k {
	case SortProbUpDesc:
		return "ProbUp descending"
	case SortProbUpAsc:
		return "ProbUp ascending"
	case SortTickerAsc:
		return "Alphabetical (Ticker)"
	}
	return string(k)
}

// Limit is a row cap: a positive count, or All.
type Limit struct {
	N   int
	All bool
}

// LimitAll keeps every row.
func LimitAll() Limit { return Limit{All: true} }

// LimitN keeps the first n rows.
func LimitN(n int) Limit { return Limit{N: n} }

// LimitOptions lists the limit choices offered in the sidebar.
var LimitOptions = []Limit{LimitN(10), LimitN(20), LimitN(30), LimitAll()}

// String renders the limit as it appears in query strings.
func (l Limit) String() string {
	if l.All {
		return "all"
	}
	return strconv.Itoa(l.N)
}

// ParseLimit parses "all" (any case) or a positive integer.
func ParseLimit(s string) (Limit, bool) {
	s = strings.TrimSpace(s)
	if strings.EqualFold(s, "all") {
		return LimitAll(), true
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return Limit{}, false
	}
	return LimitN(n), true
}

// FilterSpec holds the sidebar selections applied to a prediction table.
type FilterSpec struct {
	IncludeUp   bool
	IncludeDown bool
	ProbMin     float64 `validate:"gte=0,lte=1"`
	ProbMax     float64 `validate:"gte=0,lte=1,gtefield=ProbMin"`
	Sort        SortKey `validate:"oneof=prob_desc prob_asc ticker"`
	Limit       Limit
}

// DefaultFilterSpec returns the selections shown on first load.
func DefaultFilterSpec() FilterSpec {
	return FilterSpec{
		IncludeUp:   true,
		IncludeDown: true,
		ProbMin:     0,
		ProbMax:     1,
		Sort:        SortProbUpDesc,
		Limit:       LimitN(10),
	}
}

// Signals returns the active signal set. When neither signal is selected
// both are returned, so a filter never silently hides every row.
func (f FilterSpec) Signals() []string {
	var out []string
	if f.IncludeUp {
		out = append(out, SignalUp)
	}
	if f.IncludeDown {
		out = append(out, SignalDown)
	}
	if len(out) == 0 {
		out = []string{SignalUp, SignalDown}
	}
	return out
}
