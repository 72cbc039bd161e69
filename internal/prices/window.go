package prices

import (
	"strings"
	"time"

	"github.com/bobmcallan/sharedash/internal/models"
)

// Preset is a named chart timeframe ending at the last available bar.
type Preset string

const (
	Preset1M  Preset = "1M"
	Preset3M  Preset = "3M"
	Preset6M  Preset = "6M"
	PresetYTD Preset = "YTD"
	Preset1Y  Preset = "1Y"
	Preset3Y  Preset = "3Y"
	Preset5Y  Preset = "5Y"
	PresetMax Preset = "Max"
)

// Presets lists the timeframes in display order.
var Presets = []Preset{Preset1M, Preset3M, Preset6M, PresetYTD, Preset1Y, Preset3Y, Preset5Y, PresetMax}

// DefaultPreset is the timeframe selected when none is requested.
const DefaultPreset = Preset1M

// ParsePreset matches a preset name case-insensitively.
func ParsePreset(s string) (Preset, bool) {
	s = strings.TrimSpace(s)
	for _, p := range Presets {
		if strings.EqualFold(string(p), s) {
			return p, true
		}
	}
	return "", false
}

// months returns the lookback of a preset in calendar months, or -1 for YTD and Max.
func (p Preset) months() int {
	switch p {
	case Preset1M:
		return 1
	case Preset3M:
		return 3
	case Preset6M:
		return 6
	case Preset1Y:
		return 12
	case Preset3Y:
		return 36
	case Preset5Y:
		return 60
	}
	return -1
}

// subtractMonths moves t back n calendar months, clamping the day to the end
// of the target month (31 March minus one month is 28 or 29 February).
func subtractMonths(t time.Time, n int) time.Time {
	y, m, d := t.Date()
	total := y*12 + int(m) - 1 - n
	ty, tm := total/12, time.Month(total%12+1)
	if last := daysIn(ty, tm, t.Location()); d > last {
		d = last
	}
	hh, mm, ss := t.Clock()
	return time.Date(ty, tm, d, hh, mm, ss, t.Nanosecond(), t.Location())
}

func daysIn(year int, month time.Month, loc *time.Location) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
}

// Window returns the inclusive date range a preset covers for series.
// The range ends at the last bar and never starts before the first bar.
// ok is false for an empty series.
func Window(series *models.PriceSeries, preset Preset) (start, end time.Time, ok bool) {
	if series.Empty() {
		return time.Time{}, time.Time{}, false
	}
	first, last := series.Span()

	switch {
	case preset == PresetMax:
		start = first
	case preset == PresetYTD:
		start = time.Date(last.Year(), time.January, 1, 0, 0, 0, 0, last.Location())
	case preset.months() > 0:
		start = subtractMonths(last, preset.months())
	default:
		start = first
	}
	if start.Before(first) {
		start = first
	}
	return start, last, true
}

// Slice returns the bars inside the preset's window.
func Slice(series *models.PriceSeries, preset Preset) []models.PriceBar {
	start, end, ok := Window(series, preset)
	if !ok {
		return nil
	}
	out := make([]models.PriceBar, 0, len(series.Bars))
	for _, b := range series.Bars {
		if !b.Date.Before(start) && !b.Date.After(end) {
			out = append(out, b)
		}
	}
	return out
}
