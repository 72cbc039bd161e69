package common

import (
	"fmt"
	"math"
	"time"

	"github.com/dustin/go-humanize"
)

// DateLayout is the day-first date format used throughout the dashboard.
const DateLayout = "02.01.2006"

// FormatDate formats a date as dd.mm.yyyy, or "N/A" when nil or zero.
func FormatDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return t.Format(DateLayout)
}

// FormatPercent formats a probability in [0,1] as a percentage with one decimal.
func FormatPercent(p *float64) string {
	if p == nil || math.IsNaN(*p) {
		return "N/A"
	}
	return fmt.Sprintf("%.1f%%", *p*100)
}

// FormatDecimal formats a value with the given number of decimals, or "N/A" when nil.
func FormatDecimal(v *float64, decimals int) string {
	if v == nil || math.IsNaN(*v) {
		return "N/A"
	}
	return fmt.Sprintf("%.*f", decimals, *v)
}

// FormatVolume formats a share volume with thousands separators.
func FormatVolume(v *float64) string {
	if v == nil || math.IsNaN(*v) || math.IsInf(*v, 0) {
		return "N/A"
	}
	r := math.Round(*v)
	if r >= math.MaxInt64 || r <= math.MinInt64 {
		return humanize.Commaf(r)
	}
	return humanize.Comma(int64(r))
}

// FormatCount formats a row count with thousands separators.
func FormatCount(n int) string {
	return humanize.Comma(int64(n))
}

// FormatBytes formats a file size in human units.
func FormatBytes(n int64) string {
	if n < 0 {
		return "N/A"
	}
	return humanize.Bytes(uint64(n))
}

// FormatAge describes how long ago t was, e.g. "3 days ago".
func FormatAge(t time.Time) string {
	if t.IsZero() {
		return "N/A"
	}
	return humanize.Time(t)
}
