// Package predictions loads the model's up/down predictions into a flat table.
package predictions

import (
	"errors"
	"fmt"
	"math"
	"os"
	"strings"
	"time"

	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/spf13/cast"
	"github.com/tidwall/gjson"
)

// Columns are the fields every loaded table carries.
var Columns = []string{"Ticker", "Date", "ProbUp", "Signal"}

// maxEpochMillis bounds dates to what a nanosecond timestamp can represent.
const maxEpochMillis = math.MaxInt64 / int64(time.Millisecond)

// Load parses the predictions file at path.
// A missing file yields an empty table and no error.
//
// The document is either an array of records or an object keyed by ticker
// whose values are a record or a list of records. Non-object entries are skipped.
func Load(path string) ([]models.PredictionRecord, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []models.PredictionRecord{}, nil
		}
		return nil, fmt.Errorf("read predictions %s: %w", path, err)
	}
	records, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse predictions %s: %w", path, err)
	}
	return records, nil
}

// Parse normalizes a predictions JSON document.
func Parse(data []byte) ([]models.PredictionRecord, error) {
	if !gjson.ValidBytes(data) {
		return nil, errors.New("invalid JSON")
	}
	root := gjson.ParseBytes(data)

	records := []models.PredictionRecord{}
	switch {
	case root.IsObject():
		// A repeated key keeps its first position and its last value.
		var keys []string
		values := make(map[string]gjson.Result)
		root.ForEach(func(key, value gjson.Result) bool {
			k := key.String()
			if _, seen := values[k]; !seen {
				keys = append(keys, k)
			}
			values[k] = value
			return true
		})
		for _, ticker := range keys {
			value := values[ticker]
			switch {
			case value.IsArray():
				value.ForEach(func(_, elem gjson.Result) bool {
					if elem.IsObject() {
						records = append(records, recordFrom(elem, ticker))
					}
					return true
				})
			case value.IsObject():
				records = append(records, recordFrom(value, ticker))
			}
		}
	case root.IsArray():
		root.ForEach(func(_, elem gjson.Result) bool {
			if elem.IsObject() {
				records = append(records, recordFrom(elem, ""))
			}
			return true
		})
	default:
		return nil, fmt.Errorf("unsupported document root: %s", root.Type)
	}
	return records, nil
}

// recordFrom builds a record from one JSON object. A Ticker field in the
// object takes precedence over the ticker the object was found under.
func recordFrom(obj gjson.Result, ticker string) models.PredictionRecord {
	rec := models.PredictionRecord{Ticker: ticker}
	if t := obj.Get("Ticker"); t.Exists() {
		rec.Ticker = toText(t)
	}
	rec.Date = toDate(obj.Get("Date"))
	rec.ProbUp = toFloat(obj.Get("ProbUp"))
	rec.Signal = toText(obj.Get("Signal"))
	return rec
}

// toText stringifies a scalar; null and missing become empty.
func toText(v gjson.Result) string {
	switch v.Type {
	case gjson.Null:
		return ""
	case gjson.String:
		return v.Str
	case gjson.JSON:
		return v.Raw
	}
	return cast.ToString(v.Value())
}

// toFloat coerces numbers, numeric strings and booleans. Anything else is null.
func toFloat(v gjson.Result) *float64 {
	var raw any
	switch v.Type {
	case gjson.Number:
		f := v.Num
		return &f
	case gjson.True, gjson.False:
		raw = v.Bool()
	case gjson.String:
		s := strings.TrimSpace(v.Str)
		if s == "" {
			return nil
		}
		raw = s
	default:
		return nil
	}
	f, err := cast.ToFloat64E(raw)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// toDate reads epoch milliseconds from a number or numeric string.
func toDate(v gjson.Result) *time.Time {
	if v.Type != gjson.Number && v.Type != gjson.String {
		return nil
	}
	ms := toFloat(v)
	if ms == nil || math.Abs(*ms) > float64(maxEpochMillis) {
		return nil
	}
	whole, frac := math.Modf(*ms)
	t := time.UnixMilli(int64(whole)).Add(time.Duration(frac * float64(time.Millisecond))).UTC()
	return &t
}
