package filter

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/cast"
)

// Query parameter names.
const (
	ParamUp    = "up"
	ParamDown  = "down"
	ParamMin   = "pmin"
	ParamMax   = "pmax"
	ParamSort  = "sort"
	ParamLimit = "limit"
)

var validate = validator.New()

// fieldParams maps FilterSpec fields to the query parameters that set them.
var fieldParams = map[string]string{
	"IncludeUp":   ParamUp,
	"IncludeDown": ParamDown,
	"ProbMin":     ParamMin,
	"ProbMax":     ParamMax,
	"Sort":        ParamSort,
	"Limit":       ParamLimit,
}

// InvalidParamsError lists query parameters that were rejected.
type InvalidParamsError struct {
	Params []string
}

func (e *InvalidParamsError) Error() string {
	return "invalid filter parameters: " + strings.Join(e.Params, ", ")
}

func (e *InvalidParamsError) add(param string) {
	for _, p := range e.Params {
		if p == param {
			return
		}
	}
	e.Params = append(e.Params, param)
}

// last returns the final value of a repeated parameter. Checkboxes are
// submitted after a hidden "0" input, so the last value wins.
func last(q url.Values, key string) (string, bool) {
	vs, ok := q[key]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return strings.TrimSpace(vs[len(vs)-1]), true
}

// ParseSpec builds a FilterSpec from query parameters, starting from base.
// Parameters that fail to parse or validate keep their base value and are
// reported in an *InvalidParamsError; the returned spec is always usable.
func ParseSpec(q url.Values, base models.FilterSpec) (models.FilterSpec, error) {
	spec := base
	bad := &InvalidParamsError{}

	if v, ok := last(q, ParamUp); ok {
		if b, err := cast.ToBoolE(v); err == nil {
			spec.IncludeUp = b
		} else {
			bad.add(ParamUp)
		}
	}
	if v, ok := last(q, ParamDown); ok {
		if b, err := cast.ToBoolE(v); err == nil {
			spec.IncludeDown = b
		} else {
			bad.add(ParamDown)
		}
	}
	if v, ok := last(q, ParamMin); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			spec.ProbMin = f
		} else {
			bad.add(ParamMin)
		}
	}
	if v, ok := last(q, ParamMax); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			spec.ProbMax = f
		} else {
			bad.add(ParamMax)
		}
	}
	if v, ok := last(q, ParamSort); ok && v != "" {
		spec.Sort = models.SortKey(v)
	}
	if v, ok := last(q, ParamLimit); ok && v != "" {
		if l, ok := models.ParseLimit(v); ok {
			spec.Limit = l
		} else {
			bad.add(ParamLimit)
		}
	}

	if err := validate.Struct(spec); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return base, fmt.Errorf("validate filter: %w", err)
		}
		for _, fe := range verrs {
			switch fe.Field() {
			case "ProbMin", "ProbMax":
				spec.ProbMin, spec.ProbMax = base.ProbMin, base.ProbMax
			case "Sort":
				spec.Sort = base.Sort
			}
			bad.add(fieldParams[fe.Field()])
		}
	}

	if len(bad.Params) > 0 {
		return spec, bad
	}
	return spec, nil
}

// Query renders spec as query parameters that ParseSpec reads back.
func Query(spec models.FilterSpec) url.Values {
	q := url.Values{}
	q.Set(ParamUp, boolParam(spec.IncludeUp))
	q.Set(ParamDown, boolParam(spec.IncludeDown))
	q.Set(ParamMin, strconv.FormatFloat(spec.ProbMin, 'g', -1, 64))
	q.Set(ParamMax, strconv.FormatFloat(spec.ProbMax, 'g', -1, 64))
	q.Set(ParamSort, string(spec.Sort))
	q.Set(ParamLimit, spec.Limit.String())
	return q
}

func boolParam(b bool) string {
	if b {
		return "1"
	}
	return "0"
}
