package handlers

import (
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/bobmcallan/sharedash/internal/dashboard"
	"github.com/bobmcallan/sharedash/internal/filter"
	"github.com/bobmcallan/sharedash/internal/prices"
)

// Query parameters of the share tab.
const (
	// ParamOpen lists the tickers whose details are expanded (repeatable).
	ParamOpen = "open"
	// presetPrefix prefixes the per-ticker timeframe parameter, e.g. p_AAPL=1Y.
	presetPrefix = "p_"
)

// PresetParam returns the query parameter holding ticker's chart timeframe.
func PresetParam(ticker string) string {
	return presetPrefix + ticker
}

type sharesPage struct {
	View  dashboard.SharesView
	Cards []shareCard
}

// shareCard adds navigation links to a share item.
type shareCard struct {
	dashboard.ShareItem
	Anchor    string
	ToggleURL string
	Presets   []presetLink
	PriceAPI  string
}

type presetLink struct {
	Preset prices.Preset
	URL    string
	Active bool
}

// shareOptions reads the expanded tickers and their timeframes from q.
// Unknown timeframe values are ignored.
func shareOptions(q url.Values) dashboard.ShareOptions {
	opts := dashboard.ShareOptions{
		Open:    map[string]bool{},
		Presets: map[string]prices.Preset{},
	}
	for _, t := range q[ParamOpen] {
		if t = strings.TrimSpace(t); t != "" {
			opts.Open[t] = true
		}
	}
	for key, vs := range q {
		if !strings.HasPrefix(key, presetPrefix) || len(vs) == 0 {
			continue
		}
		ticker := strings.TrimPrefix(key, presetPrefix)
		if p, ok := prices.ParsePreset(vs[len(vs)-1]); ok && ticker != "" {
			opts.Presets[ticker] = p
		}
	}
	return opts
}

// stateQuery returns the share tab state (expanded tickers and timeframes) of opts.
func stateQuery(opts dashboard.ShareOptions) url.Values {
	q := url.Values{}
	for t, open := range opts.Open {
		if open {
			q.Add(ParamOpen, t)
		}
	}
	for t, p := range opts.Presets {
		q.Set(PresetParam(t), string(p))
	}
	return q
}

func cloneOptions(opts dashboard.ShareOptions) dashboard.ShareOptions {
	out := dashboard.ShareOptions{
		Open:    make(map[string]bool, len(opts.Open)),
		Presets: make(map[string]prices.Preset, len(opts.Presets)),
	}
	for k, v := range opts.Open {
		out.Open[k] = v
	}
	for k, v := range opts.Presets {
		out.Presets[k] = v
	}
	return out
}

func sharesURL(filterQuery url.Values, opts dashboard.ShareOptions, anchor string) string {
	q := stateQuery(opts)
	for k, vs := range filterQuery {
		q[k] = vs
	}
	return "/shares?" + q.Encode() + "#" + anchor
}

func anchorFor(ticker string) string {
	return "t-" + ticker
}

// Shares renders the Share Information tab.
func (h *PageHandler) Shares(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	spec, specErr := FilterFromRequest(r, h.base)
	opts := shareOptions(r.URL.Query())
	view := h.svc.Shares(spec, opts)
	fq := filter.Query(spec)

	page := &sharesPage{View: view}
	for _, item := range view.Items {
		anchor := anchorFor(item.Ticker)
		card := shareCard{
			ShareItem: item,
			Anchor:    anchor,
			PriceAPI:  "/api/prices/" + url.PathEscape(item.Ticker) + "?preset=" + url.QueryEscape(string(item.Preset)),
		}

		toggled := cloneOptions(opts)
		if item.Open {
			delete(toggled.Open, item.Ticker)
		} else {
			toggled.Open[item.Ticker] = true
		}
		card.ToggleURL = sharesURL(fq, toggled, anchor)

		for _, p := range prices.Presets {
			picked := cloneOptions(opts)
			picked.Open[item.Ticker] = true
			picked.Presets[item.Ticker] = p
			card.Presets = append(card.Presets, presetLink{
				Preset: p,
				URL:    sharesURL(fq, picked, anchor),
				Active: p == item.Preset,
			})
		}
		page.Cards = append(page.Cards, card)
	}

	data := h.newPageData("shares", spec, specErr)
	data.Shares = page
	for k, vs := range stateQuery(opts) {
		for _, v := range vs {
			data.Hidden = append(data.Hidden, hiddenField{Name: k, Value: v})
		}
	}
	sortHidden(data.Hidden)

	h.render(w, "shares.html", data)
}

func sortHidden(fields []hiddenField) {
	sort.Slice(fields, func(i, j int) bool {
		if fields[i].Name != fields[j].Name {
			return fields[i].Name < fields[j].Name
		}
		return fields[i].Value < fields[j].Value
	})
}
