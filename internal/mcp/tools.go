package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/bobmcallan/sharedash/internal/dashboard"
	"github.com/bobmcallan/sharedash/internal/filter"
	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/bobmcallan/sharedash/internal/prices"
	"github.com/bobmcallan/sharedash/internal/report"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// Tool names.
const (
	ToolVersion        = "get_version"
	ToolPredictions    = "list_predictions"
	ToolPriceWindow    = "get_price_window"
	ToolClassification = "get_classification_report"
)

func presetNames() []string {
	out := make([]string, len(prices.Presets))
	for i, p := range prices.Presets {
		out[i] = string(p)
	}
	return out
}

func sortNames() []string {
	out := make([]string, len(models.SortKeys))
	for i, k := range models.SortKeys {
		out[i] = string(k)
	}
	return out
}

// Tools returns the dashboard tool catalog.
func Tools() []CatalogTool {
	return []CatalogTool{
		{
			Name:        ToolVersion,
			Description: "Get the dashboard version and the status of its input files. Use this to verify connectivity.",
		},
		{
			Name:        ToolPredictions,
			Description: "List model predictions filtered, sorted and limited like the dashboard sidebar.",
			Params: []CatalogParam{
				{Name: "view", Type: "string", Description: "latest: one row per ticker; all: full history (default)", Enum: []string{string(dashboard.ViewLatest), string(dashboard.ViewAll)}},
				{Name: "include_up", Type: "boolean", Description: "Include UP signals (default true)"},
				{Name: "include_down", Type: "boolean", Description: "Include DOWN signals (default true)"},
				{Name: "prob_min", Type: "number", Description: "Lowest ProbUp to include, 0 to 1"},
				{Name: "prob_max", Type: "number", Description: "Highest ProbUp to include, 0 to 1"},
				{Name: "sort", Type: "string", Description: "Sort order", Enum: sortNames()},
				{Name: "limit", Type: "string", Description: "Maximum rows: a positive number or \"all\""},
			},
		},
		{
			Name:        ToolPriceWindow,
			Description: "Get the price history window of a ticker for a timeframe preset.",
			Params: []CatalogParam{
				{Name: "ticker", Type: "string", Description: "Ticker symbol, e.g. AAPL", Required: true},
				{Name: "preset", Type: "string", Description: "Timeframe (default 1M)", Enum: presetNames()},
			},
		},
		{
			Name:        ToolClassification,
			Description: "Get the latest classification report: per-class metrics, summary metrics, feature importances and validation warnings.",
		},
	}
}

// errorResult creates an MCP error result.
func errorResult(message string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			mcp.NewTextContent(message),
		},
		IsError: true,
	}
}

// jsonResult encodes v as the text content of a result.
func jsonResult(v interface{}) *mcp.CallToolResult {
	out, err := json.Marshal(v)
	if err != nil {
		return errorResult("failed to marshal result")
	}
	return &mcp.CallToolResult{Content: []mcp.Content{mcp.NewTextContent(string(out))}}
}

// toolHandlers maps tool names to their implementations.
func toolHandlers(svc *dashboard.Service, base models.FilterSpec) map[string]server.ToolHandlerFunc {
	return map[string]server.ToolHandlerFunc{
		ToolVersion:        VersionToolHandler(svc),
		ToolPredictions:    PredictionsToolHandler(svc, base),
		ToolPriceWindow:    PriceWindowToolHandler(svc),
		ToolClassification: ClassificationToolHandler(svc),
	}
}

// filterQuery converts tool arguments to the query parameters the sidebar uses.
func filterQuery(args map[string]interface{}) url.Values {
	q := url.Values{}
	if v, ok := args["include_up"].(bool); ok {
		q.Set(filter.ParamUp, strconv.FormatBool(v))
	}
	if v, ok := args["include_down"].(bool); ok {
		q.Set(filter.ParamDown, strconv.FormatBool(v))
	}
	if v, ok := args["prob_min"].(float64); ok {
		q.Set(filter.ParamMin, strconv.FormatFloat(v, 'g', -1, 64))
	}
	if v, ok := args["prob_max"].(float64); ok {
		q.Set(filter.ParamMax, strconv.FormatFloat(v, 'g', -1, 64))
	}
	if v, ok := args["sort"].(string); ok {
		q.Set(filter.ParamSort, v)
	}
	switch v := args["limit"].(type) {
	case string:
		q.Set(filter.ParamLimit, v)
	case float64:
		q.Set(filter.ParamLimit, strconv.FormatFloat(v, 'f', -1, 64))
	}
	return q
}

type predictionsResult struct {
	View    dashboard.View            `json:"view"`
	File    string                    `json:"file"`
	Total   int                       `json:"total"`
	Shown   int                       `json:"shown"`
	Records []models.PredictionRecord `json:"records"`
}

// PredictionsToolHandler lists filtered predictions.
func PredictionsToolHandler(svc *dashboard.Service, base models.FilterSpec) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		spec, err := filter.ParseSpec(filterQuery(r.GetArguments()), base)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}

		view := dashboard.ParseView(r.GetString("view", string(dashboard.ViewAll)))
		records, total, err := svc.Predictions(view, spec)
		if err != nil {
			return errorResult(fmt.Sprintf("Error: failed to load predictions: %v", err)), nil
		}
		if records == nil {
			records = []models.PredictionRecord{}
		}
		return jsonResult(predictionsResult{
			View:    view,
			File:    svc.PredictionsFile(),
			Total:   total,
			Shown:   len(records),
			Records: records,
		}), nil
	}
}

// PriceWindowToolHandler returns a ticker's price window.
func PriceWindowToolHandler(svc *dashboard.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		ticker := r.GetString("ticker", "")
		if ticker == "" {
			return errorResult("Error: ticker parameter is required"), nil
		}

		preset := svc.DefaultPreset()
		if raw := r.GetString("preset", ""); raw != "" {
			p, ok := prices.ParsePreset(raw)
			if !ok {
				return errorResult(fmt.Sprintf("Error: unknown preset %q", raw)), nil
			}
			preset = p
		}

		window, err := svc.PriceWindow(ticker, preset)
		switch {
		case errors.Is(err, prices.ErrNoPriceFile):
			return errorResult(fmt.Sprintf("No price data found for %s.", ticker)), nil
		case errors.Is(err, dashboard.ErrEmptyPrices):
			return errorResult(fmt.Sprintf("Price data is empty or invalid for %s.", ticker)), nil
		case err != nil:
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(window), nil
	}
}

// ClassificationToolHandler returns the latest parsed classification report.
func ClassificationToolHandler(svc *dashboard.Service) server.ToolHandlerFunc {
	return func(ctx context.Context, r mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		rep, err := svc.Report()
		switch {
		case errors.Is(err, report.ErrNoReportDir):
			return errorResult("Reports folder not found."), nil
		case errors.Is(err, report.ErrNoReports):
			return errorResult("No classification report files found."), nil
		case err != nil:
			return errorResult(fmt.Sprintf("Error: %v", err)), nil
		}
		return jsonResult(rep), nil
	}
}
