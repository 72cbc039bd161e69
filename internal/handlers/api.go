package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/dashboard"
	"github.com/bobmcallan/sharedash/internal/filter"
	"github.com/bobmcallan/sharedash/internal/models"
	"github.com/bobmcallan/sharedash/internal/prices"
	"github.com/bobmcallan/sharedash/internal/report"
)

// APIHandler serves the JSON endpoints the charts are drawn from.
type APIHandler struct {
	logger *common.Logger
	svc    *dashboard.Service
	base   models.FilterSpec
}

// NewAPIHandler creates a new API handler.
func NewAPIHandler(logger *common.Logger, svc *dashboard.Service, base models.FilterSpec) *APIHandler {
	return &APIHandler{logger: logger, svc: svc, base: base}
}

type predictionsResponse struct {
	Status  string                    `json:"status"`
	View    dashboard.View            `json:"view"`
	File    string                    `json:"file"`
	Query   string                    `json:"query"`
	Total   int                       `json:"total"`
	Shown   int                       `json:"shown"`
	Records []models.PredictionRecord `json:"records"`
}

// Predictions handles GET /api/predictions.
func (h *APIHandler) Predictions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	spec, err := FilterFromRequest(r, h.base)
	if err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	view := dashboard.ParseView(r.URL.Query().Get("view"))
	records, total, err := h.svc.Predictions(view, spec)
	if err != nil {
		h.logger.Error().Str("error", err.Error()).Msg("failed to load predictions")
		WriteError(w, http.StatusInternalServerError, "failed to load predictions")
		return
	}
	if records == nil {
		records = []models.PredictionRecord{}
	}

	WriteJSON(w, http.StatusOK, predictionsResponse{
		Status:  "ok",
		View:    view,
		File:    h.svc.PredictionsFile(),
		Query:   filter.Query(spec).Encode(),
		Total:   total,
		Shown:   len(records),
		Records: records,
	})
}

type priceResponse struct {
	Status string `json:"status"`
	*dashboard.PriceWindow
}

// Prices handles GET /api/prices/{ticker}.
func (h *APIHandler) Prices(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := strings.TrimSpace(r.PathValue("ticker"))
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "ticker is required")
		return
	}

	preset := h.svc.DefaultPreset()
	if raw := r.URL.Query().Get("preset"); raw != "" {
		p, ok := prices.ParsePreset(raw)
		if !ok {
			WriteError(w, http.StatusBadRequest, "unknown preset: "+raw)
			return
		}
		preset = p
	}

	window, err := h.svc.PriceWindow(ticker, preset)
	switch {
	case errors.Is(err, prices.ErrNoPriceFile):
		WriteError(w, http.StatusNotFound, "no price data found for "+ticker)
		return
	case errors.Is(err, dashboard.ErrEmptyPrices):
		WriteError(w, http.StatusUnprocessableEntity, "price data is empty or invalid for "+ticker)
		return
	case err != nil:
		h.logger.Error().Str("ticker", ticker).Str("error", err.Error()).Msg("failed to load prices")
		WriteError(w, http.StatusInternalServerError, "failed to load prices")
		return
	}

	WriteJSON(w, http.StatusOK, priceResponse{Status: "ok", PriceWindow: window})
}

// Report handles GET /api/report.
func (h *APIHandler) Report(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rep, ok := h.latestReport(w)
	if !ok {
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status": "ok",
		"report": rep,
	})
}

// latestReport loads the latest report, writing the error response when there is none.
func (h *APIHandler) latestReport(w http.ResponseWriter) (*report.Report, bool) {
	rep, err := h.svc.Report()
	switch {
	case errors.Is(err, report.ErrNoReportDir):
		WriteError(w, http.StatusNotFound, "reports folder not found")
		return nil, false
	case errors.Is(err, report.ErrNoReports):
		WriteError(w, http.StatusNotFound, "no classification report files found")
		return nil, false
	case err != nil:
		h.logger.Error().Str("error", err.Error()).Msg("failed to load report")
		WriteError(w, http.StatusInternalServerError, "failed to load report")
		return nil, false
	}
	return rep, true
}
