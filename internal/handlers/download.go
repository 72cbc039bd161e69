package handlers

import (
	"io"
	"mime"
	"net/http"

	"github.com/bobmcallan/sharedash/internal/dashboard"
	"github.com/bobmcallan/sharedash/internal/predictions"
)

// PredictionsCSVName is the file name of the filtered predictions download.
const PredictionsCSVName = "predictions_filtered.csv"

func attachment(w http.ResponseWriter, contentType, name string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": name}))
}

// DownloadReport handles GET /download/report with the raw text of the latest report.
func (h *APIHandler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	rep, ok := h.latestReport(w)
	if !ok {
		return
	}

	attachment(w, "text/plain; charset=utf-8", rep.File.Name)
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, rep.Raw)
}

// DownloadPredictions handles GET /download/predictions.csv with the
// probability table as currently filtered and sorted.
func (h *APIHandler) DownloadPredictions(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	// Rejected parameters fall back like the page does.
	spec, _ := FilterFromRequest(r, h.base)
	records, _, err := h.svc.Predictions(dashboard.ViewAll, spec)
	if err != nil {
		h.logger.Error().Str("error", err.Error()).Msg("failed to load predictions")
		WriteError(w, http.StatusInternalServerError, "failed to load predictions")
		return
	}

	attachment(w, "text/csv; charset=utf-8", PredictionsCSVName)
	w.WriteHeader(http.StatusOK)
	if err := predictions.WriteCSV(w, records); err != nil {
		h.logger.Warn().Str("error", err.Error()).Msg("predictions download interrupted")
	}
}
