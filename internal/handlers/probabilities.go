package handlers

import (
	"net/http"

	"github.com/bobmcallan/sharedash/internal/dashboard"
)

type probabilitiesPage struct {
	View        dashboard.ProbabilitiesView
	ChartAPI    string
	DownloadURL string
}

// Probabilities renders the Probability Information tab.
func (h *PageHandler) Probabilities(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	spec, specErr := FilterFromRequest(r, h.base)
	data := h.newPageData("probabilities", spec, specErr)
	data.Probabilities = &probabilitiesPage{
		View:        h.svc.Probabilities(spec),
		ChartAPI:    "/api/predictions?view=" + string(dashboard.ViewAll) + "&" + data.FilterQuery,
		DownloadURL: "/download/predictions.csv?" + data.FilterQuery,
	}

	h.render(w, "probabilities.html", data)
}
