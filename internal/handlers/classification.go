package handlers

import "net/http"

// Classification renders the Classification Area tab.
func (h *PageHandler) Classification(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	spec, specErr := FilterFromRequest(r, h.base)
	view := h.svc.Classification()

	data := h.newPageData("classification", spec, specErr)
	data.Classification = &view

	h.render(w, "classification.html", data)
}
