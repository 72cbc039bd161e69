package handlers

import (
	"net/http"

	"github.com/bobmcallan/sharedash/internal/common"
	"github.com/bobmcallan/sharedash/internal/dashboard"
)

// HealthHandler handles health check requests.
type HealthHandler struct {
	logger *common.Logger
	svc    *dashboard.Service
}

// NewHealthHandler creates a new health handler. svc may be nil, in which
// case only liveness is reported.
func NewHealthHandler(logger *common.Logger, svc *dashboard.Service) *HealthHandler {
	return &HealthHandler{logger: logger, svc: svc}
}

type healthResponse struct {
	Status string                `json:"status"`
	Data   *dashboard.DataStatus `json:"data,omitempty"`
}

// ServeHTTP handles GET /api/health. The dashboard stays healthy when inputs
// are missing; each tab shows its own warning instead.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	resp := healthResponse{Status: "ok"}
	if h.svc != nil {
		st := h.svc.Status()
		resp.Data = &st
	}
	WriteJSON(w, http.StatusOK, resp)
}
