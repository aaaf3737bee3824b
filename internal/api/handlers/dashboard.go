package handlers

import (
	"net/http"

	"github.com/rgehrsitz/gravityless/internal/api/response"
	"github.com/rgehrsitz/gravityless/internal/service"
)

// DashboardHandler serves the overview for signed-in owners and the public demo
type DashboardHandler struct {
	svc   *service.DashboardService
	clock Clock
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(svc *service.DashboardService, clock Clock) *DashboardHandler {
	return &DashboardHandler{svc: svc, clock: clock}
}

// Demo returns the dashboard of the sample portfolio. No authentication.
//
// Endpoint: GET /api/demo/dashboard
func (h *DashboardHandler) Demo(w http.ResponseWriter, r *http.Request) {
	now, err := asOf(r, h.clock)
	if err != nil {
		respondServiceError(w, "invalid as_of", err)
		return
	}
	d, err := h.svc.Demo(r.Context(), now)
	if err != nil {
		respondServiceError(w, "failed to build demo dashboard", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, d)
}

// Dashboard returns the owner's dashboard.
//
// Endpoint: GET /api/dashboard?as_of=YYYY-MM-DD
func (h *DashboardHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := owner(w, r)
	if !ok {
		return
	}
	now, err := asOf(r, h.clock)
	if err != nil {
		respondServiceError(w, "invalid as_of", err)
		return
	}
	d, err := h.svc.Build(r.Context(), ownerID, now)
	if err != nil {
		respondServiceError(w, "failed to build dashboard", err)
		return
	}
	response.RespondJSON(w, http.StatusOK, d)
}
