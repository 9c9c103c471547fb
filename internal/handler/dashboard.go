package handler

import (
	"log/slog"
	"net/http"

	"github.com/DukeRupert/fireaudit/internal/service"
)

// DashboardHandler serves the compliance dashboard.
type DashboardHandler struct {
	dashboardService service.DashboardService
	logger           *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardService service.DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboardService: dashboardService,
		logger:           logger,
	}
}

// RegisterRoutes registers dashboard routes.
func (h *DashboardHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/dashboard", h.Show)
}

// Show returns aggregate stats and the urgent, pending and upcoming lists.
// GET /api/dashboard
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.dashboardService.Get(r.Context())
	if err != nil {
		ErrorResponse(w, r, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, dashboard)
}
