package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/jdewit/bettrack/internal/server/middleware"
	"github.com/jdewit/bettrack/internal/service"
	"github.com/jdewit/bettrack/internal/stats"
)

// DashboardService computes the full dashboard payload for a user.
type DashboardService interface {
	Dashboard(ctx context.Context, ownerID string, f stats.Filter) (service.Dashboard, error)
}

// DashboardHandler serves the aggregated dashboard endpoint.
type DashboardHandler struct {
	dashboards DashboardService
	logger     *slog.Logger
}

// NewDashboardHandler creates a DashboardHandler with the given service and
// logger.
func NewDashboardHandler(dashboards DashboardService, logger *slog.Logger) *DashboardHandler {
	return &DashboardHandler{
		dashboards: dashboards,
		logger:     logger,
	}
}

// Get returns the caller's dashboard: summary, per-site breakdown, chart
// series, scatter and recent bets, all over the same filtered set.
// GET /api/dashboard?outcome=&search=&date_from=&date_to=
func (h *DashboardHandler) Get(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.UserFrom(r.Context())

	dash, err := h.dashboards.Dashboard(r.Context(), user.ID, parseFilter(r))
	if err != nil {
		writeServiceError(w, r, h.logger, err, "failed to build dashboard")
		return
	}

	writeJSON(w, http.StatusOK, dash)
}
