package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
)

type analyticsStore interface {
	Dashboard(ctx context.Context) (json.RawMessage, error)
}

// AnalyticsHandler forwards the admin dashboard analytics request to
// get_dashboard_analytics and returns its result verbatim.
type AnalyticsHandler struct {
	BaseHandler
	analytics analyticsStore
}

func NewAnalyticsHandler(logger *slog.Logger, analytics analyticsStore) *AnalyticsHandler {
	return &AnalyticsHandler{BaseHandler: BaseHandler{Logger: logger}, analytics: analytics}
}

// Get handles GET /api/dashboard/admin/analytics.
func (h *AnalyticsHandler) Get(w http.ResponseWriter, r *http.Request) {
	data, err := h.analytics.Dashboard(r.Context())
	if err != nil {
		h.remoteErrorResponse(w, r, err)
		return
	}

	if err := h.writeJSON(w, http.StatusOK, envelope{"data": data}, nil); err != nil {
		h.logError(r, err)
	}
}
