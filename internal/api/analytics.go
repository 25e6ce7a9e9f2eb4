package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/foundit/foundit/internal/metrics"
	"github.com/foundit/foundit/internal/model"
	"github.com/foundit/foundit/internal/store"
)

// AnalyticsHandler handles dashboard analytics endpoints.
type AnalyticsHandler struct {
	DB *sql.DB
}

// List handles GET /api/analytics. Returns daily snapshots for the last
// days query parameter (default 30), oldest first.
func (h *AnalyticsHandler) List(w http.ResponseWriter, r *http.Request) {
	days := 30
	if d, err := strconv.Atoi(r.URL.Query().Get("days")); err == nil && d > 0 {
		days = d
	}

	snapshots, err := store.ListAnalytics(r.Context(), h.DB, days)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list analytics")
		return
	}
	if snapshots == nil {
		snapshots = []model.AnalyticsSnapshot{}
	}
	jsonResponse(w, http.StatusOK, snapshots)
}

// Snapshot handles POST /api/analytics/snapshot. It recomputes today's
// counters and stores the snapshot.
func (h *AnalyticsHandler) Snapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := store.SnapshotToday(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to snapshot analytics")
		return
	}

	metrics.SetItemCount(model.ItemStatusFound, snap.FoundItems)
	metrics.SetItemCount(model.ItemStatusLost, snap.LostItems)
	metrics.SetItemCount(model.ItemStatusClaimed, snap.ClaimedItems)

	jsonResponse(w, http.StatusOK, snap)
}
