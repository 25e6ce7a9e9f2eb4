package api

import (
	"database/sql"
	"net/http"

	"github.com/foundit/foundit/internal/model"
	"github.com/foundit/foundit/internal/store"
)

// SiteInfoHandler handles the editable public site metadata.
type SiteInfoHandler struct {
	DB *sql.DB
}

// Get handles GET /api/site.
func (h *SiteInfoHandler) Get(w http.ResponseWriter, r *http.Request) {
	info, err := store.GetSiteInfo(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get site info")
		return
	}
	jsonResponse(w, http.StatusOK, info)
}

// Update handles PUT /api/site.
func (h *SiteInfoHandler) Update(w http.ResponseWriter, r *http.Request) {
	var info model.SiteInfo
	if err := decodeJSON(r, &info); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if info.SiteName == "" {
		jsonError(w, http.StatusBadRequest, "site_name required")
		return
	}

	if err := store.SetSiteInfo(r.Context(), h.DB, info); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update site info")
		return
	}
	jsonResponse(w, http.StatusOK, info)
}
