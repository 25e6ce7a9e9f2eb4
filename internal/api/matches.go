package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/foundit/foundit/internal/model"
	"github.com/foundit/foundit/internal/store"
)

// MatchesHandler handles recorded match endpoints.
type MatchesHandler struct {
	DB *sql.DB
}

// List handles GET /api/matches.
func (h *MatchesHandler) List(w http.ResponseWriter, r *http.Request) {
	matches, err := store.ListMatches(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}
	if matches == nil {
		matches = []model.ItemMatch{}
	}
	jsonResponse(w, http.StatusOK, matches)
}

// MarkNotified handles PUT /api/matches/{id}/notified.
func (h *MatchesHandler) MarkNotified(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	if err := store.MarkMatchNotified(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update match")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "match marked notified"})
}

// Delete handles DELETE /api/matches/{id}.
func (h *MatchesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid match id")
		return
	}

	if err := store.DeleteMatch(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete match")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "match deleted"})
}
