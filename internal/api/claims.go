package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/foundit/foundit/internal/model"
	"github.com/foundit/foundit/internal/store"
)

// ClaimsHandler handles ownership claim endpoints.
type ClaimsHandler struct {
	DB *sql.DB
}

type createClaimRequest struct {
	ItemID      int64  `json:"item_id"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
}

// Create handles POST /api/claims. Filing a claim is public; the response
// carries the reference code the claimant uses to check status later.
func (h *ClaimsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createClaimRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ItemID == 0 || req.Name == "" || req.Email == "" {
		jsonError(w, http.StatusBadRequest, "item_id, name and email required")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, req.ItemID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	if item.Status == model.ItemStatusClaimed || item.Status == model.ItemStatusArchived {
		jsonError(w, http.StatusConflict, "item is no longer claimable")
		return
	}

	claim, err := store.CreateClaim(r.Context(), h.DB, model.Claim{
		ItemID:      req.ItemID,
		Name:        req.Name,
		Email:       req.Email,
		Phone:       req.Phone,
		Description: req.Description,
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create claim")
		return
	}
	jsonResponse(w, http.StatusCreated, claim)
}

// GetByReference handles GET /api/claims/reference/{reference}. It lets a
// claimant check their claim status without an account.
func (h *ClaimsHandler) GetByReference(w http.ResponseWriter, r *http.Request) {
	claim, err := store.GetClaimByReference(r.Context(), h.DB, r.PathValue("reference"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get claim")
		return
	}
	if claim == nil {
		jsonError(w, http.StatusNotFound, "claim not found")
		return
	}
	jsonResponse(w, http.StatusOK, claim)
}

// List handles GET /api/claims.
func (h *ClaimsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, err := store.ListClaims(r.Context(), h.DB, r.URL.Query().Get("status"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list claims")
		return
	}
	if claims == nil {
		claims = []model.Claim{}
	}
	jsonResponse(w, http.StatusOK, claims)
}

// Approve handles PUT /api/claims/{id}/approve.
func (h *ClaimsHandler) Approve(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	if err := store.ApproveClaim(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to approve claim")
		return
	}

	claim, _ := store.GetClaim(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, claim)
}

// Reject handles PUT /api/claims/{id}/reject.
func (h *ClaimsHandler) Reject(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid claim id")
		return
	}

	if err := store.RejectClaim(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to reject claim")
		return
	}

	claim, _ := store.GetClaim(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, claim)
}
