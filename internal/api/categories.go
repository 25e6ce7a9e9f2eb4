package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/foundit/foundit/internal/model"
	"github.com/foundit/foundit/internal/store"
)

// CategoriesHandler handles category CRUD endpoints.
type CategoriesHandler struct {
	DB *sql.DB
}

type categoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

// List handles GET /api/categories.
func (h *CategoriesHandler) List(w http.ResponseWriter, r *http.Request) {
	categories, err := store.ListCategories(r.Context(), h.DB)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list categories")
		return
	}
	if categories == nil {
		categories = []model.Category{}
	}
	jsonResponse(w, http.StatusOK, categories)
}

// Create handles POST /api/categories.
func (h *CategoriesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	category, err := store.CreateCategory(r.Context(), h.DB, req.Name, req.Description, req.Icon, req.Color)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create category")
		return
	}
	jsonResponse(w, http.StatusCreated, category)
}

// Update handles PUT /api/categories/{id}.
func (h *CategoriesHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	var req categoryRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" {
		jsonError(w, http.StatusBadRequest, "name required")
		return
	}

	if err := store.UpdateCategory(r.Context(), h.DB, id, req.Name, req.Description, req.Icon, req.Color); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update category")
		return
	}

	category, _ := store.GetCategory(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, category)
}

// Delete handles DELETE /api/categories/{id}.
func (h *CategoriesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid category id")
		return
	}

	if err := store.DeleteCategory(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete category")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "category deleted"})
}
