package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/foundit/foundit/internal/imaging"
	"github.com/foundit/foundit/internal/match"
	"github.com/foundit/foundit/internal/metrics"
	"github.com/foundit/foundit/internal/model"
	"github.com/foundit/foundit/internal/store"
)

// ItemsHandler handles item CRUD and matching endpoints.
type ItemsHandler struct {
	DB           *sql.DB
	Finder       *match.Finder
	Recorder     *match.Recorder
	Threshold    float64
	MatchTimeout time.Duration
}

type itemRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	CategoryID  int64  `json:"category_id"`
	Status      string `json:"status"`
	Location    string `json:"location"`
	ContactInfo string `json:"contact_info"`
	Brand       string `json:"brand"`
	Model       string `json:"model"`
	Color       string `json:"color"`
	Size        string `json:"size"`
	Material    string `json:"material"`
	Condition   string `json:"condition"`
}

func (req itemRequest) toItem() model.Item {
	return model.Item{
		Title:       req.Title,
		Description: req.Description,
		CategoryID:  req.CategoryID,
		Status:      req.Status,
		Location:    req.Location,
		ContactInfo: req.ContactInfo,
		Brand:       req.Brand,
		Model:       req.Model,
		Color:       req.Color,
		Size:        req.Size,
		Material:    req.Material,
		Condition:   req.Condition,
	}
}

// List handles GET /api/items. Unauthenticated callers only see approved
// items; staff can pass all=1 to include pending ones.
func (h *ItemsHandler) List(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := store.ItemFilter{
		Search:       query.Get("q"),
		Status:       query.Get("status"),
		Sort:         query.Get("sort"),
		ApprovedOnly: true,
	}
	if id, err := strconv.ParseInt(query.Get("category"), 10, 64); err == nil {
		filter.CategoryID = id
	}
	if query.Get("all") == "1" && GetClaims(r.Context()) != nil {
		filter.ApprovedOnly = false
	}

	items, err := store.ListItems(r.Context(), h.DB, filter)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list items")
		return
	}
	if items == nil {
		items = []model.Item{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Create handles POST /api/items. Reporting is public: the item starts
// unapproved, and the matching engine runs against the opposite status
// before the response is written.
func (h *ItemsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}
	if req.Status == "" {
		req.Status = model.ItemStatusFound
	}
	if req.Status != model.ItemStatusFound && req.Status != model.ItemStatusLost {
		jsonError(w, http.StatusBadRequest, "status must be 'found' or 'lost'")
		return
	}

	item, err := store.CreateItem(r.Context(), h.DB, req.toItem())
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create item")
		return
	}

	matches := h.runMatching(r, *item)
	jsonResponse(w, http.StatusCreated, map[string]any{
		"item":    item,
		"matches": matches,
	})
}

func contextWithTimeout(r *http.Request, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(r.Context())
	}
	return context.WithTimeout(r.Context(), d)
}

// runMatching scores the item against opposite-status candidates and records
// whatever it finds. Matching failures never fail the originating request.
func (h *ItemsHandler) runMatching(r *http.Request, item model.Item) []match.Match {
	ctx, cancel := contextWithTimeout(r, h.MatchTimeout)
	defer cancel()

	metrics.RecordMatchRun()
	results, err := h.Finder.FindMatches(ctx, item, h.Threshold)
	if err != nil {
		slog.Error("matching failed", "item", item.ID, "error", err)
		return []match.Match{}
	}
	for _, m := range results {
		metrics.RecordMatch(m.Type, m.Score)
	}

	if err := h.Recorder.Record(ctx, item, results); err != nil {
		if errors.Is(err, match.ErrNotify) {
			slog.Warn("match notification failed", "item", item.ID, "error", err)
		} else {
			slog.Error("recording matches failed", "item", item.ID, "error", err)
		}
	}

	if results == nil {
		results = []match.Match{}
	}
	return results
}

// Get handles GET /api/items/{id}.
func (h *ItemsHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}
	jsonResponse(w, http.StatusOK, item)
}

// Update handles PUT /api/items/{id}.
func (h *ItemsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	existing, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Title == "" {
		jsonError(w, http.StatusBadRequest, "title required")
		return
	}
	if req.Status == "" {
		req.Status = existing.Status
	}
	if !model.ValidItemStatus(req.Status) {
		jsonError(w, http.StatusBadRequest, "invalid status")
		return
	}

	updated := req.toItem()
	updated.ID = id
	updated.Approved = existing.Approved
	if err := store.UpdateItem(r.Context(), h.DB, updated); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to update item")
		return
	}

	item, _ := store.GetItem(r.Context(), h.DB, id)
	jsonResponse(w, http.StatusOK, item)
}

// SetApproval handles PUT /api/items/{id}/approve and /unapprove.
func (h *ItemsHandler) SetApproval(approved bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
		if err != nil {
			jsonError(w, http.StatusBadRequest, "invalid item id")
			return
		}

		item, err := store.GetItem(r.Context(), h.DB, id)
		if err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to get item")
			return
		}
		if item == nil {
			jsonError(w, http.StatusNotFound, "item not found")
			return
		}

		if err := store.SetItemApproval(r.Context(), h.DB, id, approved); err != nil {
			jsonError(w, http.StatusInternalServerError, "failed to update approval")
			return
		}

		// A freshly approved item becomes visible to the matching engine,
		// so run it once immediately.
		var matches []match.Match
		if approved {
			item.Approved = true
			matches = h.runMatching(r, *item)
		}
		jsonResponse(w, http.StatusOK, map[string]any{
			"item":    item,
			"matches": matches,
		})
	}
}

// Delete handles DELETE /api/items/{id}.
func (h *ItemsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	if err := store.DeleteItem(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete item")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "item deleted"})
}

// Rematch handles POST /api/items/{id}/rematch. It reruns the matching
// engine for an existing item on demand.
func (h *ItemsHandler) Rematch(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	matches := h.runMatching(r, *item)
	jsonResponse(w, http.StatusOK, map[string]any{"matches": matches})
}

// GetMatches handles GET /api/items/{id}/matches.
func (h *ItemsHandler) GetMatches(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	matches, err := store.ListMatchesForItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list matches")
		return
	}
	if matches == nil {
		matches = []model.ItemMatch{}
	}
	jsonResponse(w, http.StatusOK, matches)
}

// UploadImage handles PUT /api/items/{id}/image. The image is validated,
// downscaled and re-encoded before storage.
func (h *ItemsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	item, err := store.GetItem(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get item")
		return
	}
	if item == nil {
		jsonError(w, http.StatusNotFound, "item not found")
		return
	}

	// Limit to 5 MB.
	r.Body = http.MaxBytesReader(w, r.Body, 5<<20)

	if err := r.ParseMultipartForm(5 << 20); err != nil {
		jsonError(w, http.StatusBadRequest, "file too large or invalid multipart form")
		return
	}

	file, _, err := r.FormFile("image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, "image file required")
		return
	}
	defer file.Close()

	result, err := imaging.Process(file)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := store.SetItemImage(r.Context(), h.DB, id, result.Data, result.MIME); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to save image")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]string{"message": "image uploaded"})
}

// GetImage handles GET /api/items/{id}/image.
func (h *ItemsHandler) GetImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid item id")
		return
	}

	data, mime, err := store.GetItemImage(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get image")
		return
	}
	if data == nil {
		jsonError(w, http.StatusNotFound, "no image")
		return
	}

	w.Header().Set("Content-Type", mime)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write(data)
}
