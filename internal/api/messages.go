package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/foundit/foundit/internal/model"
	"github.com/foundit/foundit/internal/store"
)

// MessagesHandler handles contact-form messages.
type MessagesHandler struct {
	DB *sql.DB
}

type createMessageRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject"`
	Message string `json:"message"`
}

// Create handles POST /api/messages. The contact form is public.
func (h *MessagesHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" || req.Message == "" {
		jsonError(w, http.StatusBadRequest, "name, email and message required")
		return
	}

	msg, err := store.CreateMessage(r.Context(), h.DB, model.Message{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	})
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to create message")
		return
	}
	jsonResponse(w, http.StatusCreated, msg)
}

// List handles GET /api/messages.
func (h *MessagesHandler) List(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "1"
	messages, err := store.ListMessages(r.Context(), h.DB, unreadOnly)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	if messages == nil {
		messages = []model.Message{}
	}
	jsonResponse(w, http.StatusOK, messages)
}

// Get handles GET /api/messages/{id}.
func (h *MessagesHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	msg, err := store.GetMessage(r.Context(), h.DB, id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get message")
		return
	}
	if msg == nil {
		jsonError(w, http.StatusNotFound, "message not found")
		return
	}
	jsonResponse(w, http.StatusOK, msg)
}

// MarkRead handles PUT /api/messages/{id}/read.
func (h *MessagesHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := store.MarkMessageRead(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to mark message read")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "message read"})
}

// Delete handles DELETE /api/messages/{id}.
func (h *MessagesHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid message id")
		return
	}

	if err := store.DeleteMessage(r.Context(), h.DB, id); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete message")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "message deleted"})
}
