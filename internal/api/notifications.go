package api

import (
	"database/sql"
	"net/http"
	"strconv"

	"github.com/foundit/foundit/internal/model"
	"github.com/foundit/foundit/internal/store"
)

// NotificationsHandler handles a user's in-app notifications.
type NotificationsHandler struct {
	DB *sql.DB
}

// List handles GET /api/notifications.
func (h *NotificationsHandler) List(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	unreadOnly := r.URL.Query().Get("unread") == "1"

	notifications, err := store.ListNotifications(r.Context(), h.DB, claims.UserID, unreadOnly)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to list notifications")
		return
	}
	if notifications == nil {
		notifications = []model.Notification{}
	}

	unread, err := store.CountUnreadNotifications(r.Context(), h.DB, claims.UserID)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to count notifications")
		return
	}

	jsonResponse(w, http.StatusOK, map[string]any{
		"notifications": notifications,
		"unread":        unread,
	})
}

// MarkRead handles PUT /api/notifications/{id}/read.
func (h *NotificationsHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	claims := GetClaims(r.Context())
	if err := store.MarkNotificationRead(r.Context(), h.DB, id, claims.UserID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to mark notification read")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "notification read"})
}

// MarkAllRead handles PUT /api/notifications/read.
func (h *NotificationsHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	claims := GetClaims(r.Context())
	if err := store.MarkAllNotificationsRead(r.Context(), h.DB, claims.UserID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to mark notifications read")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "all notifications read"})
}

// Delete handles DELETE /api/notifications/{id}.
func (h *NotificationsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		jsonError(w, http.StatusBadRequest, "invalid notification id")
		return
	}

	claims := GetClaims(r.Context())
	if err := store.DeleteNotification(r.Context(), h.DB, id, claims.UserID); err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to delete notification")
		return
	}
	jsonResponse(w, http.StatusOK, map[string]string{"message": "notification deleted"})
}
