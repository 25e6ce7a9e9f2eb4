package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foundit/foundit/internal/model"
)

// CreateNotification delivers an in-app notification to a user.
func CreateNotification(ctx context.Context, db *sql.DB, userID int64, title, message, kind string) (*model.Notification, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO notifications (user_id, title, message, kind) VALUES (?, ?, ?, ?)`,
		userID, title, message, kind,
	)
	if err != nil {
		return nil, fmt.Errorf("creating notification: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting notification id: %w", err)
	}

	return GetNotification(ctx, db, id)
}

// GetNotification returns a notification by ID.
func GetNotification(ctx context.Context, db *sql.DB, id int64) (*model.Notification, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, user_id, title, message, kind, is_read, created_at
		 FROM notifications WHERE id = ?`, id,
	)

	n := &model.Notification{}
	err := row.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Kind, &n.IsRead, &n.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning notification: %w", err)
	}
	return n, nil
}

// ListNotifications returns a user's notifications, newest first. When
// unreadOnly is set, read notifications are filtered out.
func ListNotifications(ctx context.Context, db *sql.DB, userID int64, unreadOnly bool) ([]model.Notification, error) {
	query := `SELECT id, user_id, title, message, kind, is_read, created_at
	          FROM notifications WHERE user_id = ?`
	if unreadOnly {
		query += ` AND is_read = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing notifications: %w", err)
	}
	defer rows.Close()

	var notifications []model.Notification
	for rows.Next() {
		var n model.Notification
		if err := rows.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Kind, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning notification: %w", err)
		}
		notifications = append(notifications, n)
	}
	return notifications, rows.Err()
}

// CountUnreadNotifications returns the number of unread notifications for a user.
func CountUnreadNotifications(ctx context.Context, db *sql.DB, userID int64) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM notifications WHERE user_id = ? AND is_read = 0`, userID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting unread notifications: %w", err)
	}
	return count, nil
}

// MarkNotificationRead marks a single notification as read. The userID guard
// keeps users from touching each other's notifications.
func MarkNotificationRead(ctx context.Context, db *sql.DB, id, userID int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("marking notification read: %w", err)
	}
	return nil
}

// MarkAllNotificationsRead marks every notification for a user as read.
func MarkAllNotificationsRead(ctx context.Context, db *sql.DB, userID int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE notifications SET is_read = 1 WHERE user_id = ?`, userID,
	)
	if err != nil {
		return fmt.Errorf("marking notifications read: %w", err)
	}
	return nil
}

// DeleteNotification removes a notification.
func DeleteNotification(ctx context.Context, db *sql.DB, id, userID int64) error {
	_, err := db.ExecContext(ctx,
		`DELETE FROM notifications WHERE id = ? AND user_id = ?`, id, userID,
	)
	if err != nil {
		return fmt.Errorf("deleting notification: %w", err)
	}
	return nil
}
