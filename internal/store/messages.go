package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foundit/foundit/internal/model"
)

// CreateMessage stores a contact-form submission.
func CreateMessage(ctx context.Context, db *sql.DB, msg model.Message) (*model.Message, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO messages (name, email, subject, message) VALUES (?, ?, ?, ?)`,
		msg.Name, msg.Email, msg.Subject, msg.Message,
	)
	if err != nil {
		return nil, fmt.Errorf("creating message: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting message id: %w", err)
	}

	return GetMessage(ctx, db, id)
}

// GetMessage returns a contact message by ID.
func GetMessage(ctx context.Context, db *sql.DB, id int64) (*model.Message, error) {
	row := db.QueryRowContext(ctx,
		`SELECT id, name, email, subject, message, is_read, created_at
		 FROM messages WHERE id = ?`, id,
	)

	m := &model.Message{}
	var subject sql.NullString
	err := row.Scan(&m.ID, &m.Name, &m.Email, &subject, &m.Message, &m.IsRead, &m.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scanning message: %w", err)
	}
	m.Subject = subject.String
	return m, nil
}

// ListMessages returns contact messages, newest first.
func ListMessages(ctx context.Context, db *sql.DB, unreadOnly bool) ([]model.Message, error) {
	query := `SELECT id, name, email, subject, message, is_read, created_at FROM messages`
	if unreadOnly {
		query += ` WHERE is_read = 0`
	}
	query += ` ORDER BY created_at DESC`

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing messages: %w", err)
	}
	defer rows.Close()

	var messages []model.Message
	for rows.Next() {
		var m model.Message
		var subject sql.NullString
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &subject, &m.Message, &m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		m.Subject = subject.String
		messages = append(messages, m)
	}
	return messages, rows.Err()
}

// MarkMessageRead marks a contact message as read.
func MarkMessageRead(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `UPDATE messages SET is_read = 1 WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("marking message read: %w", err)
	}
	return nil
}

// DeleteMessage removes a contact message.
func DeleteMessage(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM messages WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting message: %w", err)
	}
	return nil
}
