package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foundit/foundit/internal/model"
)

// CreateUser creates a new user.
func CreateUser(ctx context.Context, db *sql.DB, username, email, passwordHash, role string) (*model.User, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO users (username, email, password_hash, role) VALUES (?, ?, ?, ?)`,
		username, email, passwordHash, role,
	)
	if err != nil {
		return nil, fmt.Errorf("creating user: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting user id: %w", err)
	}

	return GetUser(ctx, db, id)
}

// GetUser returns a user by ID.
func GetUser(ctx context.Context, db *sql.DB, id int64) (*model.User, error) {
	u := &model.User{}
	var phone sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, role, phone, created_at, last_login, deleted_at
		 FROM users WHERE id = ?`, id,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &phone,
		&u.CreatedAt, &u.LastLogin, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user: %w", err)
	}
	u.Phone = phone.String
	return u, nil
}

// GetUserByUsername returns an active user by username.
func GetUserByUsername(ctx context.Context, db *sql.DB, username string) (*model.User, error) {
	u := &model.User{}
	var phone sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, role, phone, created_at, last_login, deleted_at
		 FROM users WHERE username = ? AND deleted_at IS NULL`, username,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &phone,
		&u.CreatedAt, &u.LastLogin, &u.DeletedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting user by username: %w", err)
	}
	u.Phone = phone.String
	return u, nil
}

// ListUsers returns all non-deleted users.
func ListUsers(ctx context.Context, db *sql.DB) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, username, email, password_hash, role, phone, created_at, last_login, deleted_at
		 FROM users WHERE deleted_at IS NULL ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// ListUsersByRole returns all non-deleted users with the given role.
func ListUsersByRole(ctx context.Context, db *sql.DB, role string) ([]model.User, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, username, email, password_hash, role, phone, created_at, last_login, deleted_at
		 FROM users WHERE role = ? AND deleted_at IS NULL ORDER BY id`, role,
	)
	if err != nil {
		return nil, fmt.Errorf("listing users by role: %w", err)
	}
	defer rows.Close()

	return scanUsers(rows)
}

// UpdateUser updates a user's email, role, and phone.
func UpdateUser(ctx context.Context, db *sql.DB, id int64, email, role, phone string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET email = ?, role = ?, phone = ? WHERE id = ? AND deleted_at IS NULL`,
		email, role, phone, id,
	)
	if err != nil {
		return fmt.Errorf("updating user: %w", err)
	}
	return nil
}

// UpdateUserPassword updates a user's password hash.
func UpdateUserPassword(ctx context.Context, db *sql.DB, id int64, passwordHash string) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET password_hash = ? WHERE id = ? AND deleted_at IS NULL`,
		passwordHash, id,
	)
	if err != nil {
		return fmt.Errorf("updating user password: %w", err)
	}
	return nil
}

// TouchLastLogin records a successful login time.
func TouchLastLogin(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET last_login = CURRENT_TIMESTAMP WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("updating last login: %w", err)
	}
	return nil
}

// DeleteUser soft-deletes a user.
func DeleteUser(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE users SET deleted_at = CURRENT_TIMESTAMP WHERE id = ? AND deleted_at IS NULL`,
		id,
	)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return nil
}

// CountUsersSince returns the number of users created on or after the given
// date (YYYY-MM-DD).
func CountUsersSince(ctx context.Context, db *sql.DB, date string) (int, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM users WHERE date(created_at) >= ?`, date,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return count, nil
}

func scanUsers(rows *sql.Rows) ([]model.User, error) {
	var users []model.User
	for rows.Next() {
		var u model.User
		var phone sql.NullString
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role,
			&phone, &u.CreatedAt, &u.LastLogin, &u.DeletedAt); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.Phone = phone.String
		users = append(users, u)
	}
	return users, rows.Err()
}
