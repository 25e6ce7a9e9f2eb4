package store

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"fmt"

	"github.com/foundit/foundit/internal/model"
)

const siteInfoKey = "site_info"

// GetJWTSecret retrieves the JWT secret from the database.
// If no secret exists, it generates one, stores it, and returns it.
// Uses INSERT OR IGNORE + re-SELECT to avoid a race on concurrent startup.
func GetJWTSecret(ctx context.Context, db *sql.DB) (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating jwt secret: %w", err)
	}
	candidate := hex.EncodeToString(buf)

	_, err := db.ExecContext(ctx,
		`INSERT OR IGNORE INTO settings (key, value) VALUES ('jwt_secret', ?)`,
		candidate,
	)
	if err != nil {
		return "", fmt.Errorf("storing jwt_secret: %w", err)
	}

	// Always read back (either our insert or the existing value).
	var secret string
	err = db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = 'jwt_secret'`,
	).Scan(&secret)
	if err != nil {
		return "", fmt.Errorf("querying jwt_secret: %w", err)
	}

	return secret, nil
}

// GetSiteInfo returns the stored site metadata, falling back to defaults
// when an admin has never edited it.
func GetSiteInfo(ctx context.Context, db *sql.DB) (model.SiteInfo, error) {
	var raw string
	err := db.QueryRowContext(ctx,
		`SELECT value FROM settings WHERE key = ?`, siteInfoKey,
	).Scan(&raw)
	if err == sql.ErrNoRows {
		return model.DefaultSiteInfo(), nil
	}
	if err != nil {
		return model.SiteInfo{}, fmt.Errorf("querying site info: %w", err)
	}

	var info model.SiteInfo
	if err := json.Unmarshal([]byte(raw), &info); err != nil {
		return model.SiteInfo{}, fmt.Errorf("decoding site info: %w", err)
	}
	return info, nil
}

// SetSiteInfo replaces the stored site metadata.
func SetSiteInfo(ctx context.Context, db *sql.DB, info model.SiteInfo) error {
	raw, err := json.Marshal(info)
	if err != nil {
		return fmt.Errorf("encoding site info: %w", err)
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		siteInfoKey, string(raw),
	)
	if err != nil {
		return fmt.Errorf("storing site info: %w", err)
	}
	return nil
}
