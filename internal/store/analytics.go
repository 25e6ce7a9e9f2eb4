package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/foundit/foundit/internal/model"
)

// SnapshotAnalytics computes the current registry counters and upserts them
// into the snapshot row for the given date (YYYY-MM-DD).
func SnapshotAnalytics(ctx context.Context, db *sql.DB, date string) (*model.AnalyticsSnapshot, error) {
	snap := model.AnalyticsSnapshot{Date: date}

	var err error
	if snap.FoundItems, err = CountItemsByStatus(ctx, db, model.ItemStatusFound); err != nil {
		return nil, err
	}
	if snap.LostItems, err = CountItemsByStatus(ctx, db, model.ItemStatusLost); err != nil {
		return nil, err
	}
	if snap.ClaimedItems, err = CountItemsByStatus(ctx, db, model.ItemStatusClaimed); err != nil {
		return nil, err
	}
	snap.TotalItems = snap.FoundItems + snap.LostItems + snap.ClaimedItems
	if snap.MatchesFound, err = CountMatches(ctx, db, ""); err != nil {
		return nil, err
	}
	if snap.NewUsers, err = CountUsersSince(ctx, db, date); err != nil {
		return nil, err
	}

	_, err = db.ExecContext(ctx,
		`INSERT INTO analytics (date, total_items, found_items, lost_items, claimed_items, matches_found, new_users)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(date) DO UPDATE SET
		     total_items = excluded.total_items,
		     found_items = excluded.found_items,
		     lost_items = excluded.lost_items,
		     claimed_items = excluded.claimed_items,
		     matches_found = excluded.matches_found,
		     new_users = excluded.new_users`,
		snap.Date, snap.TotalItems, snap.FoundItems, snap.LostItems,
		snap.ClaimedItems, snap.MatchesFound, snap.NewUsers,
	)
	if err != nil {
		return nil, fmt.Errorf("saving analytics snapshot: %w", err)
	}
	return &snap, nil
}

// SnapshotToday records today's analytics snapshot.
func SnapshotToday(ctx context.Context, db *sql.DB) (*model.AnalyticsSnapshot, error) {
	return SnapshotAnalytics(ctx, db, time.Now().Format("2006-01-02"))
}

// ListAnalytics returns snapshots for the last n days, oldest first.
func ListAnalytics(ctx context.Context, db *sql.DB, days int) ([]model.AnalyticsSnapshot, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT date, total_items, found_items, lost_items, claimed_items, matches_found, new_users
		 FROM analytics ORDER BY date DESC LIMIT ?`, days,
	)
	if err != nil {
		return nil, fmt.Errorf("listing analytics: %w", err)
	}
	defer rows.Close()

	var snapshots []model.AnalyticsSnapshot
	for rows.Next() {
		var s model.AnalyticsSnapshot
		if err := rows.Scan(&s.Date, &s.TotalItems, &s.FoundItems, &s.LostItems,
			&s.ClaimedItems, &s.MatchesFound, &s.NewUsers); err != nil {
			return nil, fmt.Errorf("scanning analytics snapshot: %w", err)
		}
		snapshots = append(snapshots, s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// Reverse to oldest-first for charting.
	for i, j := 0, len(snapshots)-1; i < j; i, j = i+1, j-1 {
		snapshots[i], snapshots[j] = snapshots[j], snapshots[i]
	}
	return snapshots, nil
}
