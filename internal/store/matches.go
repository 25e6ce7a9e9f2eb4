package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/foundit/foundit/internal/model"
)

// SaveMatch inserts a new item match row and returns its id. Matching runs
// are append-only: repeated runs for the same pair insert new rows.
func SaveMatch(ctx context.Context, db *sql.DB, m model.ItemMatch) (int64, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO item_matches (item1_id, item2_id, similarity_score, match_type)
		 VALUES (?, ?, ?, ?)`,
		m.Item1ID, m.Item2ID, m.SimilarityScore, m.MatchType,
	)
	if err != nil {
		return 0, fmt.Errorf("saving match: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("getting match id: %w", err)
	}
	return id, nil
}

// MatchPairExists reports whether a match row already exists for the pair,
// in either orientation.
func MatchPairExists(ctx context.Context, db *sql.DB, item1ID, item2ID int64) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM item_matches
		 WHERE (item1_id = ? AND item2_id = ?) OR (item1_id = ? AND item2_id = ?)`,
		item1ID, item2ID, item2ID, item1ID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("checking match pair: %w", err)
	}
	return count > 0, nil
}

// ListMatches returns all match rows ordered by similarity score descending.
func ListMatches(ctx context.Context, db *sql.DB) ([]model.ItemMatch, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT m.id, m.item1_id, m.item2_id, m.similarity_score, m.match_type,
		        m.is_notified, m.created_at, i1.title, i2.title
		 FROM item_matches m
		 JOIN items i1 ON i1.id = m.item1_id
		 JOIN items i2 ON i2.id = m.item2_id
		 ORDER BY m.similarity_score DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing matches: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// ListMatchesForItem returns match rows referencing the item on either side,
// ordered by similarity score descending.
func ListMatchesForItem(ctx context.Context, db *sql.DB, itemID int64) ([]model.ItemMatch, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT m.id, m.item1_id, m.item2_id, m.similarity_score, m.match_type,
		        m.is_notified, m.created_at, i1.title, i2.title
		 FROM item_matches m
		 JOIN items i1 ON i1.id = m.item1_id
		 JOIN items i2 ON i2.id = m.item2_id
		 WHERE m.item1_id = ? OR m.item2_id = ?
		 ORDER BY m.similarity_score DESC`,
		itemID, itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("listing matches for item: %w", err)
	}
	defer rows.Close()

	return scanMatches(rows)
}

// MarkMatchNotified sets the is_notified flag on a match row.
func MarkMatchNotified(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx,
		`UPDATE item_matches SET is_notified = 1 WHERE id = ?`, id,
	)
	if err != nil {
		return fmt.Errorf("marking match notified: %w", err)
	}
	return nil
}

// DeleteMatch removes a match row.
func DeleteMatch(ctx context.Context, db *sql.DB, id int64) error {
	_, err := db.ExecContext(ctx, `DELETE FROM item_matches WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting match: %w", err)
	}
	return nil
}

// CountMatches returns the total number of match rows, optionally filtered by
// match type.
func CountMatches(ctx context.Context, db *sql.DB, matchType string) (int, error) {
	var count int
	var err error
	if matchType == "" {
		err = db.QueryRowContext(ctx, `SELECT COUNT(*) FROM item_matches`).Scan(&count)
	} else {
		err = db.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM item_matches WHERE match_type = ?`, matchType).Scan(&count)
	}
	if err != nil {
		return 0, fmt.Errorf("counting matches: %w", err)
	}
	return count, nil
}

func scanMatches(rows *sql.Rows) ([]model.ItemMatch, error) {
	var matches []model.ItemMatch
	for rows.Next() {
		var m model.ItemMatch
		if err := rows.Scan(&m.ID, &m.Item1ID, &m.Item2ID, &m.SimilarityScore,
			&m.MatchType, &m.IsNotified, &m.CreatedAt, &m.Item1Title, &m.Item2Title); err != nil {
			return nil, fmt.Errorf("scanning match: %w", err)
		}
		matches = append(matches, m)
	}
	return matches, rows.Err()
}
