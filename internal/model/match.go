package model

import "time"

// ItemMatch represents a discovered correspondence between two items.
// Item1ID is the item that triggered the matching run, Item2ID the candidate.
// Rows are immutable once created except for IsNotified.
type ItemMatch struct {
	ID              int64     `json:"id"`
	Item1ID         int64     `json:"item1_id"`
	Item2ID         int64     `json:"item2_id"`
	SimilarityScore float64   `json:"similarity_score"`
	MatchType       string    `json:"match_type"`
	IsNotified      bool      `json:"is_notified"`
	CreatedAt       time.Time `json:"created_at"`

	// Joined fields (not always populated).
	Item1Title string `json:"item1_title,omitempty"`
	Item2Title string `json:"item2_title,omitempty"`
}

// Match types, derived solely from the similarity score.
const (
	MatchTypeExact     = "exact"
	MatchTypeSimilar   = "similar"
	MatchTypePotential = "potential"
)
