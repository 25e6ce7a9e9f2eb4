package match

import (
	"context"
	"fmt"
	"sort"

	"github.com/foundit/foundit/internal/model"
)

// DefaultThreshold is the minimum score for a candidate to count as a match.
const DefaultThreshold = 0.6

// Classification score boundaries.
const (
	exactThreshold   = 0.8
	similarThreshold = 0.6
)

// Match is one ranked matching candidate for a target item.
type Match struct {
	Item  model.Item `json:"item"`
	Score float64    `json:"similarity"`
	Type  string     `json:"match_type"`
}

// ItemSource supplies the approved, active items the finder scans.
type ItemSource interface {
	ActiveItemsByStatus(ctx context.Context, status string) ([]model.Item, error)
}

// Finder scans candidate items of the opposite status, scores each against a
// target item, filters by threshold, classifies, and ranks.
type Finder struct {
	scorer *Scorer
	source ItemSource
}

// NewFinder returns a finder using the given scorer and item source.
func NewFinder(scorer *Scorer, source ItemSource) *Finder {
	return &Finder{scorer: scorer, source: source}
}

// FindMatches returns the candidates matching item with score >= threshold,
// sorted by score descending; ties keep the source's fetch order. A source
// failure fails the whole operation, no partial result is returned. The
// target item is never matched against itself. Read-only, no retries.
func (f *Finder) FindMatches(ctx context.Context, item model.Item, threshold float64) ([]Match, error) {
	opposite := model.OppositeStatus(item.Status)
	candidates, err := f.source.ActiveItemsByStatus(ctx, opposite)
	if err != nil {
		return nil, fmt.Errorf("fetching %s candidates: %w", opposite, err)
	}

	var matches []Match
	for _, candidate := range candidates {
		if candidate.ID == item.ID {
			continue
		}
		score := f.scorer.Score(item, candidate)
		if score < threshold {
			continue
		}
		matches = append(matches, Match{
			Item:  candidate,
			Score: score,
			Type:  ClassifyScore(score),
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})
	return matches, nil
}

// ClassifyScore maps a similarity score to a match type: >= 0.8 is exact,
// >= 0.6 is similar, anything below (reachable only with a threshold under
// 0.6) is potential.
func ClassifyScore(score float64) string {
	switch {
	case score >= exactThreshold:
		return model.MatchTypeExact
	case score >= similarThreshold:
		return model.MatchTypeSimilar
	default:
		return model.MatchTypePotential
	}
}
