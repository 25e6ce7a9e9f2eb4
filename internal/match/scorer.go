package match

import (
	"math"

	"github.com/foundit/foundit/internal/model"
)

// Weights holds the per-signal weights for the similarity score. The default
// weights sum to 1.0; a signal whose input is missing on either side is left
// out entirely, its weight is not redistributed.
type Weights struct {
	Title       float64
	Description float64
	Category    float64
	Location    float64
	Keywords    float64
}

// DefaultWeights returns the fixed production weight configuration.
func DefaultWeights() Weights {
	return Weights{
		Title:       0.30,
		Description: 0.20,
		Category:    0.20,
		Location:    0.10,
		Keywords:    0.20,
	}
}

// Scorer combines per-field similarities into one score for a pair of items.
// Scorers are immutable and safe for concurrent use.
type Scorer struct {
	weights Weights
}

// NewScorer returns a scorer using the given weight configuration.
func NewScorer(weights Weights) *Scorer {
	return &Scorer{weights: weights}
}

// Score computes the weighted similarity of two items in [0,1]. Each signal
// contributes weight * value only when both items carry the field, so pairs
// with sparse data cannot reach 1.0. Deterministic and side-effect free.
func (s *Scorer) Score(a, b model.Item) float64 {
	var score float64

	if a.Title != "" && b.Title != "" {
		score += StringSimilarity(a.Title, b.Title) * s.weights.Title
	}
	if a.Description != "" && b.Description != "" {
		score += StringSimilarity(a.Description, b.Description) * s.weights.Description
	}
	if a.CategoryID != 0 && b.CategoryID != 0 && a.CategoryID == b.CategoryID {
		score += s.weights.Category
	}
	if a.Location != "" && b.Location != "" {
		score += StringSimilarity(a.Location, b.Location) * s.weights.Location
	}

	keywordsA := ExtractKeywords(KeywordText(a.Title, a.Description))
	keywordsB := ExtractKeywords(KeywordText(b.Title, b.Description))
	if len(keywordsA) > 0 && len(keywordsB) > 0 {
		score += Jaccard(keywordsA, keywordsB) * s.weights.Keywords
	}

	// Guards against weight configurations summing above 1.0.
	return math.Min(score, 1.0)
}
