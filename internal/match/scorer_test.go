package match

import (
	"math"
	"testing"

	"github.com/foundit/foundit/internal/model"
)

func fullItem(id int64, status string) model.Item {
	return model.Item{
		ID:          id,
		Title:       "Black leather wallet",
		Description: "contains student id card",
		CategoryID:  4,
		Status:      status,
		Location:    "Main library entrance",
	}
}

func TestScoreIdentity(t *testing.T) {
	s := NewScorer(DefaultWeights())
	a := fullItem(1, model.ItemStatusLost)

	got := s.Score(a, a)
	if math.Abs(got-1.0) > 1e-9 {
		t.Errorf("score of an item against itself = %v, want 1.0", got)
	}
}

func TestScoreSymmetry(t *testing.T) {
	s := NewScorer(DefaultWeights())
	a := model.Item{
		ID: 1, Title: "iPhone 13 lost", Description: "blue case",
		CategoryID: 1, Status: model.ItemStatusLost, Location: "Library",
	}
	b := model.Item{
		ID: 2, Title: "iPhone 13 Pro found", Description: "blue phone case",
		CategoryID: 1, Status: model.ItemStatusFound, Location: "Library entrance",
	}

	ab := s.Score(a, b)
	ba := s.Score(b, a)
	if math.Abs(ab-ba) > 1e-9 {
		t.Errorf("score not symmetric: %v vs %v", ab, ba)
	}
	if ab < 0.0 || ab > 1.0 {
		t.Errorf("score out of bounds: %v", ab)
	}
}

func TestScoreMissingFieldOmitted(t *testing.T) {
	s := NewScorer(DefaultWeights())
	a := fullItem(1, model.ItemStatusLost)
	b := fullItem(2, model.ItemStatusFound)
	b.Description = ""

	// Without a description on one side the signal contributes nothing and
	// the weight is not redistributed, so 0.8 is the ceiling for the pair.
	got := s.Score(a, b)
	if got > 0.8+1e-9 {
		t.Errorf("score with missing description = %v, want <= 0.8", got)
	}

	// The remaining signals still contribute: identical title, category and
	// location alone give 0.3 + 0.2 + 0.1.
	if got < 0.6 {
		t.Errorf("score with missing description = %v, want >= 0.6", got)
	}
}

func TestScoreCategoryMismatch(t *testing.T) {
	s := NewScorer(DefaultWeights())
	a := fullItem(1, model.ItemStatusLost)
	b := fullItem(2, model.ItemStatusFound)
	b.CategoryID = 9

	withMatch := s.Score(a, fullItem(2, model.ItemStatusFound))
	withoutMatch := s.Score(a, b)
	if math.Abs((withMatch-withoutMatch)-0.2) > 1e-9 {
		t.Errorf("category signal delta = %v, want 0.2", withMatch-withoutMatch)
	}
}

func TestScoreCategoryOmittedWhenUnset(t *testing.T) {
	s := NewScorer(DefaultWeights())
	a := fullItem(1, model.ItemStatusLost)
	a.CategoryID = 0
	b := fullItem(2, model.ItemStatusFound)
	b.CategoryID = 0

	// Two unset category ids are not a category match.
	got := s.Score(a, b)
	if got > 0.8+1e-9 {
		t.Errorf("score with unset categories = %v, want <= 0.8", got)
	}
}

func TestScoreSparseItems(t *testing.T) {
	s := NewScorer(DefaultWeights())
	a := model.Item{ID: 1, Title: "Red umbrella", Status: model.ItemStatusLost, CategoryID: 3}
	b := model.Item{ID: 2, Title: "Calculus textbook", Status: model.ItemStatusFound, CategoryID: 7}

	// No descriptions, no locations, different categories, unrelated titles:
	// only the weak title signal remains.
	got := s.Score(a, b)
	if got >= DefaultThreshold {
		t.Errorf("unrelated sparse items scored %v, want < %v", got, DefaultThreshold)
	}
}

func TestScoreClamped(t *testing.T) {
	// Weights summing above 1.0 must still produce a score capped at 1.0.
	s := NewScorer(Weights{Title: 1.0, Description: 1.0, Category: 1.0, Location: 1.0, Keywords: 1.0})
	a := fullItem(1, model.ItemStatusLost)

	if got := s.Score(a, a); got != 1.0 {
		t.Errorf("clamped score = %v, want 1.0", got)
	}
}
