package match

import (
	"context"
	"errors"
	"testing"

	"github.com/foundit/foundit/internal/model"
)

// fakeSource returns a fixed candidate list and records the requested status.
type fakeSource struct {
	items           []model.Item
	err             error
	requestedStatus string
}

func (f *fakeSource) ActiveItemsByStatus(_ context.Context, status string) ([]model.Item, error) {
	f.requestedStatus = status
	if f.err != nil {
		return nil, f.err
	}
	return f.items, nil
}

func newTestFinder(source ItemSource) *Finder {
	return NewFinder(NewScorer(DefaultWeights()), source)
}

func TestClassifyScore(t *testing.T) {
	tests := []struct {
		score    float64
		expected string
	}{
		{1.0, model.MatchTypeExact},
		{0.8, model.MatchTypeExact},
		{0.79999, model.MatchTypeSimilar},
		{0.6, model.MatchTypeSimilar},
		{0.59999, model.MatchTypePotential},
		{0.0, model.MatchTypePotential},
	}

	for _, tt := range tests {
		if got := ClassifyScore(tt.score); got != tt.expected {
			t.Errorf("ClassifyScore(%v) = %q, want %q", tt.score, got, tt.expected)
		}
	}
}

func TestFindMatchesOppositeStatus(t *testing.T) {
	source := &fakeSource{}
	finder := newTestFinder(source)

	target := model.Item{ID: 1, Title: "Lost keys", Status: model.ItemStatusFound}
	if _, err := finder.FindMatches(context.Background(), target, DefaultThreshold); err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if source.requestedStatus != model.ItemStatusLost {
		t.Errorf("found item queried %q candidates, want lost", source.requestedStatus)
	}

	target.Status = model.ItemStatusLost
	finder.FindMatches(context.Background(), target, DefaultThreshold)
	if source.requestedStatus != model.ItemStatusFound {
		t.Errorf("lost item queried %q candidates, want found", source.requestedStatus)
	}
}

func TestFindMatchesScenario(t *testing.T) {
	candidate := model.Item{
		ID:          2,
		Title:       "iPhone 13 Pro found",
		Description: "blue phone case",
		CategoryID:  1,
		Status:      model.ItemStatusFound,
		Location:    "Library entrance",
	}
	source := &fakeSource{items: []model.Item{candidate}}
	finder := newTestFinder(source)

	target := model.Item{
		ID:          1,
		Title:       "iPhone 13 lost",
		Description: "blue case",
		CategoryID:  1,
		Status:      model.ItemStatusLost,
		Location:    "Library",
	}

	matches, err := finder.FindMatches(context.Background(), target, DefaultThreshold)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Score <= 0.6 {
		t.Errorf("scenario score = %v, want > 0.6", matches[0].Score)
	}
	if matches[0].Type != model.MatchTypeSimilar && matches[0].Type != model.MatchTypeExact {
		t.Errorf("scenario match type = %q, want similar or exact", matches[0].Type)
	}
}

func TestFindMatchesThresholdFiltering(t *testing.T) {
	source := &fakeSource{items: []model.Item{
		{ID: 2, Title: "Black leather wallet", Description: "worn", CategoryID: 4, Status: model.ItemStatusFound, Location: "Cafeteria"},
		{ID: 3, Title: "Calculus textbook", CategoryID: 7, Status: model.ItemStatusFound},
	}}
	finder := newTestFinder(source)

	target := model.Item{
		ID: 1, Title: "Black leather wallet", Description: "worn",
		CategoryID: 4, Status: model.ItemStatusLost, Location: "Cafeteria",
	}

	matches, err := finder.FindMatches(context.Background(), target, 0.9)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	for _, m := range matches {
		if m.Score < 0.9 {
			t.Errorf("threshold 0.9 returned score %v", m.Score)
		}
	}
}

func TestFindMatchesSelfExclusion(t *testing.T) {
	target := model.Item{
		ID: 1, Title: "Black leather wallet", Description: "worn",
		CategoryID: 4, Status: model.ItemStatusLost, Location: "Cafeteria",
	}

	// The target shows up in the candidate set through a data error; it must
	// still be excluded by id.
	source := &fakeSource{items: []model.Item{target}}
	finder := newTestFinder(source)

	matches, err := finder.FindMatches(context.Background(), target, 0.0)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	if len(matches) != 0 {
		t.Errorf("target item matched itself: %v", matches)
	}
}

func TestFindMatchesRanking(t *testing.T) {
	source := &fakeSource{items: []model.Item{
		{ID: 2, Title: "Black wallet", CategoryID: 4, Status: model.ItemStatusFound},
		{ID: 3, Title: "Black leather wallet", Description: "worn", CategoryID: 4, Status: model.ItemStatusFound, Location: "Cafeteria"},
		{ID: 4, Title: "Black leather wallet thing", CategoryID: 4, Status: model.ItemStatusFound},
	}}
	finder := newTestFinder(source)

	target := model.Item{
		ID: 1, Title: "Black leather wallet", Description: "worn",
		CategoryID: 4, Status: model.ItemStatusLost, Location: "Cafeteria",
	}

	matches, err := finder.FindMatches(context.Background(), target, 0.1)
	if err != nil {
		t.Fatalf("FindMatches: %v", err)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i].Score > matches[i-1].Score {
			t.Errorf("matches not sorted by score descending: %v before %v",
				matches[i-1].Score, matches[i].Score)
		}
	}
	if len(matches) == 0 || matches[0].Item.ID != 3 {
		t.Errorf("expected the identical item (id 3) ranked first, got %+v", matches)
	}
}

func TestFindMatchesSourceFailure(t *testing.T) {
	wantErr := errors.New("connection refused")
	finder := newTestFinder(&fakeSource{err: wantErr})

	target := model.Item{ID: 1, Title: "Lost keys", Status: model.ItemStatusLost}
	matches, err := finder.FindMatches(context.Background(), target, DefaultThreshold)
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected wrapped source error, got %v", err)
	}
	if matches != nil {
		t.Errorf("expected no partial matches on failure, got %v", matches)
	}
}
