package store

import (
	"context"
	"testing"

	"github.com/foundit/foundit/internal/db"
	"github.com/foundit/foundit/internal/model"
)

func TestSaveAndListMatches(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item1, _ := CreateItem(ctx, database, model.Item{Title: "Lost Phone", Status: model.ItemStatusLost})
	item2, _ := CreateItem(ctx, database, model.Item{Title: "Found Phone", Status: model.ItemStatusFound})

	id, err := SaveMatch(ctx, database, model.ItemMatch{
		Item1ID: item1.ID, Item2ID: item2.ID,
		SimilarityScore: 0.85, MatchType: model.MatchTypeExact,
	})
	if err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}
	if id == 0 {
		t.Error("expected non-zero match id")
	}

	matches, err := ListMatches(ctx, database)
	if err != nil {
		t.Fatalf("ListMatches: %v", err)
	}
	if len(matches) != 1 {
		t.Fatalf("expected 1 match, got %d", len(matches))
	}
	if matches[0].Item1Title != "Lost Phone" || matches[0].Item2Title != "Found Phone" {
		t.Errorf("expected joined titles, got %q / %q", matches[0].Item1Title, matches[0].Item2Title)
	}
}

func TestMatchPairExists(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item1, _ := CreateItem(ctx, database, model.Item{Title: "A", Status: model.ItemStatusLost})
	item2, _ := CreateItem(ctx, database, model.Item{Title: "B", Status: model.ItemStatusFound})
	SaveMatch(ctx, database, model.ItemMatch{
		Item1ID: item1.ID, Item2ID: item2.ID,
		SimilarityScore: 0.7, MatchType: model.MatchTypeSimilar,
	})

	exists, err := MatchPairExists(ctx, database, item1.ID, item2.ID)
	if err != nil {
		t.Fatalf("MatchPairExists: %v", err)
	}
	if !exists {
		t.Error("expected pair to exist")
	}

	// Reversed orientation counts as the same pair.
	reversed, _ := MatchPairExists(ctx, database, item2.ID, item1.ID)
	if !reversed {
		t.Error("expected reversed pair to exist")
	}

	missing, _ := MatchPairExists(ctx, database, item1.ID, 9999)
	if missing {
		t.Error("expected missing pair to not exist")
	}
}

func TestMatchWriterDedup(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item1, _ := CreateItem(ctx, database, model.Item{Title: "A", Status: model.ItemStatusLost})
	item2, _ := CreateItem(ctx, database, model.Item{Title: "B", Status: model.ItemStatusFound})

	m := model.ItemMatch{
		Item1ID: item1.ID, Item2ID: item2.ID,
		SimilarityScore: 0.7, MatchType: model.MatchTypeSimilar,
	}

	// Without dedup every save appends a row.
	plain := &MatchWriter{DB: database}
	plain.SaveMatch(ctx, m)
	plain.SaveMatch(ctx, m)
	count, _ := CountMatches(ctx, database, "")
	if count != 2 {
		t.Errorf("expected 2 appended rows, got %d", count)
	}

	// With dedup repeat saves of the same pair are skipped.
	deduping := &MatchWriter{DB: database, Dedup: true}
	if _, err := deduping.SaveMatch(ctx, m); err != nil {
		t.Fatalf("SaveMatch: %v", err)
	}
	count, _ = CountMatches(ctx, database, "")
	if count != 2 {
		t.Errorf("expected dedup to skip existing pair, got %d rows", count)
	}
}

func TestListMatchesForItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item1, _ := CreateItem(ctx, database, model.Item{Title: "A", Status: model.ItemStatusLost})
	item2, _ := CreateItem(ctx, database, model.Item{Title: "B", Status: model.ItemStatusFound})
	item3, _ := CreateItem(ctx, database, model.Item{Title: "C", Status: model.ItemStatusFound})

	SaveMatch(ctx, database, model.ItemMatch{
		Item1ID: item1.ID, Item2ID: item2.ID,
		SimilarityScore: 0.6, MatchType: model.MatchTypePotential,
	})
	SaveMatch(ctx, database, model.ItemMatch{
		Item1ID: item3.ID, Item2ID: item1.ID,
		SimilarityScore: 0.9, MatchType: model.MatchTypeExact,
	})
	SaveMatch(ctx, database, model.ItemMatch{
		Item1ID: item2.ID, Item2ID: item3.ID,
		SimilarityScore: 0.7, MatchType: model.MatchTypeSimilar,
	})

	matches, err := ListMatchesForItem(ctx, database, item1.ID)
	if err != nil {
		t.Fatalf("ListMatchesForItem: %v", err)
	}
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches for item, got %d", len(matches))
	}
	// Highest score first.
	if matches[0].SimilarityScore < matches[1].SimilarityScore {
		t.Error("expected matches sorted by score descending")
	}
}

func TestMarkMatchNotified(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item1, _ := CreateItem(ctx, database, model.Item{Title: "A", Status: model.ItemStatusLost})
	item2, _ := CreateItem(ctx, database, model.Item{Title: "B", Status: model.ItemStatusFound})
	id, _ := SaveMatch(ctx, database, model.ItemMatch{
		Item1ID: item1.ID, Item2ID: item2.ID,
		SimilarityScore: 0.7, MatchType: model.MatchTypeSimilar,
	})

	if err := MarkMatchNotified(ctx, database, id); err != nil {
		t.Fatalf("MarkMatchNotified: %v", err)
	}

	matches, _ := ListMatches(ctx, database)
	if !matches[0].IsNotified {
		t.Error("expected match to be marked notified")
	}
}
