package store

import (
	"context"
	"testing"

	"github.com/foundit/foundit/internal/db"
)

func TestSeedCategoriesIdempotent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if err := SeedCategories(ctx, database); err != nil {
		t.Fatalf("SeedCategories: %v", err)
	}
	first, _ := ListCategories(ctx, database)
	if len(first) == 0 {
		t.Fatal("expected seeded categories")
	}

	// Seeding again must not duplicate.
	if err := SeedCategories(ctx, database); err != nil {
		t.Fatalf("SeedCategories (second run): %v", err)
	}
	second, _ := ListCategories(ctx, database)
	if len(second) != len(first) {
		t.Errorf("expected %d categories after reseed, got %d", len(first), len(second))
	}
}

func TestCategoryCRUD(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	cat, err := CreateCategory(ctx, database, "Electronics", "Phones and laptops", "fa-laptop", "#3498db")
	if err != nil {
		t.Fatalf("CreateCategory: %v", err)
	}

	if err := UpdateCategory(ctx, database, cat.ID, "Gadgets", "", "fa-mobile", "#2ecc71"); err != nil {
		t.Fatalf("UpdateCategory: %v", err)
	}
	got, _ := GetCategory(ctx, database, cat.ID)
	if got.Name != "Gadgets" {
		t.Errorf("expected updated name, got %q", got.Name)
	}

	if err := DeleteCategory(ctx, database, cat.ID); err != nil {
		t.Fatalf("DeleteCategory: %v", err)
	}
	gone, _ := GetCategory(ctx, database, cat.ID)
	if gone != nil {
		t.Error("expected category to be deleted")
	}
}
