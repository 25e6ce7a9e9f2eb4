package store

import (
	"context"
	"strings"
	"testing"

	"github.com/foundit/foundit/internal/db"
	"github.com/foundit/foundit/internal/model"
)

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, model.Item{
		Title:       "Blue Backpack",
		Description: "Nike backpack with laptop compartment",
		Status:      model.ItemStatusFound,
		Location:    "Main Hall",
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Title != "Blue Backpack" {
		t.Errorf("expected title 'Blue Backpack', got %q", item.Title)
	}
	if item.Status != model.ItemStatusFound {
		t.Errorf("expected status 'found', got %q", item.Status)
	}
	if item.Approved {
		t.Error("expected new item to be unapproved")
	}
}

func TestCreateItemExtractsKeywords(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, model.Item{
		Title:       "Silver Watch",
		Description: "Found a silver watch near the gym",
		Status:      model.ItemStatusFound,
	})
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	keywords := item.KeywordList()
	if len(keywords) == 0 {
		t.Fatal("expected keywords to be extracted")
	}
	joined := strings.Join(keywords, ",")
	for _, want := range []string{"silver", "watch", "gym"} {
		if !strings.Contains(joined, want) {
			t.Errorf("expected keywords to contain %q, got %q", want, joined)
		}
	}
	// Stop words never survive extraction.
	for _, kw := range keywords {
		if kw == "the" || kw == "a" {
			t.Errorf("expected stop word %q to be filtered", kw)
		}
	}
}

func TestUpdateItemRecomputesKeywords(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, model.Item{
		Title:  "Red Umbrella",
		Status: model.ItemStatusFound,
	})

	item.Title = "Green Scarf"
	item.Description = "Wool scarf"
	if err := UpdateItem(ctx, database, *item); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if strings.Contains(got.Keywords, "umbrella") {
		t.Errorf("expected old keywords to be replaced, got %q", got.Keywords)
	}
	if !strings.Contains(got.Keywords, "scarf") {
		t.Errorf("expected new keywords, got %q", got.Keywords)
	}
}

func TestListItemsFilters(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	approved, _ := CreateItem(ctx, database, model.Item{
		Title: "Approved Phone", Status: model.ItemStatusFound,
	})
	SetItemApproval(ctx, database, approved.ID, true)
	CreateItem(ctx, database, model.Item{
		Title: "Pending Wallet", Status: model.ItemStatusFound,
	})
	CreateItem(ctx, database, model.Item{
		Title: "Lost Keys", Status: model.ItemStatusLost,
	})

	all, err := ListItems(ctx, database, ItemFilter{})
	if err != nil {
		t.Fatalf("ListItems: %v", err)
	}
	if len(all) != 3 {
		t.Errorf("expected 3 items, got %d", len(all))
	}

	found, _ := ListItems(ctx, database, ItemFilter{Status: model.ItemStatusFound})
	if len(found) != 2 {
		t.Errorf("expected 2 found items, got %d", len(found))
	}

	approvedOnly, _ := ListItems(ctx, database, ItemFilter{ApprovedOnly: true})
	if len(approvedOnly) != 1 {
		t.Errorf("expected 1 approved item, got %d", len(approvedOnly))
	}

	search, _ := ListItems(ctx, database, ItemFilter{Search: "wallet"})
	if len(search) != 1 || search[0].Title != "Pending Wallet" {
		t.Errorf("expected search to find the wallet, got %v", search)
	}
}

func TestSetItemStatus(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, model.Item{
		Title: "Headphones", Status: model.ItemStatusFound,
	})
	if err := SetItemStatus(ctx, database, item.ID, model.ItemStatusClaimed); err != nil {
		t.Fatalf("SetItemStatus: %v", err)
	}

	got, _ := GetItem(ctx, database, item.ID)
	if got.Status != model.ItemStatusClaimed {
		t.Errorf("expected status 'claimed', got %q", got.Status)
	}
}

func TestDeleteItemCascades(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item1, _ := CreateItem(ctx, database, model.Item{Title: "One", Status: model.ItemStatusLost})
	item2, _ := CreateItem(ctx, database, model.Item{Title: "Two", Status: model.ItemStatusFound})
	SaveMatch(ctx, database, model.ItemMatch{
		Item1ID: item1.ID, Item2ID: item2.ID,
		SimilarityScore: 0.7, MatchType: model.MatchTypeSimilar,
	})
	CreateClaim(ctx, database, model.Claim{
		ItemID: item1.ID, Name: "Alice", Email: "alice@example.com",
	})

	if err := DeleteItem(ctx, database, item1.ID); err != nil {
		t.Fatalf("DeleteItem: %v", err)
	}

	got, _ := GetItem(ctx, database, item1.ID)
	if got != nil {
		t.Error("expected item to be gone")
	}
	matches, _ := ListMatches(ctx, database)
	if len(matches) != 0 {
		t.Errorf("expected 0 matches after delete, got %d", len(matches))
	}
	claims, _ := ListClaims(ctx, database, "")
	if len(claims) != 0 {
		t.Errorf("expected 0 claims after delete, got %d", len(claims))
	}
}

func TestItemImage(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, _ := CreateItem(ctx, database, model.Item{Title: "Photo Item", Status: model.ItemStatusFound})
	imageData := []byte("fake image data")
	SetItemImage(ctx, database, item.ID, imageData, "image/jpeg")

	data, mime, err := GetItemImage(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItemImage: %v", err)
	}
	if string(data) != "fake image data" {
		t.Errorf("expected image data, got %q", string(data))
	}
	if mime != "image/jpeg" {
		t.Errorf("expected mime 'image/jpeg', got %q", mime)
	}
}
