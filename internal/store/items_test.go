package store

import (
	"context"
	"testing"
	"time"

	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/model"
)

func testFields(title, location string) ItemFields {
	return ItemFields{
		Title:        title,
		Status:       model.ItemStatusLost,
		Location:     location,
		ContactEmail: "someone@example.com",
	}
}

func TestCreateAndGetItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, ItemFields{
		Title:        "Red Wallet",
		Location:     "Library",
		Description:  "Leather, slightly worn",
		ContactName:  "Ana",
		ContactEmail: "a@x.com",
		ImageURL:     "https://example.com/wallet.jpg",
	}, nil, "a@x.com")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.ID == "" {
		t.Fatal("expected store-assigned id")
	}
	if item.Status != model.ItemStatusLost {
		t.Errorf("expected default status 'lost', got %q", item.Status)
	}
	if !item.CreatedAt.Equal(item.UpdatedAt) {
		t.Errorf("expected created_at == updated_at, got %v and %v", item.CreatedAt, item.UpdatedAt)
	}
	if item.OwnerID != nil {
		t.Errorf("expected anonymous item, got owner %q", *item.OwnerID)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got == nil {
		t.Fatal("expected item, got nil")
	}
	if got.Title != "Red Wallet" || got.Location != "Library" || got.ContactEmail != "a@x.com" {
		t.Errorf("fields don't round-trip: %+v", got)
	}
	if got.Description != "Leather, slightly worn" || got.ContactName != "Ana" {
		t.Errorf("optional fields don't round-trip: %+v", got)
	}
}

func TestCreateItemInvalidStatusDefaults(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	fields := testFields("Umbrella", "Bus stop")
	fields.Status = "archived"
	item, err := CreateItem(ctx, database, fields, nil, "someone@example.com")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if item.Status != model.ItemStatusLost {
		t.Errorf("expected invalid status to fall back to 'lost', got %q", item.Status)
	}
}

func TestGetItemMalformedID(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	_, err := GetItem(ctx, database, "not-a-uuid")
	if err != ErrInvalidID {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}

	// A well-formed but unknown id is not-found, not an error.
	item, err := GetItem(ctx, database, "00000000-0000-4000-8000-000000000000")
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if item != nil {
		t.Errorf("expected nil for unknown id, got %+v", item)
	}
}

func TestListRecentItemsOrder(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	titles := []string{"First", "Second", "Third"}
	for _, title := range titles {
		if _, err := CreateItem(ctx, database, testFields(title, "Park"), nil, "someone@example.com"); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	items, err := ListRecentItems(ctx, database, 2)
	if err != nil {
		t.Fatalf("ListRecentItems: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(items))
	}
	if items[0].Title != "Third" || items[1].Title != "Second" {
		t.Errorf("expected newest first, got %q then %q", items[0].Title, items[1].Title)
	}
}

func TestSearchItems(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	backpack := testFields("Blue Backpack", "Train station")
	backpack.Description = "Has a laptop inside"
	if _, err := CreateItem(ctx, database, backpack, nil, "someone@example.com"); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	time.Sleep(2 * time.Millisecond)

	keys := testFields("Keys", "Backpacker hostel")
	keys.Status = model.ItemStatusFound
	if _, err := CreateItem(ctx, database, keys, nil, "someone@example.com"); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	// Case-insensitive substring match on title.
	for _, q := range []string{"backpack", "BACKPACK", "Backp"} {
		items, err := SearchItems(ctx, database, q, "", 25)
		if err != nil {
			t.Fatalf("SearchItems(%q): %v", q, err)
		}
		if len(items) != 2 {
			t.Errorf("query %q: expected 2 items (title and location match), got %d", q, len(items))
		}
	}

	// Match in description only.
	items, err := SearchItems(ctx, database, "laptop", "", 25)
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Blue Backpack" {
		t.Errorf("expected only the backpack, got %+v", items)
	}

	// Status filter alone.
	items, err = SearchItems(ctx, database, "", model.ItemStatusFound, 25)
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Keys" {
		t.Errorf("expected only the keys, got %+v", items)
	}

	// Query AND status.
	items, err = SearchItems(ctx, database, "backpack", model.ItemStatusLost, 25)
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(items) != 1 || items[0].Title != "Blue Backpack" {
		t.Errorf("expected only the lost backpack, got %+v", items)
	}

	// No match.
	items, err = SearchItems(ctx, database, "bicycle", "", 25)
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(items) != 0 {
		t.Errorf("expected no items, got %+v", items)
	}
}

func TestSearchItemsEmptyEqualsRecent(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	for _, title := range []string{"A", "B", "C"} {
		if _, err := CreateItem(ctx, database, testFields(title, "Square"), nil, "someone@example.com"); err != nil {
			t.Fatalf("CreateItem: %v", err)
		}
		time.Sleep(2 * time.Millisecond)
	}

	searched, err := SearchItems(ctx, database, "", "", 25)
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	recent, err := ListRecentItems(ctx, database, 25)
	if err != nil {
		t.Fatalf("ListRecentItems: %v", err)
	}

	if len(searched) != len(recent) {
		t.Fatalf("expected same length, got %d and %d", len(searched), len(recent))
	}
	for i := range searched {
		if searched[i].ID != recent[i].ID {
			t.Errorf("position %d differs: %q vs %q", i, searched[i].Title, recent[i].Title)
		}
	}
}

func TestSearchItemsLiteralWildcards(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreateItem(ctx, database, testFields("100% cotton scarf", "Cafe"), nil, "someone@example.com"); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}
	if _, err := CreateItem(ctx, database, testFields("1000 piece puzzle", "Cafe"), nil, "someone@example.com"); err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	items, err := SearchItems(ctx, database, "100%", "", 25)
	if err != nil {
		t.Fatalf("SearchItems: %v", err)
	}
	if len(items) != 1 || items[0].Title != "100% cotton scarf" {
		t.Errorf("expected LIKE metacharacters to match literally, got %+v", items)
	}
}

func TestUpdateItem(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	item, err := CreateItem(ctx, database, testFields("Gloves", "Tram"), nil, "someone@example.com")
	if err != nil {
		t.Fatalf("CreateItem: %v", err)
	}

	time.Sleep(2 * time.Millisecond)

	updated := testFields("Wool Gloves", "Tram line 2")
	updated.Status = model.ItemStatusFound
	if err := UpdateItem(ctx, database, item.ID, updated); err != nil {
		t.Fatalf("UpdateItem: %v", err)
	}

	got, err := GetItem(ctx, database, item.ID)
	if err != nil {
		t.Fatalf("GetItem: %v", err)
	}
	if got.Title != "Wool Gloves" || got.Location != "Tram line 2" || got.Status != model.ItemStatusFound {
		t.Errorf("fields not updated: %+v", got)
	}
	if !got.CreatedAt.Equal(item.CreatedAt) {
		t.Errorf("created_at changed on update: %v -> %v", item.CreatedAt, got.CreatedAt)
	}
	if !got.UpdatedAt.After(got.CreatedAt) {
		t.Errorf("expected updated_at to strictly increase, got %v <= %v", got.UpdatedAt, got.CreatedAt)
	}
}

func TestUpdateItemNotFound(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	err := UpdateItem(ctx, database, "00000000-0000-4000-8000-000000000000", testFields("X", "Y"))
	if err != ErrNotFound {
		t.Errorf("expected ErrNotFound, got %v", err)
	}

	err = UpdateItem(ctx, database, "garbage", testFields("X", "Y"))
	if err != ErrInvalidID {
		t.Errorf("expected ErrInvalidID, got %v", err)
	}
}
