package cart

import (
	"context"
	"encoding/json"
	"reflect"
	"testing"

	"github.com/shopspring/decimal"

	"swiftcart.dev/web/internal/catalog"
)

func product(id int, title string, price string) catalog.Product {
	p, _ := decimal.NewFromString(price)
	return catalog.Product{
		ID:       id,
		Title:    title,
		Price:    p,
		Category: "electronics",
		Image:    "https://img/" + title,
		Rating:   catalog.Rating{Rate: 4.1, Count: 12},
	}
}

func TestAddMergesSameProduct(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()

	if _, err := s.Add(ctx, "sess", product(7, "drive", "64"), 1); err != nil {
		t.Fatalf("add: %v", err)
	}
	items, err := s.Add(ctx, "sess", product(7, "drive", "64"), 2)
	if err != nil {
		t.Fatalf("add again: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected single line, got %d", len(items))
	}
	if items[0].Qty != 3 {
		t.Fatalf("expected qty 3, got %d", items[0].Qty)
	}
}

func TestAddKeepsInsertionOrder(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()

	_, _ = s.Add(ctx, "sess", product(2, "bracelet", "695"), 1)
	_, _ = s.Add(ctx, "sess", product(1, "backpack", "109.95"), 2)
	_, _ = s.Add(ctx, "sess", product(2, "bracelet", "695"), 1)

	items := s.Items(ctx, "sess")
	if len(items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(items))
	}
	if items[0].ProductID != 2 || items[1].ProductID != 1 {
		t.Fatalf("order not preserved: %d, %d", items[0].ProductID, items[1].ProductID)
	}
	if got := TotalQuantity(items); got != 4 {
		t.Fatalf("total quantity = %d, want 4", got)
	}
}

func TestAddSnapshotsProduct(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()
	_, _ = s.Add(ctx, "sess", product(1, "backpack", "109.95"), 1)

	items := s.Items(ctx, "sess")
	if items[0].Title != "backpack" || items[0].Price.String() != "109.95" {
		t.Fatalf("snapshot lost fields: %+v", items[0])
	}
	if items[0].Rating.Count != 12 {
		t.Fatalf("rating not copied: %+v", items[0].Rating)
	}
}

func TestCartsAreIsolatedByKey(t *testing.T) {
	s := NewStore(NewMemoryBackend())
	ctx := context.Background()
	_, _ = s.Add(ctx, "a", product(1, "backpack", "109.95"), 1)
	_, _ = s.Add(ctx, "b", product(2, "bracelet", "695"), 5)

	if got := TotalQuantity(s.Items(ctx, "a")); got != 1 {
		t.Fatalf("cart a total = %d, want 1", got)
	}
	if got := TotalQuantity(s.Items(ctx, "b")); got != 5 {
		t.Fatalf("cart b total = %d, want 5", got)
	}
}

func TestTotalQuantityEmpty(t *testing.T) {
	if got := TotalQuantity(nil); got != 0 {
		t.Fatalf("empty cart total = %d, want 0", got)
	}
}

func TestItemsRoundTrip(t *testing.T) {
	in := []Item{
		{ProductID: 1, Title: "backpack", Price: decimal.RequireFromString("109.95"), Qty: 2},
		{ProductID: 2, Title: "bracelet", Price: decimal.RequireFromString("695"), Qty: 1},
	}
	raw, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	var out []Item
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(in, out) {
		t.Fatalf("round trip mismatch:\n in: %+v\nout: %+v", in, out)
	}
}

func TestCorruptStoredCartLoadsEmpty(t *testing.T) {
	if got := decodeItems([]byte("{broken")); got != nil {
		t.Fatalf("expected nil for corrupt payload, got %v", got)
	}
	if got := decodeItems(nil); got != nil {
		t.Fatalf("expected nil for missing payload, got %v", got)
	}
}

func TestFileBackendRoundTrip(t *testing.T) {
	b, err := NewFileBackend(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	s := NewStore(b)
	ctx := context.Background()
	if _, err := s.Add(ctx, "sess/with:odd chars", product(3, "drive", "64"), 2); err != nil {
		t.Fatalf("add: %v", err)
	}
	items := s.Items(ctx, "sess/with:odd chars")
	if len(items) != 1 || items[0].Qty != 2 {
		t.Fatalf("file round trip failed: %+v", items)
	}
}
