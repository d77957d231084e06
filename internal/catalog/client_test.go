package catalog

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
)

const fakeCatalogJSON = `[
  {"id":1,"title":"Backpack","price":109.95,"category":"men's clothing","image":"https://img/1.jpg","description":"Fits 15in laptops","rating":{"rate":3.9,"count":120}},
  {"id":2,"title":"Bracelet","price":695,"category":"jewelery","image":"https://img/2.jpg","description":"Dragon station chain","rating":{"rate":4.6,"count":400}},
  {"id":3,"title":"Hard Drive","price":64,"category":"electronics","image":"https://img/3.jpg","description":"USB 3.0 external","rating":{"rate":3.3,"count":203}}
]`

func newFakeCatalog(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/products/categories", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`["electronics","jewelery","men's clothing","women's clothing"]`))
	})
	mux.HandleFunc("/products/category/jewelery", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":2,"title":"Bracelet","price":695,"category":"jewelery","image":"https://img/2.jpg","description":"Dragon station chain","rating":{"rate":4.6,"count":400}}]`))
	})
	mux.HandleFunc("/products/2", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":2,"title":"Bracelet","price":695,"category":"jewelery","image":"https://img/2.jpg","description":"Dragon station chain","rating":{"rate":4.6,"count":400}}`))
	})
	mux.HandleFunc("/products/999", func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	})
	mux.HandleFunc("/products/1000", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`null`))
	})
	mux.HandleFunc("/products", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(fakeCatalogJSON))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCategories(t *testing.T) {
	srv := newFakeCatalog(t)
	c := NewClient(srv.URL)
	got, err := c.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(got) != 4 || got[0] != "electronics" || got[3] != "women's clothing" {
		t.Fatalf("unexpected categories: %v", got)
	}
}

func TestProductsAll(t *testing.T) {
	srv := newFakeCatalog(t)
	c := NewClient(srv.URL)
	got, err := c.Products(context.Background(), CategoryAll)
	if err != nil {
		t.Fatalf("Products(all): %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("expected 3 products, got %d", len(got))
	}
	if got[0].Price.String() != "109.95" {
		t.Fatalf("price lost precision: %s", got[0].Price)
	}
	if got[1].Rating.Count != 400 {
		t.Fatalf("rating count = %d, want 400", got[1].Rating.Count)
	}
}

func TestProductsByCategory(t *testing.T) {
	srv := newFakeCatalog(t)
	c := NewClient(srv.URL)
	got, err := c.Products(context.Background(), "jewelery")
	if err != nil {
		t.Fatalf("Products(jewelery): %v", err)
	}
	if len(got) != 1 || got[0].Category != "jewelery" {
		t.Fatalf("unexpected scoped products: %+v", got)
	}
}

func TestProductByID(t *testing.T) {
	srv := newFakeCatalog(t)
	c := NewClient(srv.URL)
	got, err := c.Product(context.Background(), 2)
	if err != nil {
		t.Fatalf("Product(2): %v", err)
	}
	if got.ID != 2 || got.Title != "Bracelet" {
		t.Fatalf("unexpected product: %+v", got)
	}
}

func TestProductNotFound(t *testing.T) {
	srv := newFakeCatalog(t)
	c := NewClient(srv.URL)
	if _, err := c.Product(context.Background(), 999); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for 404 upstream, got %v", err)
	}
	// The demo API answers some unknown IDs with a literal null body.
	if _, err := c.Product(context.Background(), 1000); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for null body, got %v", err)
	}
}

func TestServerErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()
	c := NewClient(srv.URL)
	if _, err := c.Products(context.Background(), CategoryAll); err == nil {
		t.Fatal("expected error for 502 upstream")
	}
}

func TestMalformedBodySurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not":"a list"`))
	}))
	defer srv.Close()
	c := NewClient(srv.URL)
	if _, err := c.Categories(context.Background()); err == nil {
		t.Fatal("expected decode error for malformed body")
	}
}

func TestTopRated(t *testing.T) {
	rates := []float64{4.8, 3.0, 4.9, 4.8, 2.0}
	products := make([]Product, len(rates))
	for i, r := range rates {
		products[i] = Product{ID: i + 1, Rating: Rating{Rate: r}}
	}
	top := TopRated(products, 3)
	if len(top) != 3 {
		t.Fatalf("expected 3, got %d", len(top))
	}
	// 4.9 first, then the two 4.8s in catalog order.
	if top[0].ID != 3 || top[1].ID != 1 || top[2].ID != 4 {
		t.Fatalf("unexpected order: %d %d %d", top[0].ID, top[1].ID, top[2].ID)
	}
	// The input slice keeps its original order.
	if products[0].ID != 1 || products[2].ID != 3 {
		t.Fatal("TopRated mutated its input")
	}
}

func TestTopRatedShortCatalog(t *testing.T) {
	products := []Product{{ID: 1}, {ID: 2}}
	if got := TopRated(products, 3); len(got) != 2 {
		t.Fatalf("expected all products for short catalog, got %d", len(got))
	}
}
