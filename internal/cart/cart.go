package cart

import (
	"context"
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"swiftcart.dev/web/internal/catalog"
)

// Item is one cart line: a snapshot of the product at the time it was added
// plus a quantity. A later catalog change never rewrites existing lines.
type Item struct {
	ProductID   int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Rating      catalog.Rating  `json:"rating"`
	Qty         int             `json:"qty"`
}

// Store keeps one ordered item list per cart key, mirrored to the backend on
// every mutation. Keys are session identifiers; each key holds the full
// serialized list and is overwritten wholesale.
type Store struct {
	backend Backend

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewStore wraps a persistence backend.
func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		locks:   map[string]*sync.Mutex{},
	}
}

// Add merges qty units of product into the cart at key. An item with the same
// product identifier has its quantity incremented; otherwise the product is
// appended, preserving insertion order. The whole list is saved back before
// returning.
func (s *Store) Add(ctx context.Context, key string, p catalog.Product, qty int) ([]Item, error) {
	if qty < 1 {
		qty = 1
	}
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()

	items := s.load(ctx, key)
	merged := false
	for i := range items {
		if items[i].ProductID == p.ID {
			items[i].Qty += qty
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, Item{
			ProductID:   p.ID,
			Title:       p.Title,
			Price:       p.Price,
			Category:    p.Category,
			Image:       p.Image,
			Description: p.Description,
			Rating:      p.Rating,
			Qty:         qty,
		})
	}
	if err := s.backend.Save(ctx, key, items); err != nil {
		return nil, fmt.Errorf("cart: save %q: %w", key, err)
	}
	return items, nil
}

// Items returns the cart at key in insertion order. Missing or unreadable
// stored data counts as an empty cart, never an error.
func (s *Store) Items(ctx context.Context, key string) []Item {
	lock := s.keyLock(key)
	lock.Lock()
	defer lock.Unlock()
	return s.load(ctx, key)
}

func (s *Store) load(ctx context.Context, key string) []Item {
	items, err := s.backend.Load(ctx, key)
	if err != nil {
		return nil
	}
	return items
}

func (s *Store) keyLock(key string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok := s.locks[key]; ok {
		return l
	}
	l := &sync.Mutex{}
	s.locks[key] = l
	return l
}

// TotalQuantity sums quantities across all lines; 0 for an empty cart.
func TotalQuantity(items []Item) int {
	total := 0
	for _, it := range items {
		total += it.Qty
	}
	return total
}
