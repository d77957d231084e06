package catalog

import (
	"sort"

	"github.com/shopspring/decimal"
)

// CategoryAll is the sentinel selection meaning the unfiltered catalog.
const CategoryAll = "all"

// Product is a catalog record as served by the remote API. Products are
// immutable once fetched; the cart copies the fields it needs at add time.
type Product struct {
	ID          int             `json:"id"`
	Title       string          `json:"title"`
	Price       decimal.Decimal `json:"price"`
	Category    string          `json:"category"`
	Image       string          `json:"image"`
	Description string          `json:"description"`
	Rating      Rating          `json:"rating"`
}

// Rating aggregates review data for a product.
type Rating struct {
	Rate  float64 `json:"rate"`
	Count int     `json:"count"`
}

// TopRated returns the n products with the highest average rating, descending.
// The sort is stable so catalog order breaks ties. When the catalog holds fewer
// than n products, all of them are returned.
func TopRated(products []Product, n int) []Product {
	if n <= 0 {
		return nil
	}
	ranked := make([]Product, len(products))
	copy(ranked, products)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Rating.Rate > ranked[j].Rating.Rate
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}
