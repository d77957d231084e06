package main

import (
	"swiftcart.dev/web/internal/catalog"
	"swiftcart.dev/web/internal/format"
)

const (
	gridTitleMax     = 40
	trendingTitleMax = 35
	trendingCount    = 3
)

// ShopView drives the category filter bar plus the product grid. The two
// sub-sections fail independently: a fetch error fills the matching Error
// field and the template renders an inline error block in its place.
type ShopView struct {
	Category     string
	Filters      []CategoryFilter
	FiltersError string
	Cards        []ProductCard
	GridError    string
}

// CategoryFilter is one filter control. Exactly one filter is active at a
// time; the "All" control represents the unfiltered catalog.
type CategoryFilter struct {
	Slug   string
	Label  string
	Active bool
}

// ProductCard is the grid card view model.
type ProductCard struct {
	ID            int
	Title         string
	Image         string
	FullTitle     string
	CategoryLabel string
	CategoryTag   string
	Stars         string
	RatingDisplay string
	ReviewCount   int
	PriceDisplay  string
}

// TrendingCard omits the review count and carries no per-product actions.
type TrendingCard struct {
	ID            int
	Title         string
	Image         string
	FullTitle     string
	CategoryLabel string
	CategoryTag   string
	Stars         string
	RatingDisplay string
	PriceDisplay  string
}

// TrendingView is the top-rated strip on the landing page.
type TrendingView struct {
	Cards []TrendingCard
	Error string
}

// ProductModalView is the detail overlay body.
type ProductModalView struct {
	ID            int
	Title         string
	Image         string
	Description   string
	CategoryLabel string
	CategoryTag   string
	Stars         string
	RatingDisplay string
	ReviewCount   int
	PriceDisplay  string
	Error         string
}

func buildProductCard(p catalog.Product) ProductCard {
	return ProductCard{
		ID:            p.ID,
		Title:         truncateTitle(p.Title, gridTitleMax),
		Image:         p.Image,
		FullTitle:     p.Title,
		CategoryLabel: format.CategoryLabel(p.Category),
		CategoryTag:   format.CategoryTagClass(p.Category),
		Stars:         format.Stars(p.Rating.Rate),
		RatingDisplay: format.Rating(p.Rating.Rate),
		ReviewCount:   p.Rating.Count,
		PriceDisplay:  format.Price(p.Price),
	}
}

func buildProductCards(products []catalog.Product) []ProductCard {
	cards := make([]ProductCard, 0, len(products))
	for _, p := range products {
		cards = append(cards, buildProductCard(p))
	}
	return cards
}

func buildTrendingView(products []catalog.Product) TrendingView {
	top := catalog.TopRated(products, trendingCount)
	cards := make([]TrendingCard, 0, len(top))
	for _, p := range top {
		cards = append(cards, TrendingCard{
			ID:            p.ID,
			Title:         truncateTitle(p.Title, trendingTitleMax),
			Image:         p.Image,
			FullTitle:     p.Title,
			CategoryLabel: format.CategoryLabel(p.Category),
			CategoryTag:   format.CategoryTagClass(p.Category),
			Stars:         format.Stars(p.Rating.Rate),
			RatingDisplay: format.Rating(p.Rating.Rate),
			PriceDisplay:  format.Price(p.Price),
		})
	}
	return TrendingView{Cards: cards}
}

func buildProductModalView(p catalog.Product) ProductModalView {
	return ProductModalView{
		ID:            p.ID,
		Title:         p.Title,
		Image:         p.Image,
		Description:   p.Description,
		CategoryLabel: format.CategoryLabel(p.Category),
		CategoryTag:   format.CategoryTagClass(p.Category),
		Stars:         format.Stars(p.Rating.Rate),
		RatingDisplay: format.Rating(p.Rating.Rate),
		ReviewCount:   p.Rating.Count,
		PriceDisplay:  format.Price(p.Price),
	}
}

// buildCategoryFilters prepends the explicit "All" control; the active flag
// lands on exactly one control.
func buildCategoryFilters(slugs []string, active string) []CategoryFilter {
	if active == "" {
		active = catalog.CategoryAll
	}
	filters := make([]CategoryFilter, 0, len(slugs)+1)
	filters = append(filters, CategoryFilter{
		Slug:   catalog.CategoryAll,
		Label:  "All",
		Active: active == catalog.CategoryAll,
	})
	for _, slug := range slugs {
		filters = append(filters, CategoryFilter{
			Slug:   slug,
			Label:  format.CategoryLabel(slug),
			Active: slug == active,
		})
	}
	return filters
}

// truncateTitle caps a title at max runes, appending an ellipsis marker when
// anything was cut.
func truncateTitle(title string, max int) string {
	runes := []rune(title)
	if len(runes) <= max {
		return title
	}
	return string(runes[:max]) + "..."
}
