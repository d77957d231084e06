package format

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
)

// CategoryLabel maps a catalog category slug to its display label.
// Unknown slugs pass through unchanged so new server-side categories still render.
func CategoryLabel(slug string) string {
	switch slug {
	case "electronics":
		return "Electronics"
	case "jewelery":
		return "Jewelry"
	case "men's clothing":
		return "Men's Clothing"
	case "women's clothing":
		return "Women's Clothing"
	default:
		return slug
	}
}

// CategoryTagClass returns the style token for a category badge.
func CategoryTagClass(slug string) string {
	switch slug {
	case "electronics":
		return "category-tag-electronics"
	case "jewelery":
		return "category-tag-jewelery"
	case "men's clothing":
		return "category-tag-mens"
	case "women's clothing":
		return "category-tag-womens"
	default:
		return "category-tag-neutral"
	}
}

const (
	starFull  = "★"
	starEmpty = "☆"
)

// Stars renders a five-slot star strip for an average rating in [0,5].
// Full stars = floor(rating); one more filled slot when the fraction reaches 0.5;
// the remainder is empty. Upstream ratings are trusted to be in range.
func Stars(rating float64) string {
	full := int(math.Floor(rating))
	half := 0
	if rating-math.Floor(rating) >= 0.5 {
		half = 1
	}
	empty := 5 - full - half
	var b strings.Builder
	for i := 0; i < full+half; i++ {
		b.WriteString(starFull)
	}
	for i := 0; i < empty; i++ {
		b.WriteString(starEmpty)
	}
	return b.String()
}

// Rating formats an average score with one decimal, e.g. "4.5".
func Rating(rate float64) string {
	return fmt.Sprintf("%.1f", rate)
}

// Price renders a price exactly as the catalog supplied it, dollar-prefixed.
// No rounding beyond source precision.
func Price(p decimal.Decimal) string {
	return "$" + p.String()
}
