package handlers

import (
	"swiftcart.dev/web/internal/nav"
)

// PageData is the generic view model for pages using the shared layout.
type PageData struct {
	Title     string
	Path      string
	Nav       []nav.RenderedItem
	SEO       SEOData
	CSRFToken string

	// cart badge state, restored from the persisted cart on every page render
	Badge CartBadge

	// Optional per-page view model payloads
	Shop    any
	Content any
}

// CartBadge drives the header cart counter; hidden while the cart is empty.
type CartBadge struct {
	Count   int
	Visible bool
}

// SEOData holds head metadata for the base layout.
type SEOData struct {
	Title       string
	Description string
	Canonical   string
}
