package main

import (
	"context"
	"log"
	"net/http"
	"net/url"

	"swiftcart.dev/web/internal/catalog"
	handlersPkg "swiftcart.dev/web/internal/handlers"
	mw "swiftcart.dev/web/internal/middleware"
	"swiftcart.dev/web/internal/nav"
)

// HomeView bundles the landing page sections. Newsletter starts in its
// neutral state; submissions swap in the fragment rendered by
// NewsletterHandler.
type HomeView struct {
	Shop       ShopView
	Trending   TrendingView
	Newsletter NewsletterView
}

// HomeHandler renders the storefront landing page: cart badge first, then
// category filters, then the grid scoped to the category query parameter
// (unfiltered by default), then the trending strip. Each section
// is fetched in that order and fails in isolation; a broken section renders
// an inline error block while the rest of the page stays intact.
func HomeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sess := mw.GetSession(r)

	// honor the category pushed into the URL by the grid fragment
	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.CategoryAll
	}

	badge := badgeView(cartStore.Items(ctx, sess.ID))
	shop := buildShopView(ctx, category)

	trending := TrendingView{}
	if products, err := catalogClient.Products(ctx, catalog.CategoryAll); err != nil {
		log.Printf("home: trending fetch: %v", err)
		trending.Error = "Trending picks are unavailable right now."
	} else {
		trending = buildTrendingView(products)
	}

	vm := handlersPkg.PageData{
		Title:     "SwiftCart",
		Path:      r.URL.Path,
		Nav:       nav.Build(r.URL.Path),
		CSRFToken: sess.CSRFToken,
		Badge:     badge,
		Shop:      HomeView{Shop: shop, Trending: trending},
	}
	vm.SEO.Title = "SwiftCart – Shop the catalog"
	vm.SEO.Description = "Browse the SwiftCart catalog: electronics, jewelry, and clothing."
	vm.SEO.Canonical = absoluteURL(r)

	renderPage(w, r, vm)
}

// ShopGridFrag re-renders the filter bar and product grid scoped to one
// category. Selecting a filter hits this endpoint; the previous in-flight
// request is not cancelled, htmx simply swaps whichever response lands last.
func ShopGridFrag(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		category = catalog.CategoryAll
	}
	view := buildShopView(r.Context(), category)

	push := "/"
	if category != catalog.CategoryAll {
		push = "/?category=" + url.QueryEscape(category)
	}
	w.Header().Set("HX-Push-Url", push)
	renderTemplate(w, r, "frag_shop", view)
}

// buildShopView fetches categories and the scoped product list sequentially.
// Either fetch failing fills the matching error field; the other sub-section
// still renders.
func buildShopView(ctx context.Context, category string) ShopView {
	view := ShopView{Category: category}

	slugs, err := catalogClient.Categories(ctx)
	if err != nil {
		log.Printf("shop: categories fetch: %v", err)
		view.FiltersError = "Category filters failed to load."
	} else {
		view.Filters = buildCategoryFilters(slugs, category)
	}

	products, err := catalogClient.Products(ctx, category)
	if err != nil {
		log.Printf("shop: products fetch (%s): %v", category, err)
		view.GridError = "Products failed to load. Pick a category to try again."
	} else {
		view.Cards = buildProductCards(products)
	}
	return view
}

func absoluteURL(r *http.Request) string {
	scheme := "https"
	if r.TLS == nil {
		scheme = "http"
	}
	return scheme + "://" + r.Host + r.URL.Path
}
