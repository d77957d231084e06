package main

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"strconv"

	"swiftcart.dev/web/internal/cart"
	"swiftcart.dev/web/internal/catalog"
	handlersPkg "swiftcart.dev/web/internal/handlers"
	mw "swiftcart.dev/web/internal/middleware"
)

func badgeView(items []cart.Item) handlersPkg.CartBadge {
	count := cart.TotalQuantity(items)
	return handlersPkg.CartBadge{Count: count, Visible: count > 0}
}

// CartBadgeFrag renders the current badge for the session cart.
func CartBadgeFrag(w http.ResponseWriter, r *http.Request) {
	sess := mw.GetSession(r)
	items := cartStore.Items(r.Context(), sess.ID)
	renderTemplate(w, r, "frag_cart_badge", badgeView(items))
}

// CartAddHandler adds units of a product to the session cart. The product is
// fetched fresh from the catalog so the cart snapshots current data; grid
// Add, modal Add to Cart, and modal Buy Now all post here.
func CartAddHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}
	id, err := strconv.Atoi(r.FormValue("product_id"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	qty := 1
	if raw := r.FormValue("qty"); raw != "" {
		if q, err := strconv.Atoi(raw); err == nil && q > 0 {
			qty = q
		}
	}

	ctx := r.Context()
	sess := mw.GetSession(r)

	p, err := catalogClient.Product(ctx, id)
	if err != nil {
		msg := "Couldn't add that product. Try again."
		if errors.Is(err, catalog.ErrNotFound) {
			msg = "That product is no longer in the catalog."
		} else {
			log.Printf("cart: product %d fetch: %v", id, err)
		}
		triggerEvent(w, map[string]any{"cart:error": msg})
		renderTemplate(w, r, "frag_cart_badge", badgeView(cartStore.Items(ctx, sess.ID)))
		return
	}

	items, err := cartStore.Add(ctx, sess.ID, p, qty)
	if err != nil {
		log.Printf("cart: add product %d: %v", id, err)
		http.Error(w, "cart unavailable", http.StatusInternalServerError)
		return
	}

	view := badgeView(items)
	triggerEvent(w, map[string]any{
		"cart:updated": map[string]int{"count": view.Count},
		"modal:close":  struct{}{},
	})
	renderTemplate(w, r, "frag_cart_badge", view)
}

func triggerEvent(w http.ResponseWriter, payload map[string]any) {
	if raw, err := json.Marshal(payload); err == nil {
		w.Header().Set("HX-Trigger", string(raw))
	}
}
