package main

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"swiftcart.dev/web/internal/catalog"
)

// ProductModalFrag renders the product detail overlay body. Errors render an
// inline modal error so the overlay never hangs in a loading state.
func ProductModalFrag(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "productID"))
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}

	p, err := catalogClient.Product(r.Context(), id)
	if err != nil {
		view := ProductModalView{ID: id}
		if errors.Is(err, catalog.ErrNotFound) {
			view.Error = "This product is no longer in the catalog."
		} else {
			log.Printf("modal: product %d fetch: %v", id, err)
			view.Error = "Product details failed to load. Close and try again."
		}
		renderTemplate(w, r, "frag_product_modal", view)
		return
	}

	renderTemplate(w, r, "frag_product_modal", buildProductModalView(p))
}
