package main

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"swiftcart.dev/web/internal/content"
	handlersPkg "swiftcart.dev/web/internal/handlers"
	mw "swiftcart.dev/web/internal/middleware"
	"swiftcart.dev/web/internal/nav"
)

// ContentPageHandler serves static markdown pages (about, shipping FAQ) with
// conditional-request support.
func ContentPageHandler(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	page, err := contentStore.Get(slug)
	if err != nil {
		if errors.Is(err, content.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		log.Printf("content: %s: %v", slug, err)
		http.Error(w, "page unavailable", http.StatusInternalServerError)
		return
	}

	etag := contentETag(page)
	w.Header().Set("Cache-Control", "public, max-age=600")
	w.Header().Set("ETag", etag)
	if !page.UpdatedAt.IsZero() {
		w.Header().Set("Last-Modified", page.UpdatedAt.UTC().Format(http.TimeFormat))
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}

	sess := mw.GetSession(r)
	vm := handlersPkg.PageData{
		Title:     page.Title,
		Path:      r.URL.Path,
		Nav:       nav.Build(r.URL.Path),
		CSRFToken: sess.CSRFToken,
		Badge:     badgeView(cartStore.Items(r.Context(), sess.ID)),
		Content:   page,
	}
	vm.SEO.Title = page.Title + " | SwiftCart"
	vm.SEO.Description = page.Summary
	vm.SEO.Canonical = absoluteURL(r)

	renderPage(w, r, vm)
}

func contentETag(page content.Page) string {
	h := sha256.Sum256([]byte(page.Slug + "|" + page.UpdatedAt.String() + "|" + string(page.Body)))
	return `W/"` + hex.EncodeToString(h[:8]) + `"`
}
