package main

import (
	"flag"
	"fmt"
	"html/template"
	"io/fs"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"swiftcart.dev/web/internal/cart"
	"swiftcart.dev/web/internal/catalog"
	"swiftcart.dev/web/internal/content"
	mw "swiftcart.dev/web/internal/middleware"
)

var (
	templatesDir = "templates"
	publicDir    = "public"
	// devMode is set in main() based on env: SWIFTCART_DEV (preferred) or DEV (fallback)
	devMode   bool
	tmplCache *template.Template

	catalogClient *catalog.Client
	cartStore     *cart.Store
	contentStore  *content.Store
)

func main() {
	var (
		addr       string
		tmplPath   string
		pubPath    string
		contentDir string
	)
	// Port resolution: prefer SWIFTCART_PORT, then Cloud Run's PORT, else 8080
	port := os.Getenv("SWIFTCART_PORT")
	if port == "" {
		port = os.Getenv("PORT")
	}
	if port == "" {
		port = "8080"
	}
	flag.StringVar(&addr, "addr", ":"+port, "HTTP listen address")
	flag.StringVar(&tmplPath, "templates", templatesDir, "templates directory")
	flag.StringVar(&pubPath, "public", publicDir, "public assets directory")
	flag.StringVar(&contentDir, "content", "content", "markdown content directory")
	flag.Parse()

	templatesDir = tmplPath
	publicDir = pubPath

	devMode = os.Getenv("SWIFTCART_DEV") != "" || os.Getenv("DEV") != ""

	if !devMode {
		// Parse templates once in production
		tc, err := parseTemplates()
		if err != nil {
			log.Fatalf("parse templates: %v", err)
		}
		tmplCache = tc
	}

	catalogClient = catalog.NewClient(os.Getenv("SWIFTCART_CATALOG_URL"))
	contentStore = content.NewStore(contentDir)
	cartStore = cart.NewStore(newCartBackend())

	r := newRouter()

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	log.Printf("web listening on %s (devMode=%v)", addr, devMode)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("listen: %v", err)
	}
}

// newCartBackend picks Redis when configured, a cart file directory otherwise.
func newCartBackend() cart.Backend {
	if addr := strings.TrimSpace(os.Getenv("SWIFTCART_REDIS_ADDR")); addr != "" {
		backend, err := cart.NewRedisBackend(addr)
		if err != nil {
			log.Fatalf("cart: redis %s: %v", addr, err)
		}
		log.Printf("cart: using redis backend at %s", addr)
		return backend
	}
	dir := os.Getenv("SWIFTCART_CART_DIR")
	if dir == "" {
		dir = filepath.Join("data", "carts")
	}
	backend, err := cart.NewFileBackend(dir)
	if err != nil {
		log.Printf("cart: file backend %s unavailable (%v); carts will not survive restarts", dir, err)
		return cart.NewMemoryBackend()
	}
	log.Printf("cart: using file backend at %s", dir)
	return backend
}

func newRouter() chi.Router {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(mw.HTMX)
	r.Use(mw.Session)
	r.Use(mw.CSRF)
	r.Use(mw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.Timeout(30 * time.Second))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	assets := http.StripPrefix("/assets", mw.AssetsWithCache(filepath.Join(publicDir, "assets")))
	r.Handle("/assets/*", assets)

	r.Get("/", HomeHandler)
	r.Get("/shop/grid", ShopGridFrag)
	r.Get("/products/{productID}/modal", ProductModalFrag)
	r.Get("/cart/badge", CartBadgeFrag)
	r.Post("/cart/items", CartAddHandler)
	r.Post("/newsletter", NewsletterHandler)
	r.Get("/content/{slug}", ContentPageHandler)

	return r
}

func parseTemplates() (*template.Template, error) {
	funcMap := template.FuncMap{
		"now": time.Now,
	}
	// Recursively discover and parse all .tmpl files. Note: ParseGlob doesn't support **.
	var files []string
	if err := filepath.WalkDir(templatesDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no templates found under %s", templatesDir)
	}
	return template.New("_root").Funcs(funcMap).ParseFiles(files...)
}

func lookupTemplates(w http.ResponseWriter) *template.Template {
	if devMode {
		tc, err := parseTemplates()
		if err != nil {
			http.Error(w, fmt.Sprintf("template parse error: %v", err), http.StatusInternalServerError)
			return nil
		}
		return tc
	}
	if tmplCache == nil {
		http.Error(w, "template not initialized", http.StatusInternalServerError)
		return nil
	}
	return tmplCache
}

// renderPage executes the base layout.
func renderPage(w http.ResponseWriter, r *http.Request, data any) {
	renderTemplate(w, r, "base", data)
}

// renderTemplate executes a named template (page layout or HTMX fragment).
// In dev mode, templates are reparsed on each request.
func renderTemplate(w http.ResponseWriter, r *http.Request, name string, data any) {
	t := lookupTemplates(w)
	if t == nil {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		http.Error(w, fmt.Sprintf("template exec error: %v", err), http.StatusInternalServerError)
	}
}
