package content

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const samplePage = `---
title: About SwiftCart
summary: Why we built this store.
updated_at: 2025-03-01
---

## Our story

We ship **fast**.

<script>alert("nope")</script>
`

func writePage(t *testing.T, dir, slug, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, slug+".md"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestGetRendersMarkdown(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about", samplePage)
	s := NewStore(dir)

	page, err := s.Get("about")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if page.Title != "About SwiftCart" {
		t.Fatalf("title = %q", page.Title)
	}
	body := string(page.Body)
	if !strings.Contains(body, "<h2") || !strings.Contains(body, "<strong>fast</strong>") {
		t.Fatalf("markdown not rendered: %s", body)
	}
	if strings.Contains(body, "<script") {
		t.Fatalf("script tag survived sanitization: %s", body)
	}
	want := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	if !page.UpdatedAt.Equal(want) {
		t.Fatalf("updated_at = %v, want %v", page.UpdatedAt, want)
	}
}

func TestBOMPrefixedPageParses(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about", "\uFEFF"+samplePage)
	s := NewStore(dir)

	page, err := s.Get("about")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if page.Title != "About SwiftCart" {
		t.Fatalf("front matter not parsed past BOM: title = %q", page.Title)
	}
}

func TestGetMissingPage(t *testing.T) {
	s := NewStore(t.TempDir())
	if _, err := s.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestSlugTraversalRejected(t *testing.T) {
	s := NewStore(t.TempDir())
	for _, slug := range []string{"../etc/passwd", "a/b", `a\b`, ""} {
		if _, err := s.Get(slug); !errors.Is(err, ErrNotFound) {
			t.Fatalf("slug %q: expected ErrNotFound, got %v", slug, err)
		}
	}
}

func TestTitleFallsBackToSlug(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "shipping-faq", "Just a body, no front matter.\n")
	s := NewStore(dir)
	page, err := s.Get("shipping-faq")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if page.Title != "Shipping Faq" {
		t.Fatalf("fallback title = %q", page.Title)
	}
}

func TestCacheServesUntilExpiry(t *testing.T) {
	dir := t.TempDir()
	writePage(t, dir, "about", samplePage)
	s := NewStore(dir)
	s.SetCacheDuration(time.Hour)

	if _, err := s.Get("about"); err != nil {
		t.Fatal(err)
	}
	// remove the source; the cached render should still be served
	if err := os.Remove(filepath.Join(dir, "about.md")); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get("about"); err != nil {
		t.Fatalf("expected cached page, got %v", err)
	}
}
