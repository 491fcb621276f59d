package invalidate

import (
	"bytes"
	"context"
	"log"
	"reflect"
	"strings"
	"testing"
)

type recordingPurger struct {
	keys     []string
	patterns []string
}

func (r *recordingPurger) ClearByPattern(pattern string) int {
	r.patterns = append(r.patterns, pattern)
	kept := r.keys[:0]
	removed := 0
	for _, k := range r.keys {
		if strings.Contains(k, pattern) {
			removed++
			continue
		}
		kept = append(kept, k)
	}
	r.keys = kept
	return removed
}

func newTestInvalidator(keys ...string) (*Invalidator, *recordingPurger) {
	p := &recordingPurger{keys: keys}
	return New(p, nil, log.New(&bytes.Buffer{}, "", 0)), p
}

func TestProductMutationPurgesProductReads(t *testing.T) {
	inv, p := newTestInvalidator(
		"api_cache_/api/products?page=1",
		"api_cache_/api/products?page=2&search=seal",
		"api_cache_/api/products/featured",
		"api_cache_/api/categories",
	)

	if n := inv.OnWrite(context.Background(), "/api/admin/products/42"); n != 3 {
		t.Fatalf("expected 3 removed, got %d", n)
	}
	if !reflect.DeepEqual(p.keys, []string{"api_cache_/api/categories"}) {
		t.Fatalf("expected categories to survive, got %v", p.keys)
	}
}

func TestCategoryMutationPurgesCategoriesAndProducts(t *testing.T) {
	inv, _ := newTestInvalidator()

	got := inv.Patterns("/api/admin/categories/7?force=true")
	want := []string{"/api/categories", "/api/products"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
}

func TestUnknownResourceInvalidatesItself(t *testing.T) {
	inv, p := newTestInvalidator("api_cache_/api/cart/items", "api_cache_/api/categories")

	inv.OnWrite(context.Background(), "/api/cart/items?id=3")
	if !reflect.DeepEqual(p.patterns, []string{"/api/cart/items"}) {
		t.Fatalf("expected own path pattern, got %v", p.patterns)
	}
	if len(p.keys) != 1 {
		t.Fatalf("expected one key left, got %v", p.keys)
	}
}

func TestInvalidateSkipsEmptyPattern(t *testing.T) {
	inv, p := newTestInvalidator("api_cache_/api/categories")

	if n := inv.Invalidate(""); n != 0 {
		t.Fatalf("expected nothing removed, got %d", n)
	}
	if len(p.patterns) != 0 {
		t.Fatalf("expected purger untouched, got %v", p.patterns)
	}
}
