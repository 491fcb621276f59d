package keys

import "testing"

func TestBuildSortsParams(t *testing.T) {
	b := NewBuilder("")

	k1 := b.Build("/api/products", map[string]any{"page": 1, "limit": 12, "search": "seal"})
	k2 := b.Build("/api/products", map[string]any{"search": "seal", "page": 1, "limit": 12})

	if k1 != k2 {
		t.Fatalf("expected identical keys, got %q and %q", k1, k2)
	}
	want := "api_cache_/api/products?limit=12&page=1&search=seal"
	if k1 != want {
		t.Fatalf("expected %q, got %q", want, k1)
	}
}

func TestBuildDistinguishesParams(t *testing.T) {
	b := NewBuilder("")

	if b.Build("/api/products", map[string]any{"page": 1}) == b.Build("/api/products", map[string]any{"page": 2}) {
		t.Fatal("expected different keys for different params")
	}
	// an escaped value must not collide with an extra parameter
	a := b.Build("/api/products", map[string]any{"q": "a&b=c"})
	c := b.Build("/api/products", map[string]any{"q": "a", "b": "c"})
	if a == c {
		t.Fatalf("expected escaped value to differ, both %q", a)
	}
}

func TestBuildWithoutParams(t *testing.T) {
	b := NewBuilder("x_")

	if got := b.Build("/api/categories", nil); got != "x_/api/categories" {
		t.Fatalf("expected x_/api/categories, got %q", got)
	}
	if got := b.Build("/api/categories", map[string]any{}); got != "x_/api/categories" {
		t.Fatalf("expected no query suffix, got %q", got)
	}
	if got := b.Build("/api/categories", map[string]any{"page": nil}); got != "x_/api/categories" {
		t.Fatalf("expected nil params omitted, got %q", got)
	}
}

func TestBuildIsIdempotentOnPrefixedKeys(t *testing.T) {
	b := NewBuilder("")

	key := b.Build("/api/products", map[string]any{"page": 3})
	if got := b.Build(key, nil); got != key {
		t.Fatalf("expected %q unchanged, got %q", key, got)
	}
	if got := b.Canonical(key); got != key {
		t.Fatalf("expected %q unchanged, got %q", key, got)
	}
	if got := b.Build(key, map[string]any{"page": 4}); got != key {
		t.Fatalf("expected params ignored on prefixed key, got %q", got)
	}
}

func TestBuildEmptyPath(t *testing.T) {
	b := NewBuilder("")

	if got := b.Build("", nil); got != "api_cache_/" {
		t.Fatalf("expected empty path coerced to /, got %q", got)
	}
}

func TestOwnsAndResource(t *testing.T) {
	b := NewBuilder("")

	key := b.Canonical("/api/categories")
	if !b.Owns(key) {
		t.Fatalf("expected %q owned", key)
	}
	if b.Owns("theme") {
		t.Fatal("expected foreign key not owned")
	}
	if got := b.Resource(key); got != "/api/categories" {
		t.Fatalf("expected /api/categories, got %q", got)
	}
}

func TestCanonicalSortsWrittenOutQuery(t *testing.T) {
	b := NewBuilder("")

	want := b.Build("/api/products", map[string]any{"page": 1, "limit": 2})
	if got := b.Canonical("/api/products?page=1&limit=2"); got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
	if got := b.Build("/api/products?page=1", map[string]any{"limit": 2}); got != want {
		t.Fatalf("expected query merged with params, got %q", got)
	}
	if got := b.Build("/api/products?page=1", map[string]any{"page": 3}); got != "api_cache_/api/products?page=3" {
		t.Fatalf("expected params to win, got %q", got)
	}
}

func TestCanonicalKeepsUnparsableQuery(t *testing.T) {
	b := NewBuilder("")

	if got := b.Canonical("/api/products?q=%zz"); got != "api_cache_/api/products?q=%zz" {
		t.Fatalf("expected query kept verbatim, got %q", got)
	}
}
