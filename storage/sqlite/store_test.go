package sqlite

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/krisalay/storefront-cache/storage"
)

func openTempStore(t *testing.T, quota int64) *Store {
	t.Helper()

	store, err := Open(filepath.Join(t.TempDir(), "cache.db"), quota)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("close store: %v", err)
		}
	})
	return store
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open("  ", 0); err == nil {
		t.Fatal("expected empty path error")
	}
}

func TestSetGetRemoveRoundTrip(t *testing.T) {
	t.Parallel()

	store := openTempStore(t, 0)

	if err := store.SetItem("k", `{"data":1}`); err != nil {
		t.Fatalf("set item: %v", err)
	}
	v, ok, err := store.GetItem("k")
	if err != nil || !ok || v != `{"data":1}` {
		t.Fatalf("expected stored value, got %q ok=%v err=%v", v, ok, err)
	}

	if err := store.SetItem("k", `{"data":2}`); err != nil {
		t.Fatalf("replace item: %v", err)
	}
	if v, _, _ := store.GetItem("k"); v != `{"data":2}` {
		t.Fatalf("expected replaced value, got %q", v)
	}

	if err := store.RemoveItem("k"); err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if _, ok, err := store.GetItem("k"); ok || err != nil {
		t.Fatalf("expected missing item, got ok=%v err=%v", ok, err)
	}
	if err := store.RemoveItem("k"); err != nil {
		t.Fatalf("remove missing item: %v", err)
	}
}

func TestKeysAndLen(t *testing.T) {
	t.Parallel()

	store := openTempStore(t, 0)
	for _, k := range []string{"b", "a", "c"} {
		if err := store.SetItem(k, "v"); err != nil {
			t.Fatalf("set %s: %v", k, err)
		}
	}

	keys, err := store.Keys()
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if len(keys) != 3 || keys[0] != "a" || keys[2] != "c" {
		t.Fatalf("expected [a b c], got %v", keys)
	}
	n, err := store.Len()
	if err != nil || n != 3 {
		t.Fatalf("expected 3 items, got %d err=%v", n, err)
	}
}

func TestQuotaExceeded(t *testing.T) {
	t.Parallel()

	store := openTempStore(t, 10)

	if err := store.SetItem("k1", "12345"); err != nil {
		t.Fatalf("set item: %v", err)
	}
	if err := store.SetItem("k2", "12345"); !errors.Is(err, storage.ErrQuotaExceeded) {
		t.Fatalf("expected quota error, got %v", err)
	}
	if err := store.SetItem("k1", "12345678"); err != nil {
		t.Fatalf("replace within quota: %v", err)
	}
}

func TestReopenKeepsItems(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "cache.db")
	store, err := Open(path, 0)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	if err := store.SetItem("k", "v"); err != nil {
		t.Fatalf("set item: %v", err)
	}
	store.Close()

	reopened, err := Open(path, 0)
	if err != nil {
		t.Fatalf("reopen store: %v", err)
	}
	defer reopened.Close()
	if v, ok, _ := reopened.GetItem("k"); !ok || v != "v" {
		t.Fatalf("expected persisted item, got %q ok=%v", v, ok)
	}
}

func TestNilStoreIsUnavailable(t *testing.T) {
	t.Parallel()

	var store *Store
	if err := store.SetItem("k", "v"); !errors.Is(err, storage.ErrUnavailable) {
		t.Fatalf("expected unavailable, got %v", err)
	}
}

func TestUpSection(t *testing.T) {
	t.Parallel()

	got := upSection("-- +migrate Up\nCREATE TABLE x (id INT);\n-- +migrate Down\nDROP TABLE x;")
	if got != "\nCREATE TABLE x (id INT);\n" {
		t.Fatalf("unexpected up section %q", got)
	}
}
