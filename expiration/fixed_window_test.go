package expiration

import (
	"testing"
	"time"

	"github.com/krisalay/storefront-cache/types"
)

func TestFixedWindowBoundary(t *testing.T) {
	f := &FixedWindow{}
	now := time.UnixMilli(1_700_000_000_000)

	ent := &types.Entry{}
	f.OnWrite(ent, now, 300*time.Millisecond)

	if f.IsExpired(ent, now.Add(300*time.Millisecond)) {
		t.Fatal("entry must stay live at exactly its TTL")
	}
	if !f.IsExpired(ent, now.Add(301*time.Millisecond)) {
		t.Fatal("entry must expire one millisecond past its TTL")
	}
}

func TestFixedWindowDefaults(t *testing.T) {
	now := time.Now()

	ent := &types.Entry{}
	(&FixedWindow{}).OnWrite(ent, now, 0)
	if ent.TTL != DefaultTTL.Milliseconds() {
		t.Fatalf("expected default ttl, got %d", ent.TTL)
	}

	ent = &types.Entry{}
	(&FixedWindow{TTL: 3 * time.Minute}).OnWrite(ent, now, 0)
	if ent.TTL != (3 * time.Minute).Milliseconds() {
		t.Fatalf("expected configured ttl, got %d", ent.TTL)
	}
	if ent.Timestamp != now.UnixMilli() {
		t.Fatalf("expected timestamp %d, got %d", now.UnixMilli(), ent.Timestamp)
	}
}

func TestFixedWindowSubMillisecondTTL(t *testing.T) {
	f := &FixedWindow{}
	now := time.UnixMilli(1_700_000_000_000)

	ent := &types.Entry{}
	f.OnWrite(ent, now, 500*time.Microsecond)

	if ent.TTL != 1 {
		t.Fatalf("expected ttl rounded up to 1ms, got %d", ent.TTL)
	}
	if f.IsExpired(ent, now.Add(time.Millisecond)) {
		t.Fatal("entry must stay live for its rounded TTL")
	}
}
