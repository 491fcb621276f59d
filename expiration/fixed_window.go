package expiration

import (
	"time"

	"github.com/krisalay/storefront-cache/types"
)

// DefaultTTL applies when a write does not ask for a specific TTL.
const DefaultTTL = 5 * time.Minute

/*
FixedWindow keeps an entry valid for exactly its TTL after it was written.
Reads do not extend the window: entries are replaced, never touched.
*/
type FixedWindow struct {

	// TTL is used for writes that pass no TTL of their own.
	TTL time.Duration
}

// IsExpired reports whether now - storedAt > ttl.
func (f *FixedWindow) IsExpired(ent *types.Entry, now time.Time) bool {
	return !ent.Live(now)
}

// OnWrite records the write time and resolves the TTL.
func (f *FixedWindow) OnWrite(ent *types.Entry, now time.Time, ttl time.Duration) {
	if ttl <= 0 {
		ttl = f.TTL
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	ent.Timestamp = now.UnixMilli()
	// entries are stamped in whole milliseconds
	ent.TTL = max(ttl.Milliseconds(), 1)
}
