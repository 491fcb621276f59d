// This file defines how cache entries expire over time.

package expiration

import (
	"time"

	"github.com/krisalay/storefront-cache/types"
)

/*
Strategy is the interface that all expiration rules must follow. Instead of hard-coding
expiration logic into the cache, we define a strategy so expiration behavior can be swapped easily.
*/
type Strategy interface {

	// IsExpired checks if the entry is expired at now.
	IsExpired(*types.Entry, time.Time) bool

	// OnWrite stamps a new entry with its write time and TTL.
	// A zero or negative ttl asks for the strategy's default.
	OnWrite(ent *types.Entry, now time.Time, ttl time.Duration)
}
