package engine

import (
	"log"
	"time"

	"github.com/krisalay/storefront-cache/expiration"
	"github.com/krisalay/storefront-cache/types"
)

/*
CacheEngine is the "brain" of the cache system.
It is responsible for the "behavior" of the cache, NOT storage.

It decides:
- When data is expired
- How new entries are stamped
- How failures are absorbed
- How metrics are recorded

It does NOT:
- Store data
- Build keys
*/
type CacheEngine struct {

	// Expiration controls when a cache entry should be considered “too old”.
	Expiration expiration.Strategy

	// Metrics is how we keep track of what the cache is doing.
	Metrics types.Metrics

	// Logger receives every failure the cache swallows.
	Logger *log.Logger

	// Clock returns the current time. Tests replace it to move time forward.
	Clock func() time.Time
}

/*
NewCacheEngine creates a CacheEngine. Nil arguments fall back to a
5 minute fixed window, no-op metrics and the standard logger.
*/
func NewCacheEngine(
	exp expiration.Strategy,
	metrics types.Metrics,
	logger *log.Logger,
) *CacheEngine {
	if exp == nil {
		exp = &expiration.FixedWindow{TTL: expiration.DefaultTTL}
	}
	if metrics == nil {
		metrics = types.NoopMetrics{}
	}
	if logger == nil {
		logger = log.Default()
	}

	return &CacheEngine{
		Expiration: exp,
		Metrics:    metrics,
		Logger:     logger,
		Clock:      time.Now,
	}
}

// Now returns the engine's current time.
func (e *CacheEngine) Now() time.Time {
	if e.Clock == nil {
		return time.Now()
	}
	return e.Clock()
}

// IsExpired checks whether a cache entry is expired right now.
func (e *CacheEngine) IsExpired(ent *types.Entry) bool {
	return e.Expiration.IsExpired(ent, e.Now())
}

// OnWrite stamps a freshly built entry before it is persisted.
func (e *CacheEngine) OnWrite(ent *types.Entry, ttl time.Duration) {
	e.Expiration.OnWrite(ent, e.Now(), ttl)
}

/*
Guard runs fn and absorbs whatever goes wrong.

Errors are logged; panics are recovered and logged. Nothing reaches the
caller: cache failures only cost performance, never correctness.
Guard reports whether fn completed without error.
*/
func (e *CacheEngine) Guard(op, key string, fn func() error) (ok bool) {
	defer func() {
		if r := recover(); r != nil {
			e.Logger.Printf("cache %s %q: recovered: %v", op, key, r)
			ok = false
		}
	}()

	if err := fn(); err != nil {
		e.Logger.Printf("cache %s %q: %v", op, key, err)
		return false
	}
	return true
}
