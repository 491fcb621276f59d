package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/krisalay/storefront-cache/types"
)

/*
Cache defines the PUBLIC API of the response cache.
Storage medium, key canonicalization, expiration and failure handling are
all hidden behind this interface.

No method returns a cache error. A broken or full medium makes the cache
behave as if it were empty; only GetOrLoad returns errors, and only the
loader's own.
*/
type Cache interface {

	/*
		Get retrieves the payload stored under key.

		BEHAVIOR:
		-------------------
		1. Live entry: return its payload
		2. Missing entry: absent
		3. Expired entry: removed, absent
		4. Undecodable entry: removed, absent
	*/
	Get(key string) (json.RawMessage, bool)

	/*
		Set stores payload under key for ttl.

		- ttl <= 0 uses the default TTL (5 minutes)
		- the entry replaces any previous one wholesale
		- on a full medium, expired entries are swept and the write retried once
		- a write that still fails is dropped silently
	*/
	Set(key string, payload any, ttl time.Duration)

	/*
		Remove deletes a single key. Removing a missing key is safe.
	*/
	Remove(key string)

	/*
		ClearAll deletes every entry of this cache's namespace.
		Keys written by anything else sharing the medium survive.
	*/
	ClearAll() int

	/*
		ClearByPattern deletes every owned entry whose key contains pattern.

		USE CASES:
		----------
		- An admin mutation on products drops every cached product page
		- Over-invalidation is acceptable; stale reads are not
	*/
	ClearByPattern(pattern string) int

	/*
		Stats scans all owned entries.

		RETURN VALUES:
		--------------
		TotalEntries   : every owned key
		ExpiredEntries : past TTL (or unreadable) but not removed yet
		ActiveEntries  : live entries
		TotalBytes     : UTF-16 size of keys and serialized values
	*/
	Stats() types.Stats

	/*
		Sweep removes every expired or unreadable owned entry.
		It is idempotent and never removes a live entry.
	*/
	Sweep() int

	/*
		GetOrLoad returns the cached payload, or loads, caches and returns it.
		Concurrent misses on the same key share one load.
	*/
	GetOrLoad(ctx context.Context, key string, ttl time.Duration, loader types.Loader) (json.RawMessage, error)
}
