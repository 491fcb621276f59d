package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	api "github.com/krisalay/storefront-cache/api"
	"github.com/krisalay/storefront-cache/engine"
	"github.com/krisalay/storefront-cache/keys"
	"github.com/krisalay/storefront-cache/storage"
	"github.com/krisalay/storefront-cache/types"
	"golang.org/x/sync/singleflight"
)

/*
Store is the response cache.
This struct is the orchestrator that connects:
- the storage medium
- key canonicalization
- expiration
- the fail-open policy
- metrics

Every public method is fail-open: storage errors, corrupt entries and
panics from the medium are logged and turned into misses or no-ops.
*/
type Store struct {
	// backend is the persistent key-value medium, shared with other users.
	backend storage.Backend

	// keys turns caller keys into namespaced storage keys.
	keys keys.Builder

	// engine holds expiration, clock, metrics and the Guard wrapper.
	engine *engine.CacheEngine

	// sf prevents concurrent misses on the same key from fetching the resource more than once.
	sf singleflight.Group

	// gen counts invalidations. A load only caches its result if no
	// invalidation started while it was fetching.
	genMu sync.RWMutex
	gen   uint64
}

var _ api.Cache = (*Store)(nil)

func NewStore(
	backend storage.Backend,
	builder keys.Builder,
	eng *engine.CacheEngine,
) *Store {
	if builder.Prefix == "" {
		builder = keys.NewBuilder("")
	}
	if eng == nil {
		eng = engine.NewCacheEngine(nil, nil, nil)
	}
	return &Store{
		backend: backend,
		keys:    builder,
		engine:  eng,
	}
}

// Key builds the canonical key for a resource path and its query parameters.
func (s *Store) Key(path string, params map[string]any) string {
	return s.keys.Build(path, params)
}

/*
Get returns the payload stored under key.

An expired entry is removed and reported absent. An entry that cannot be
decoded is removed and reported absent.
*/
func (s *Store) Get(key string) (json.RawMessage, bool) {
	sk := s.keys.Canonical(key)

	var ent *types.Entry
	s.engine.Guard("get", sk, func() (err error) {
		ent, err = s.lookup(sk)
		return err
	})
	if ent == nil {
		s.engine.Metrics.Miss()
		return nil, false
	}

	s.engine.Metrics.Hit()
	return ent.Data, true
}

/*
Set stores payload under key for ttl (zero means the default TTL).

payload is encoded with encoding/json; pass json.RawMessage to store an
already encoded document as-is. Writes are best-effort: when the medium is
full, expired entries are swept and the write is retried once. If it still
fails the write is dropped.
*/
func (s *Store) Set(key string, payload any, ttl time.Duration) {
	sk := s.keys.Canonical(key)

	s.engine.Guard("set", sk, func() error {
		data, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("encode payload: %w", err)
		}
		ent := &types.Entry{Data: data}
		s.engine.OnWrite(ent, ttl)

		raw, err := ent.Encode()
		if err != nil {
			return fmt.Errorf("encode entry: %w", err)
		}
		return s.write(sk, raw)
	})
}

// Remove deletes key. Removing a missing key is a no-op.
func (s *Store) Remove(key string) {
	sk := s.keys.Canonical(key)
	s.invalidated()
	s.engine.Guard("remove", sk, func() error {
		return s.backend.RemoveItem(sk)
	})
}

/*
GetOrLoad returns the cached payload for key, or loads it.

On a miss the loader receives the resource key (path plus canonical query)
and the result is cached for ttl. A result whose load overlapped Remove,
ClearAll or ClearByPattern is returned but not cached. Loader errors are
returned: they belong to the caller's data path. Cache failures never are.
*/
func (s *Store) GetOrLoad(
	ctx context.Context,
	key string,
	ttl time.Duration,
	loader types.Loader,
) (json.RawMessage, error) {
	if data, ok := s.Get(key); ok {
		return data, nil
	}
	return s.load(ctx, s.keys.Canonical(key), ttl, loader)
}

func (s *Store) load(
	ctx context.Context,
	sk string,
	ttl time.Duration,
	loader types.Loader,
) (json.RawMessage, error) {
	s.genMu.RLock()
	gen := s.gen
	s.genMu.RUnlock()

	// callers arriving after an invalidation start a fresh load
	flight := strconv.FormatUint(gen, 10) + ":" + sk
	v, err, _ := s.sf.Do(flight, func() (any, error) {
		resource := s.keys.Resource(sk)
		body, err := loader.Load(ctx, resource)
		if err != nil {
			return nil, err
		}
		if !json.Valid(body) {
			return nil, fmt.Errorf("load %s: response is not JSON", resource)
		}

		data := json.RawMessage(body)

		// Holding the read lock across Set makes a concurrent purge
		// wait for the write and then remove it.
		s.genMu.RLock()
		defer s.genMu.RUnlock()
		if s.gen != gen {
			s.engine.Logger.Printf("cache load %q: invalidated while loading, not cached", sk)
			return data, nil
		}
		s.Set(sk, data, ttl)
		return data, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

// invalidated marks the start of an invalidation. Loads already in flight
// will not cache what they fetched.
func (s *Store) invalidated() {
	s.genMu.Lock()
	s.gen++
	s.genMu.Unlock()
}

// lookup reads and validates one entry, removing it when it is unusable.
// A nil entry with a nil error means absent.
func (s *Store) lookup(sk string) (*types.Entry, error) {
	raw, ok, err := s.backend.GetItem(sk)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}

	ent, err := types.DecodeEntry(raw)
	if err != nil {
		s.engine.Metrics.Corrupt()
		s.engine.Logger.Printf("cache get %q: dropping corrupt entry: %v", sk, err)
		if rmErr := s.backend.RemoveItem(sk); rmErr != nil {
			return nil, fmt.Errorf("remove corrupt entry: %w", rmErr)
		}
		return nil, nil
	}

	if s.engine.IsExpired(ent) {
		s.engine.Metrics.Expire()
		if err := s.backend.RemoveItem(sk); err != nil {
			return nil, fmt.Errorf("remove expired entry: %w", err)
		}
		return nil, nil
	}
	return ent, nil
}

// write persists one serialized entry with a single sweep-and-retry on a full medium.
func (s *Store) write(sk, raw string) error {
	err := s.backend.SetItem(sk, raw)
	if errors.Is(err, storage.ErrQuotaExceeded) {
		removed := s.Sweep()
		s.engine.Logger.Printf("cache set %q: quota exceeded, swept %d entries, retrying", sk, removed)
		err = s.backend.SetItem(sk, raw)
	}
	if err == nil {
		return nil
	}

	s.engine.Metrics.WriteFailure()
	// never leave a superseded payload readable under this key
	_ = s.backend.RemoveItem(sk)
	return fmt.Errorf("write dropped: %w", err)
}
