package cache

import (
	"context"
	"encoding/json"
	"time"

	"github.com/krisalay/storefront-cache/types"
)

// GetAs returns the payload under key decoded into T. A payload that does
// not decode into T is reported absent and left in place.
func GetAs[T any](s *Store, key string) (T, bool) {
	var v T
	data, ok := s.Get(key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(data, &v); err != nil {
		s.engine.Logger.Printf("cache get %q: payload does not decode as %T: %v", s.keys.Canonical(key), v, err)
		return v, false
	}
	return v, true
}

// LoadAs is GetOrLoad with the payload decoded into T.
func LoadAs[T any](
	ctx context.Context,
	s *Store,
	key string,
	ttl time.Duration,
	loader types.Loader,
) (T, error) {
	if v, ok := GetAs[T](s, key); ok {
		return v, nil
	}

	var v T
	data, err := s.load(ctx, s.keys.Canonical(key), ttl, loader)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(data, &v); err != nil {
		return v, err
	}
	return v, nil
}
