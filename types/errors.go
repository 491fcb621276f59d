package types

import "errors"

// ErrMissingData marks a stored value that parsed as JSON but is not a cache entry.
var ErrMissingData = errors.New("cache entry has no data field")
