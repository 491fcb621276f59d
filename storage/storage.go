/*
Package storage defines the persistent key-value medium the cache rides on.

The medium is modeled on browser local storage: synchronous, string keys,
string values, enumerable, shared by everything in the same origin. The
cache namespaces its own keys and leaves everything else alone.
*/
package storage

import "errors"

var (
	// ErrQuotaExceeded is returned by SetItem when the write would exceed the medium's capacity.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrUnavailable is returned by every operation of a medium that cannot be used at all.
	ErrUnavailable = errors.New("storage unavailable")
)

// Backend is the storage medium. Implementations must be safe for concurrent use.
type Backend interface {

	// GetItem returns the value stored under key and whether it exists.
	GetItem(key string) (string, bool, error)

	// SetItem inserts or replaces the value under key.
	SetItem(key, value string) error

	// RemoveItem deletes key. Removing a missing key is not an error.
	RemoveItem(key string) error

	// Keys returns a snapshot of every key in the medium, including keys
	// written by other users of the same medium.
	Keys() ([]string, error)

	// Len returns how many keys are stored.
	Len() (int, error)
}
