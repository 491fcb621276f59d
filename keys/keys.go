// Package keys builds canonical cache keys from a resource path and its
// query parameters.
package keys

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultPrefix namespaces cache entries inside a shared storage medium.
const DefaultPrefix = "api_cache_"

// Builder produces storage keys of the form
//
//	<prefix><path>?<k1>=<v1>&<k2>=<v2>
//
// with parameters sorted by name, so the same request always lands on the
// same key whatever order its parameters were assembled in.
type Builder struct {
	Prefix string
}

// NewBuilder returns a Builder for prefix, falling back to DefaultPrefix.
func NewBuilder(prefix string) Builder {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return Builder{Prefix: prefix}
}

// Build returns the storage key for path and params.
//
// A path that already carries the prefix is returned unchanged and params
// are ignored. An empty path is treated as "/". A query string written into
// path is merged with params, which win on conflicts. Parameters with a nil
// value are omitted; names and values are query-escaped.
func (b Builder) Build(path string, params map[string]any) string {
	if b.Prefix != "" && strings.HasPrefix(path, b.Prefix) {
		return path
	}

	query := url.Values{}
	if base, raw, ok := strings.Cut(path, "?"); ok {
		parsed, err := url.ParseQuery(raw)
		if err != nil {
			// not a query we can reorder, keep it verbatim
			return b.Prefix + path
		}
		path, query = base, parsed
	}
	if path == "" {
		path = "/"
	}

	for name, v := range params {
		if v == nil {
			continue
		}
		query.Set(name, fmt.Sprint(v))
	}
	if len(query) == 0 {
		return b.Prefix + path
	}
	// Encode sorts by name
	return b.Prefix + path + "?" + query.Encode()
}

// Canonical maps a caller-supplied key onto its storage key, putting a
// written-out query string in canonical order.
func (b Builder) Canonical(key string) string {
	return b.Build(key, nil)
}

// Owns reports whether storageKey belongs to this namespace.
func (b Builder) Owns(storageKey string) bool {
	return strings.HasPrefix(storageKey, b.Prefix)
}

// Resource strips the namespace prefix, leaving path and query.
func (b Builder) Resource(storageKey string) string {
	return strings.TrimPrefix(storageKey, b.Prefix)
}
