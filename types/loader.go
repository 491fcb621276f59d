package types

import "context"

// Loader is the contract between the cache and the remote API.
type Loader interface {

	/*
		Load is called when the cache misses.
		1. Cache checks storage → key absent or expired
		2. Cache calls Load with the resource key (path plus canonical query, no namespace prefix)
		3. Loader fetches from the REST API
		4. Cache stores the body with a TTL
		5. Cache returns the body

		The returned bytes must be a JSON document.
	*/
	Load(ctx context.Context, resource string) ([]byte, error)
}
