package invalidate

import (
	"context"
	"log"
	"sort"
	"strings"
)

/*
This file defines how a write elsewhere in the application makes cached
reads go away.

The writer does not know which keys are cached. It only names the
resource it mutated; the rules map that resource onto substring patterns
and every cached key containing one of them is purged. Over-invalidation
is fine: a miss costs a fetch, a stale read costs correctness.
*/

// Purger is the part of the cache an Invalidator needs.
type Purger interface {
	ClearByPattern(pattern string) int
}

/*
Rules maps a mutated resource path prefix onto the cached read patterns it
makes stale.
*/
type Rules map[string][]string

// DefaultRules covers the storefront admin console.
func DefaultRules() Rules {
	return Rules{
		"/api/admin/products":   {"/api/products"},
		"/api/admin/categories": {"/api/categories", "/api/products"},
		"/api/admin/orders":     {"/api/orders"},
	}
}

// Invalidator turns mutations into pattern purges.
type Invalidator struct {
	purger Purger
	rules  Rules
	logger *log.Logger
}

// New creates an Invalidator. Nil rules means DefaultRules.
func New(purger Purger, rules Rules, logger *log.Logger) *Invalidator {
	if rules == nil {
		rules = DefaultRules()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Invalidator{purger: purger, rules: rules, logger: logger}
}

/*
OnWrite is called after a mutation on resource succeeded.
Every rule whose prefix matches the resource path contributes its
patterns. A resource no rule matches invalidates its own path.
It returns how many entries were removed.
*/
func (i *Invalidator) OnWrite(ctx context.Context, resource string) int {
	patterns := i.Patterns(resource)
	n := i.Invalidate(patterns...)
	i.logger.Printf("cache invalidate %s: %v removed %d", resource, patterns, n)
	return n
}

// Patterns resolves the patterns a mutation on resource invalidates.
func (i *Invalidator) Patterns(resource string) []string {
	path := resource
	if idx := strings.IndexByte(path, '?'); idx >= 0 {
		path = path[:idx]
	}

	seen := make(map[string]struct{})
	for prefix, patterns := range i.rules {
		if !strings.HasPrefix(path, prefix) {
			continue
		}
		for _, p := range patterns {
			seen[p] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return []string{path}
	}

	out := make([]string, 0, len(seen))
	for p := range seen {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Invalidate purges every pattern and returns how many entries were removed.
// Empty patterns are skipped: they would match everything.
func (i *Invalidator) Invalidate(patterns ...string) int {
	total := 0
	for _, p := range patterns {
		if p == "" {
			continue
		}
		total += i.purger.ClearByPattern(p)
	}
	return total
}
