package cache

import (
	"strings"
	"unicode/utf16"

	"github.com/krisalay/storefront-cache/types"
)

// ClearAll removes every entry in this store's namespace and returns how many were removed.
// Keys outside the namespace are left untouched.
func (s *Store) ClearAll() int {
	s.invalidated()
	n := s.purge("clear", func(string) bool { return true })
	s.engine.Metrics.Invalidated(n)
	return n
}

/*
ClearByPattern removes every owned entry whose storage key contains pattern.
pattern is a plain substring, not a regular expression, so "/api/products"
drops every page and search variant of the product list.
*/
func (s *Store) ClearByPattern(pattern string) int {
	s.invalidated()
	n := s.purge("clear-pattern", func(sk string) bool {
		return strings.Contains(sk, pattern)
	})
	s.engine.Metrics.Invalidated(n)
	return n
}

/*
Sweep removes every owned entry that is expired or unreadable and returns
how many were removed. Live entries are never touched, and a failure on
one key does not stop the pass.
*/
func (s *Store) Sweep() int {
	now := s.engine.Now()
	removed := 0

	for _, sk := range s.ownedKeys("sweep") {
		s.engine.Guard("sweep", sk, func() error {
			raw, ok, err := s.backend.GetItem(sk)
			if err != nil || !ok {
				return err
			}
			ent, err := types.DecodeEntry(raw)
			if err == nil && !s.engine.Expiration.IsExpired(ent, now) {
				return nil
			}
			if err := s.backend.RemoveItem(sk); err != nil {
				return err
			}
			removed++
			return nil
		})
	}

	s.engine.Metrics.Swept(removed)
	return removed
}

/*
Stats scans every owned entry.

Unreadable entries are counted as expired, so ActiveEntries +
ExpiredEntries == TotalEntries always holds.
*/
func (s *Store) Stats() types.Stats {
	now := s.engine.Now()
	var st types.Stats

	for _, sk := range s.ownedKeys("stats") {
		s.engine.Guard("stats", sk, func() error {
			raw, ok, err := s.backend.GetItem(sk)
			if err != nil || !ok {
				return err
			}
			st.TotalEntries++
			st.TotalBytes += utf16Len(sk) + utf16Len(raw)

			ent, err := types.DecodeEntry(raw)
			if err != nil || s.engine.Expiration.IsExpired(ent, now) {
				st.ExpiredEntries++
			} else {
				st.ActiveEntries++
			}
			return nil
		})
	}

	s.engine.Metrics.ObserveStats(st)
	return st
}

// purge removes every owned key accepted by match.
func (s *Store) purge(op string, match func(string) bool) int {
	removed := 0
	for _, sk := range s.ownedKeys(op) {
		if !match(sk) {
			continue
		}
		if s.engine.Guard(op, sk, func() error { return s.backend.RemoveItem(sk) }) {
			removed++
		}
	}
	return removed
}

// ownedKeys snapshots the keys of this namespace. On failure it returns none.
// An empty medium is not listed.
func (s *Store) ownedKeys(op string) []string {
	var owned []string
	s.engine.Guard(op, s.keys.Prefix, func() error {
		n, err := s.backend.Len()
		if err != nil || n == 0 {
			return err
		}
		all, err := s.backend.Keys()
		if err != nil {
			return err
		}
		for _, k := range all {
			if s.keys.Owns(k) {
				owned = append(owned, k)
			}
		}
		return nil
	})
	return owned
}

func utf16Len(str string) int {
	n := 0
	for _, r := range str {
		n += utf16.RuneLen(r)
	}
	return n
}
