package storage

import (
	"sort"
	"sync"
	"sync/atomic"
)

/*
Memory is an in-process Backend.

It uses copy-on-write:
- Readers always see an immutable snapshot of the map
- Writers build a NEW map and swap it in atomically

Reads are lock-free; writes are serialized by mu.
An optional byte quota emulates the capacity limit of browser storage.
*/
type Memory struct {

	// data holds the current map[string]string snapshot.
	data atomic.Value

	// mu serializes writers.
	mu sync.Mutex

	// used is the byte size of every key and value currently stored.
	used int64

	// quota is the maximum of used; zero means unlimited.
	quota int64
}

// NewMemory returns an empty Memory backend limited to quota bytes (0 = unlimited).
func NewMemory(quota int64) *Memory {
	m := &Memory{quota: quota}
	m.data.Store(make(map[string]string))
	return m
}

func (m *Memory) snapshot() map[string]string {
	return m.data.Load().(map[string]string)
}

// GetItem reads from the current snapshot without locking.
func (m *Memory) GetItem(key string) (string, bool, error) {
	v, ok := m.snapshot()[key]
	return v, ok, nil
}

/*
SetItem inserts or replaces an item. This is where copy-on-write happens.

1. Check the quota against the size after replacement
2. Copy the current map into a new one
3. Add / replace the item
4. Atomically swap the map
*/
func (m *Memory) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := m.snapshot()
	used := m.used + int64(len(key)+len(value))
	if prev, ok := old[key]; ok {
		used -= int64(len(key) + len(prev))
	}
	if m.quota > 0 && used > m.quota {
		return ErrQuotaExceeded
	}

	n := make(map[string]string, len(old)+1)
	for k, v := range old {
		n[k] = v
	}
	n[key] = value

	m.data.Store(n)
	m.used = used
	return nil
}

// RemoveItem deletes an item. Just like SetItem, this uses copy-on-write.
func (m *Memory) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	old := m.snapshot()
	prev, ok := old[key]
	if !ok {
		return nil
	}

	n := make(map[string]string, len(old))
	for k, v := range old {
		if k != key {
			n[k] = v
		}
	}

	m.data.Store(n)
	m.used -= int64(len(key) + len(prev))
	return nil
}

// Keys returns the keys of the current snapshot in sorted order.
func (m *Memory) Keys() ([]string, error) {
	snap := m.snapshot()
	out := make([]string, 0, len(snap))
	for k := range snap {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// Len returns how many items are stored.
func (m *Memory) Len() (int, error) {
	return len(m.snapshot()), nil
}

// Used returns how many bytes are counted against the quota.
func (m *Memory) Used() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}
