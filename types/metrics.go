package types

// This file defines how the cache reports what it is doing.

/*
Metrics is an interface that defines what the cache wants to measure.
Each method represents an event in the cache lifecycle.
*/
type Metrics interface {

	// Hit is called when a live entry is returned.
	Hit()

	// Miss is called when a read finds nothing usable.
	Miss()

	// Expire is called when a read finds an entry past its TTL and removes it.
	Expire()

	// Corrupt is called when a stored value cannot be decoded and is removed.
	Corrupt()

	// WriteFailure is called when a write is dropped after the retry budget.
	WriteFailure()

	// Swept is called after a sweep pass with the number of removed entries.
	Swept(removed int)

	// Invalidated is called after a pattern or full purge with the number of removed entries.
	Invalidated(removed int)

	// ObserveStats is called with the latest scan of the store.
	ObserveStats(Stats)
}

/*
NoopMetrics is a "do nothing" implementation of Metrics, so the cache
works without nil checks when nobody cares about metrics.
*/
type NoopMetrics struct{}

func (NoopMetrics) Hit()               {}
func (NoopMetrics) Miss()              {}
func (NoopMetrics) Expire()            {}
func (NoopMetrics) Corrupt()           {}
func (NoopMetrics) WriteFailure()      {}
func (NoopMetrics) Swept(int)          {}
func (NoopMetrics) Invalidated(int)    {}
func (NoopMetrics) ObserveStats(Stats) {}
