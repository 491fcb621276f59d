package types

import (
	"encoding/json"
	"time"
)

/*
Entry is the persisted form of one cached response.

It is written to the storage medium as JSON:

	{"data": <any JSON value>, "timestamp": <ms since epoch>, "ttl": <ms>}

Entries are never patched. A new write replaces the whole entry.
*/
type Entry struct {
	// Data is the cached response body, kept as raw JSON so the entry
	// round-trips exactly whatever the caller stored.
	Data json.RawMessage `json:"data"`

	// Timestamp is the write time in milliseconds since the Unix epoch.
	Timestamp int64 `json:"timestamp"`

	// TTL is the validity window in milliseconds, measured from Timestamp.
	TTL int64 `json:"ttl"`
}

// StoredAt returns the write time.
func (e *Entry) StoredAt() time.Time {
	return time.UnixMilli(e.Timestamp)
}

// ExpireAt returns the instant after which the entry is no longer live.
func (e *Entry) ExpireAt() time.Time {
	return time.UnixMilli(e.Timestamp + e.TTL)
}

// Live reports whether now - storedAt <= ttl.
func (e *Entry) Live(now time.Time) bool {
	return now.UnixMilli()-e.Timestamp <= e.TTL
}

// DecodeEntry parses a serialized entry. A value that is not JSON, or that
// carries no data field, is reported as an error so callers can treat it
// as corrupt.
func DecodeEntry(raw string) (*Entry, error) {
	var ent Entry
	if err := json.Unmarshal([]byte(raw), &ent); err != nil {
		return nil, err
	}
	if len(ent.Data) == 0 {
		return nil, ErrMissingData
	}
	return &ent, nil
}

// Encode serializes the entry into its storage form.
func (e *Entry) Encode() (string, error) {
	b, err := json.Marshal(e)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
