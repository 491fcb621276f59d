package types

// Stats is a point-in-time view over every entry owned by a store.
type Stats struct {
	// TotalEntries counts every owned key, live or not.
	TotalEntries int `json:"totalEntries"`

	// ExpiredEntries counts entries past their TTL (or unreadable) that
	// have not been physically removed yet.
	ExpiredEntries int `json:"expiredEntries"`

	// ActiveEntries counts live entries.
	ActiveEntries int `json:"activeEntries"`

	// TotalBytes is the UTF-16 code-unit size of every owned key and value.
	TotalBytes int `json:"totalBytes"`
}
