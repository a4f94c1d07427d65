package cache

import (
	"errors"
	"time"
)

// ErrNotFound is returned for keys that were never inserted, have expired or were evicted.
var ErrNotFound = errors.New("cache: entry not found")

// Cache defines a bounded key-value store whose entries expire a fixed TTL after insertion.
// Implementations must be safe for concurrent use.
type Cache[K comparable, V any] interface {
	// Insert stores the value and returns the moment it expires.
	// A full cache makes room instead of refusing the value.
	Insert(key K, value V) time.Time

	// Get returns the value, or ErrNotFound if it is absent or expired.
	Get(key K) (V, error)

	// Has reports whether a key is present and not expired.
	Has(key K) bool

	// IsFull reports whether the number of live entries reached capacity.
	IsFull() bool

	// Len returns the number of non-expired items currently stored.
	Len() int

	// PurgeExpired removes expired entries and returns how many were removed.
	PurgeExpired() int
}
