package cache

import "github.com/rs/xid"

// NewKey returns a fresh playback key. Keys are URL-safe and sort by creation time.
func NewKey() string {
	return xid.New().String()
}
