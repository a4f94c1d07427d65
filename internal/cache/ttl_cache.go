package cache

import (
	"container/list"
	"sync"
	"time"
)

// entry stores a cached value and its absolute expiration timestamp.
type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// TTLCache is a map-backed cache with a fixed TTL and a maximum entry count.
// Every entry lives for the same TTL, so insertion order is also expiry order:
// the front of the list is always the next entry to expire.
type TTLCache[K comparable, V any] struct {
	mu sync.RWMutex

	ttl      time.Duration
	maxCount int

	items map[K]*list.Element
	order *list.List

	evictions int64
}

// Options controls construction of a TTLCache.
type Options struct {
	// TTL is how long an entry stays readable after insertion.
	TTL time.Duration

	// MaxCount is the maximum number of entries. Values below 1 are treated as 1.
	MaxCount int
}

// AudioCache maps playback keys to encoded audio.
type AudioCache = TTLCache[string, []byte]

// NewTTLCache constructs a new TTLCache with the given options.
func NewTTLCache[K comparable, V any](opts Options) *TTLCache[K, V] {
	maxCount := opts.MaxCount
	if maxCount < 1 {
		maxCount = 1
	}
	return &TTLCache[K, V]{
		ttl:      opts.TTL,
		maxCount: maxCount,
		items:    make(map[K]*list.Element),
		order:    list.New(),
	}
}

// NewAudioCache constructs the playback audio store.
func NewAudioCache(opts Options) *AudioCache {
	return NewTTLCache[string, []byte](opts)
}

// now is a small indirection to allow test stubbing if needed.
var now = time.Now

func expired(expiresAt, ts time.Time) bool {
	return !ts.Before(expiresAt)
}

// Insert implements Cache.Insert.
func (c *TTLCache[K, V]) Insert(key K, value V) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	nowTs := now()
	c.purgeLocked(nowTs)

	if elem, ok := c.items[key]; ok {
		c.removeLocked(elem)
	}
	for c.order.Len() >= c.maxCount {
		c.removeLocked(c.order.Front())
		c.evictions++
	}

	exp := nowTs.Add(c.ttl)
	c.items[key] = c.order.PushBack(&entry[K, V]{
		key:       key,
		value:     value,
		expiresAt: exp,
	})
	return exp
}

// Get implements Cache.Get.
func (c *TTLCache[K, V]) Get(key K) (V, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	var zero V
	elem, ok := c.items[key]
	if !ok {
		return zero, ErrNotFound
	}
	e := elem.Value.(*entry[K, V])
	if expired(e.expiresAt, now()) {
		// lazy cleanup deferred to PurgeExpired
		return zero, ErrNotFound
	}
	return e.value, nil
}

// Has implements Cache.Has.
func (c *TTLCache[K, V]) Has(key K) bool {
	_, err := c.Get(key)
	return err == nil
}

// Len implements Cache.Len. It counts only non-expired entries.
func (c *TTLCache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.liveLocked(now())
}

// IsFull implements Cache.IsFull.
func (c *TTLCache[K, V]) IsFull() bool {
	return c.Len() >= c.maxCount
}

// PurgeExpired implements Cache.PurgeExpired.
func (c *TTLCache[K, V]) PurgeExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.purgeLocked(now())
}

// Evictions returns how many live entries were dropped to make room for new ones.
func (c *TTLCache[K, V]) Evictions() int64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.evictions
}

// TTL returns the configured time-to-live.
func (c *TTLCache[K, V]) TTL() time.Duration {
	return c.ttl
}

// liveLocked walks the expired prefix of the list. Must be called with a lock held.
func (c *TTLCache[K, V]) liveLocked(ts time.Time) int {
	stale := 0
	for elem := c.order.Front(); elem != nil; elem = elem.Next() {
		if !expired(elem.Value.(*entry[K, V]).expiresAt, ts) {
			break
		}
		stale++
	}
	return c.order.Len() - stale
}

// purgeLocked must be called with the write lock held.
func (c *TTLCache[K, V]) purgeLocked(ts time.Time) int {
	purged := 0
	for elem := c.order.Front(); elem != nil; elem = c.order.Front() {
		if !expired(elem.Value.(*entry[K, V]).expiresAt, ts) {
			break
		}
		c.removeLocked(elem)
		purged++
	}
	return purged
}

func (c *TTLCache[K, V]) removeLocked(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*entry[K, V]).key)
}

// Ensure TTLCache implements Cache at compile time.
var _ Cache[any, any] = (*TTLCache[any, any])(nil)
