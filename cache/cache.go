package cache

import (
	"fmt"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache maps K to V, memoizing the result of a producer function per key.
// The zero value is not usable; create instances with New. Cache is safe
// for concurrent use.
type Cache[K comparable, V any] struct {
	mu     sync.RWMutex
	values map[K]V
	flight singleflight.Group
}

// New creates an empty Cache.
func New[K comparable, V any]() *Cache[K, V] {
	return &Cache[K, V]{values: make(map[K]V)}
}

// GetOrInsertWith returns the cached value for key, computing it with
// producer if it is not already present.
//
// For two distinct keys called concurrently, their producers run
// concurrently - the map is only ever held locked long enough to check for
// or record a result, never across a producer call. For the same key
// called concurrently, producer runs at most once; every caller for that
// key returns the one computed value. Distinct keys that share a flight key
// (see flightKey) are the exception: their producers run one after another.
//
// singleflight.Group supplies exactly the "elect one caller, the rest wait
// on its result" half of this contract; the map around it supplies the
// other half, permanent memoization, since a singleflight call is forgotten
// the instant it completes. The value is always read back from the map, so
// a caller never returns a value produced for a different key.
func (c *Cache[K, V]) GetOrInsertWith(key K, producer func(K) V) V {
	token := flightKey(key)
	for {
		if v, ok := c.load(key); ok {
			return v
		}

		c.flight.Do(token, func() (any, error) {
			if _, ok := c.load(key); ok {
				return nil, nil
			}

			result := producer(key)

			c.mu.Lock()
			c.values[key] = result
			c.mu.Unlock()

			return nil, nil
		})
	}
}

func (c *Cache[K, V]) load(key K) (V, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	v, ok := c.values[key]
	return v, ok
}

// flightKey derives the singleflight.Group key for key. Integer and string
// keys format injectively under %v. Other K need not: a struct of strings
// such as {"a b", ""} and {"a", "b "} formats the same, and so do values of
// different dynamic types in an interface key. Distinct keys with the same
// flight key share one singleflight call slot, so their producers are
// serialized rather than run concurrently.
func flightKey[K comparable](key K) string {
	return fmt.Sprintf("%v", key)
}
