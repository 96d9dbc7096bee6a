// Package cache implements a concurrent memoizing cache whose contract
// forbids duplicate work per key without blocking unrelated keys: a
// producer for a given key runs at most once, even if many goroutines ask
// for that key concurrently, but producers for distinct keys run
// concurrently with each other, unless the keys format identically under %v
// (see flightKey in cache.go).
package cache
