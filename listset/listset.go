package listset

import (
	"fmt"
	"iter"
	"sync"

	"golang.org/x/exp/constraints"
)

// slot is a lock-guarded pointer to the next node in the list. The head of
// a Set and the next field of every node are both slots; a "cursor" (see
// find) is simply a currently-locked *slot.
type slot[T constraints.Ordered] struct {
	mu   sync.Mutex
	next *node[T]
}

type node[T constraints.Ordered] struct {
	value T
	next  slot[T]
}

// Set is a concurrent sorted set, safe for use by multiple goroutines.
// Values are ordered strictly ascending, with no duplicates.
type Set[T constraints.Ordered] struct {
	head slot[T]
}

// New creates an empty Set.
func New[T constraints.Ordered]() *Set[T] {
	return &Set[T]{}
}

// DuplicateKeyError is returned by Insert when key is already present.
type DuplicateKeyError[T constraints.Ordered] struct {
	Key T
}

func (e *DuplicateKeyError[T]) Error() string {
	return fmt.Sprintf("listset: key %v already present", e.Key)
}

// NotFoundError is returned by Remove when key is not present.
type NotFoundError[T constraints.Ordered] struct {
	Key T
}

func (e *NotFoundError[T]) Error() string {
	return fmt.Sprintf("listset: key %v not found", e.Key)
}

// cursor is a held lock on the slot that currently points at the node under
// examination. While a cursor holds guard locked, the node guard.next
// cannot be unlinked by any other goroutine - unlinking it requires
// acquiring the very same mutex.
type cursor[T constraints.Ordered] struct {
	guard *slot[T]
}

// find advances the cursor, starting from its current guard, until it
// reaches a node whose value is >= key (or the end of the list), reporting
// whether a node with exactly that value was found. Advancing is always by
// lock coupling: the next node's lock is acquired before the current one is
// released.
func (c *cursor[T]) find(key T) bool {
	for {
		curr := c.guard.next
		switch {
		case curr == nil || curr.value > key:
			return false
		case curr.value == key:
			return true
		default:
			curr.next.mu.Lock()
			c.guard.mu.Unlock()
			c.guard = &curr.next
		}
	}
}

// find locks the head and returns a cursor positioned by searching for key.
// The returned cursor's guard is always locked; the caller must unlock it.
func (s *Set[T]) find(key T) (bool, *cursor[T]) {
	s.head.mu.Lock()
	c := &cursor[T]{guard: &s.head}
	found := c.find(key)
	return found, c
}

// Contains reports whether key is present in the set.
func (s *Set[T]) Contains(key T) bool {
	found, c := s.find(key)
	c.guard.mu.Unlock()
	return found
}

// Insert adds key to the set. If key is already present, Insert returns a
// *DuplicateKeyError wrapping key and leaves the set unchanged.
func (s *Set[T]) Insert(key T) error {
	found, c := s.find(key)
	defer c.guard.mu.Unlock()

	if found {
		return &DuplicateKeyError[T]{Key: key}
	}

	n := &node[T]{value: key}
	n.next.next = c.guard.next
	c.guard.next = n
	return nil
}

// Remove deletes key from the set and returns it. If key is not present,
// Remove returns a *NotFoundError.
func (s *Set[T]) Remove(key T) (T, error) {
	found, c := s.find(key)
	defer c.guard.mu.Unlock()

	if !found {
		var zero T
		return zero, &NotFoundError[T]{Key: key}
	}

	removed := c.guard.next
	removed.next.mu.Lock()
	c.guard.next = removed.next.next
	removed.next.mu.Unlock()
	return removed.value, nil
}

// All returns an iterator over every value in the set, in strictly
// ascending order, usable with a range-over-func loop
// (`for v := range s.All() { ... }`) or by calling it directly.
//
// Iteration holds the lock on the node currently being yielded (and its
// predecessor, briefly, during the hand-over-hand advance), so it blocks
// mutators trying to cross the iterator's current position, but not
// mutators strictly before it.
//
// Unlike an external iterator holding a guard between calls, this
// push-style shape cannot leak a held lock if the caller stops early or
// panics inside the range body: the lock is always released by the same
// call stack that acquired it.
func (s *Set[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		s.head.mu.Lock()
		guard := &s.head
		// guard is always the one slot currently held, so this releases it
		// whether the walk ends, yield returns false, or yield panics.
		defer func() { guard.mu.Unlock() }()
		for {
			curr := guard.next
			if curr == nil {
				return
			}

			curr.next.mu.Lock()
			guard.mu.Unlock()
			guard = &curr.next

			if !yield(curr.value) {
				return
			}
		}
	}
}
