package hazard

import (
	"sync/atomic"
	"unsafe"
)

// Shield binds one hazard slot to a protection episode for pointers of type
// T. A Shield must be created and released by a single goroutine; it is not
// safe to hand a Shield to another goroutine while it is in use, the same
// way the slot it owns is not meant to be shared.
type Shield[T any] struct {
	slot     *hazardSlot
	released atomic.Bool
}

// NewShield acquires a slot from r and returns a Shield ready to protect
// pointers. Release must be called, typically via defer, once the Shield is
// no longer needed.
func NewShield[T any](r *Registry) *Shield[T] {
	return &Shield[T]{slot: r.acquireSlot()}
}

// TryProtect attempts to protect *pointer, publishing it to the hazard slot
// and validating it against src. If src still holds the published value,
// the protection is established and TryProtect returns true. Otherwise
// *pointer is updated to the value observed in src, the hazard slot is
// cleared, and TryProtect returns false so the caller can retry.
//
// Both the publish and the validating reload are plain atomic operations on
// their respective locations; Go's memory model gives all atomic operations
// on a given variable a single total order, which is the sequential
// consistency the publish/validate pair requires (no acquire/release
// relaxation is applied at either point).
func (s *Shield[T]) TryProtect(pointer **T, src *atomic.Pointer[T]) bool {
	ptr := *pointer
	s.slot.hazard.Store(uintptr(unsafe.Pointer(ptr)))

	source := src.Load()
	if ptr == source {
		return true
	}

	*pointer = source
	s.slot.hazard.Store(0)
	return false
}

// Protect loops TryProtect, starting from the current value of src, until a
// validated protection is established, and returns the protected pointer.
func (s *Shield[T]) Protect(src *atomic.Pointer[T]) *T {
	pointer := src.Load()
	for !s.TryProtect(&pointer, src) {
	}
	return pointer
}

// Release clears the shield's hazard word and returns its slot to the
// registry for recycling. Release is idempotent; using the Shield to
// protect anything after calling Release is a caller error.
func (s *Shield[T]) Release() {
	if !s.released.CompareAndSwap(false, true) {
		return
	}
	s.slot.hazard.Store(0)
	s.slot.active.Store(false)
}
