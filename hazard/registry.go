package hazard

import "sync/atomic"

// hazardSlot is one entry in a Registry's grow-only list. Once linked, a
// slot is never unlinked or freed; it is only ever recycled by flipping
// active back to true after a prior owner released it.
type hazardSlot struct {
	active atomic.Bool
	hazard atomic.Uintptr
	// next is written once, when the slot is linked into the registry, and
	// never mutated afterward - it is safe to read without synchronization
	// once a goroutine has observed the slot via Registry.head.
	next *hazardSlot
}

// Registry is a process-wide (or, for tests, independently instantiable)
// multiset of hazard slots. It is safe for concurrent use by any number of
// goroutines.
type Registry struct {
	head atomic.Pointer[hazardSlot]
}

// NewRegistry creates an empty hazard registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// acquireSlot returns a slot for the caller's exclusive use, either by
// recycling a deactivated slot already in the list, or by allocating and
// linking a new one.
func (r *Registry) acquireSlot() *hazardSlot {
	if slot := r.tryAcquireInactive(); slot != nil {
		return slot
	}

	for {
		pastHead := r.head.Load()
		slot := &hazardSlot{next: pastHead}
		slot.active.Store(true)
		if r.head.CompareAndSwap(pastHead, slot) {
			return slot
		}
		// Lost the race to install the head: drop the slot we just built
		// and retry. Transient contention only, never surfaced to callers.
	}
}

// tryAcquireInactive walks the list looking for a slot that is currently
// inactive, claiming the first one found by flipping its active flag.
func (r *Registry) tryAcquireInactive() *hazardSlot {
	for node := r.head.Load(); node != nil; node = node.next {
		if node.active.CompareAndSwap(false, true) {
			return node
		}
	}
	return nil
}

// AllHazards returns a snapshot of every address currently protected by an
// active shield. It may miss a protection that has not yet been published,
// but it includes every protection that was visible before the call began.
func (r *Registry) AllHazards() map[uintptr]struct{} {
	hazards := make(map[uintptr]struct{})
	for node := r.head.Load(); node != nil; node = node.next {
		if node.active.Load() {
			hazards[node.hazard.Load()] = struct{}{}
		}
	}
	return hazards
}

// Len reports the total number of slots ever allocated by this registry,
// active or not. It is intended for tests and diagnostics, not the hot
// path.
func (r *Registry) Len() int {
	n := 0
	for node := r.head.Load(); node != nil; node = node.next {
		n++
	}
	return n
}
