package hazard

import "unsafe"

// retiredThreshold is the maximum number of pending retirements before
// Collect is triggered automatically.
const retiredThreshold = 64

type retiredEntry struct {
	addr   uintptr
	delete func()
}

// RetiredList is a goroutine-local queue of logically-removed pointers
// awaiting safe reclamation. It is not safe for concurrent use - create one
// per worker goroutine and never share it, the same way the registry it
// reads from is the only part of this subsystem meant to be shared.
type RetiredList struct {
	registry *Registry
	entries  []retiredEntry
}

// NewRetiredList creates a retired list that reclaims against r.
func NewRetiredList(r *Registry) *RetiredList {
	return &RetiredList{registry: r}
}

// Retire schedules ptr for reclamation via deleter, which is invoked exactly
// once, only after Collect observes that no shield protects ptr's address.
//
// The caller must guarantee that ptr has already been made unreachable from
// any shared structure a Shield could still be traversing, and that deleter
// is the correct cleanup for ptr (closing over ptr keeps it reachable to the
// Go garbage collector, so the uintptr bookkeeping below never outlives the
// object it denotes).
func Retire[T any](rl *RetiredList, ptr *T, deleter func(*T)) {
	rl.entries = append(rl.entries, retiredEntry{
		addr:   uintptr(unsafe.Pointer(ptr)),
		delete: func() { deleter(ptr) },
	})
	if len(rl.entries) >= retiredThreshold {
		rl.Collect()
	}
}

// Collect frees every retired pointer that is not currently protected by
// any shield registered with rl's registry, keeping the rest for a future
// call.
func (rl *RetiredList) Collect() {
	hazards := rl.registry.AllHazards()

	remaining := rl.entries[:0]
	for _, e := range rl.entries {
		if _, protected := hazards[e.addr]; protected {
			remaining = append(remaining, e)
			continue
		}
		e.delete()
	}
	rl.entries = remaining
}

// Close drains the retired list by repeatedly calling Collect until it is
// empty. This is a pedagogical choice: a production reclaimer would migrate
// any leftovers to a global list instead of looping forever when a
// protection is held indefinitely.
func (rl *RetiredList) Close() {
	for len(rl.entries) > 0 {
		rl.Collect()
	}
}
