// Package hazard implements a hazard-pointer safe memory reclamation (SMR)
// scheme: a grow-only registry of hazard slots, shields that publish the
// addresses a goroutine is currently reading, and a per-goroutine retired
// list that reclaims objects once no shield still protects them.
//
// The registry never frees a slot once allocated; slots are recycled by
// flipping an active flag, which keeps a *Shield's slot pointer valid for
// the lifetime of the process. This is the same arena-plus-recycling shape
// used by lock-free/hazard-pointer schemes generally: removing entries from
// the list, rather than deactivating them, would break every shield holding
// a direct reference to a slot.
package hazard
