// Package listset implements a concurrent sorted set over a singly linked
// list, using lock coupling ("hand-over-hand" locking): a traversal always
// acquires the next node's lock before releasing the current one, so a node
// being examined can never be unlinked out from under the goroutine
// examining it.
//
// The list deliberately does not use lock-free techniques - every mutation
// and every traversal step holds at least one lock. It is sized for
// workloads where contention is moderate and simplicity matters more than
// avoiding lock overhead.
package listset
