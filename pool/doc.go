// Package pool implements a fixed-size worker pool dispatched over an
// unbounded, internally-synchronized job queue, with job-count tracking so
// callers can wait for everything submitted so far to finish.
//
// The pool does not resize itself and provides no fairness guarantee among
// workers; it exists to run arbitrary closures with bounded parallelism and
// to let a caller block until the backlog drains.
package pool
