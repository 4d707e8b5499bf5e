package bufferpool

import "fmt"

// PoolError wraps a fatal fault: a read or write error from the pool's
// disk collaborator, or an error from the replacer (which fails only
// on programming errors such as an out-of-range frame id). A failed
// DeallocatePage is logged instead.
// Ordinary failure modes (pool exhaustion, double-unpin, deleting a
// pinned page, flushing a non-resident page) are surfaced as plain
// booleans per spec — callers can always retry or route around them.
// A disk I/O error is not one of those: the spec treats it as fatal,
// so it is raised as a panic rather than threaded back through every
// call site as an error return nobody can meaningfully recover from.
type PoolError struct {
	Op  string
	Err error
}

func (e *PoolError) Error() string {
	return fmt.Sprintf("bufferpool: %s: %v", e.Op, e.Err)
}

func (e *PoolError) Unwrap() error { return e.Err }

func fatal(op string, err error) {
	panic(&PoolError{Op: op, Err: err})
}
