// Package membuddy implements a buddy-system memory allocator over a
// single, caller-supplied backing region.
//
// The allocator partitions the region into power-of-two blocks, splits a
// block downward to satisfy a request that doesn't need the whole thing,
// and coalesces freed buddies back upward. It owns no memory of its own:
// the caller hands it a []byte at construction and every subsequent
// Allocate returns a sub-slice of that same region.
//
// An Allocator is single-threaded and non-reentrant. Callers must
// serialize all method calls on one instance externally; nothing here
// takes a lock.
package membuddy
