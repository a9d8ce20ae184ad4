// Package mallocassert holds invariant-checking helpers used by
// membuddy's test suite: byte conservation across size classes, and
// free/used list length agreement with their own counters. Neither
// check needs access to an allocator's unexported fields — the caller
// supplies plain counts and list-walking closures.
package mallocassert

import "github.com/stretchr/testify/assert"

// CheckConservation asserts that sum over classes k of
// (free[k]+used[k]) * (1<<k) equals want — the usable portion of the
// region determined at init. free and used must be indexed 0..M.
func CheckConservation(t assert.TestingT, free, used []int, want int) bool {
	total := 0
	for k := range free {
		total += (free[k] + used[k]) * (1 << uint(k))
	}
	return assert.Equal(t, want, total, "conservation: (free+used)*size across all classes must equal usable region bytes")
}

// CheckListLen walks a list starting at head via next (returning nilVal
// at the end) and asserts its length equals want.
func CheckListLen(t assert.TestingT, name string, head int32, next func(off int32) int32, nilVal int32, want int) bool {
	n := 0
	for cur := head; cur != nilVal; cur = next(cur) {
		n++
		if n > want+1_000_000 {
			break // defensive: a corrupt cyclic list must not hang the test
		}
	}
	return assert.Equal(t, want, n, "list %q length mismatch", name)
}
