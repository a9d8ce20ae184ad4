package membuddy

import (
	"fmt"
	"strings"
)

// ClassStats reports the free/used block counts at one size class.
type ClassStats struct {
	Class int
	Free  int
	Used  int
}

// Stats is a read-only snapshot of the allocator's state at the moment
// Stats() was called. Taking a snapshot performs no mutation and no list
// reordering.
type Stats struct {
	NumBlocksFree int
	NumBlocksUsed int

	// SmallestBlockFree/LargestBlockFree are the payload sizes (1<<k -
	// headerSize) of the smallest/largest class with a free block, or 0
	// if there are no free blocks. SmallestBlockUsed/LargestBlockUsed are
	// the analogous values for used blocks.
	SmallestBlockFree int
	LargestBlockFree  int
	SmallestBlockUsed int
	LargestBlockUsed  int

	// PerClass holds one entry per size class from 0 to the allocator's
	// max class, in that order.
	PerClass []ClassStats
}

func payloadSize(k int) int {
	return (1 << uint(k)) - headerSize
}

// Stats scans every free and used list and reports counts and the
// smallest/largest occupied classes. O(M).
func (a *Allocator) Stats() Stats {
	var s Stats
	s.PerClass = make([]ClassStats, a.m+1)

	for k := 0; k <= a.m; k++ {
		nf, nu := a.numFree[k], a.numUsed[k]
		s.PerClass[k] = ClassStats{Class: k, Free: nf, Used: nu}
		s.NumBlocksFree += nf
		s.NumBlocksUsed += nu
	}

	for k := 0; k <= a.m; k++ {
		if a.numFree[k] > 0 {
			s.SmallestBlockFree = payloadSize(k)
			break
		}
	}
	for k := a.m; k >= 0; k-- {
		if a.numFree[k] > 0 {
			s.LargestBlockFree = payloadSize(k)
			break
		}
	}
	for k := 0; k <= a.m; k++ {
		if a.numUsed[k] > 0 {
			s.SmallestBlockUsed = payloadSize(k)
			break
		}
	}
	for k := a.m; k >= 0; k-- {
		if a.numUsed[k] > 0 {
			s.LargestBlockUsed = payloadSize(k)
			break
		}
	}

	return s
}

// DebugString renders a table of class -> (true size, free count, used
// count), the Go equivalent of the original C driver's mem_print table.
func (a *Allocator) DebugString() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-2s | %-12s | %-6s | %-6s\n", "k", "true size", "free", "used")
	for k := 0; k <= a.m; k++ {
		fmt.Fprintf(&b, "%2d | %12d | %6d | %6d\n", k, 1<<uint(k), a.numFree[k], a.numUsed[k])
	}
	return b.String()
}
