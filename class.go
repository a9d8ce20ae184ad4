package membuddy

import "math/bits"

// classFor returns the smallest size class k such that (1<<k) >= n+headerSize,
// for a requested payload size n >= 1. This is the minimum number of bits
// needed to represent n+headerSize, rounded up when that value is not
// itself a power of two — the same technique unsafex/malloc.getOrderForSize
// uses via bits.Len, adapted from a block-size order to an absolute class
// exponent.
func classFor(n int) int {
	need := n + headerSize
	if need <= 1 {
		return 0
	}
	k := bits.Len(uint(need - 1))
	return k
}
