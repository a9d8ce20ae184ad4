package membuddy

// split removes the head of free list k and turns it into two free
// blocks of class k-1: the low half keeps the original offset, the high
// half begins halfway through it. Both halves are pushed onto free list
// k-1. No coalesce is attempted afterward — that would just undo the
// split the caller is about to consume one half of.
//
// Precondition: numFree[k] >= 1 and k >= 1.
func (a *Allocator) split(k int) {
	lo := a.popFree(k)
	hi := lo + (1 << uint(k-1))
	a.pushFree(lo, k-1)
	a.pushFree(hi, k-1)
}
