package membuddy

// tryMerge checks whether the free blocks at offsets x and y, both of
// class k, are buddies: the lower-addressed one must begin at an offset
// divisible by 1<<(k+1), and the two must be exactly adjacent. If so,
// both are unlinked from free list k and the lower one is pushed onto
// free list k+1.
func (a *Allocator) tryMerge(x, y, k int) bool {
	lo, hi := x, y
	if hi < lo {
		lo, hi = hi, lo
	}
	parentSize := 1 << uint(k+1)
	if lo%parentSize != 0 {
		return false
	}
	if hi != lo+(1<<uint(k)) {
		return false
	}
	a.unlinkFree(x)
	a.unlinkFree(y)
	a.pushFree(lo, k+1)
	return true
}

// coalesce scans free list k for any pair of buddies. The reference
// policy (spec'd, not just an implementation choice): walk the list from
// the head, try to merge each other element with the head, and on the
// first success recurse into k+1 and stop. Splitting never triggers
// this; it runs only once, right after free() pushes a block onto list k.
func (a *Allocator) coalesce(k int) {
	if k >= a.m {
		return
	}
	head := a.freeHead[k]
	if head == noOffset {
		return
	}
	for cur := a.headerAt(int(head)).next; cur != noOffset; {
		next := a.headerAt(int(cur)).next
		if a.tryMerge(int(cur), int(head), k) {
			a.coalesce(k + 1)
			return
		}
		cur = next
	}
}
