package membuddy

import "unsafe"

// headerSize is the size in bytes of the in-band header every block
// carries at its base address: a size-class field plus the prev/next
// links of whichever list (free or used) currently holds the block.
//
// The payload of a class-k block is (1<<k)-headerSize bytes.
const headerSize = 12

// noOffset marks an absent prev/next link, i.e. the end of a list.
const noOffset = -1

// blockHeader is the in-band record at the base of every block. It is
// never constructed directly; headerAt reinterprets headerSize bytes of
// the arena in place.
type blockHeader struct {
	class int32
	prev  int32
	next  int32
}

// headerAt reinterprets the headerSize bytes at arena offset off as a
// *blockHeader. off must be the base of a block, not a payload pointer.
func (a *Allocator) headerAt(off int) *blockHeader {
	return (*blockHeader)(unsafe.Add(a.base, off))
}

// pushFree links the block at off onto the head of free list k and
// stamps its class field. O(1).
func (a *Allocator) pushFree(off, k int) {
	h := a.headerAt(off)
	h.class = int32(k)
	h.prev = noOffset
	h.next = a.freeHead[k]
	if a.freeHead[k] != noOffset {
		a.headerAt(int(a.freeHead[k])).prev = int32(off)
	}
	a.freeHead[k] = int32(off)
	a.numFree[k]++
}

// popFree removes and returns the head of free list k. Precondition:
// numFree[k] >= 1.
func (a *Allocator) popFree(k int) int {
	off := int(a.freeHead[k])
	h := a.headerAt(off)
	a.freeHead[k] = h.next
	if h.next != noOffset {
		a.headerAt(int(h.next)).prev = noOffset
	}
	a.numFree[k]--
	return off
}

// unlinkFree removes the block at off from its current free list using
// only its own links. O(1).
func (a *Allocator) unlinkFree(off int) {
	h := a.headerAt(off)
	k := int(h.class)
	if h.prev != noOffset {
		a.headerAt(int(h.prev)).next = h.next
	} else {
		a.freeHead[k] = h.next
	}
	if h.next != noOffset {
		a.headerAt(int(h.next)).prev = h.prev
	}
	a.numFree[k]--
}

// pushUsed links the block at off onto the head of used list k and
// stamps its class field. O(1).
func (a *Allocator) pushUsed(off, k int) {
	h := a.headerAt(off)
	h.class = int32(k)
	h.prev = noOffset
	h.next = a.usedHead[k]
	if a.usedHead[k] != noOffset {
		a.headerAt(int(a.usedHead[k])).prev = int32(off)
	}
	a.usedHead[k] = int32(off)
	a.numUsed[k]++
}

// unlinkUsed removes the block at off from its current used list using
// only its own links. O(1).
func (a *Allocator) unlinkUsed(off int) {
	h := a.headerAt(off)
	k := int(h.class)
	if h.prev != noOffset {
		a.headerAt(int(h.prev)).next = h.next
	} else {
		a.usedHead[k] = h.next
	}
	if h.next != noOffset {
		a.headerAt(int(h.next)).prev = h.prev
	}
	a.numUsed[k]--
}
