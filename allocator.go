package membuddy

import (
	"fmt"
	"math/bits"
	"unsafe"
)

// Allocator is a buddy-system allocator over a single caller-supplied
// backing region. It is single-threaded and non-reentrant: callers must
// serialize every method call on one instance externally.
//
// The zero value is not usable; construct one with NewAllocator.
type Allocator struct {
	region []byte
	base   unsafe.Pointer
	length int
	m      int // max size class exponent: 1<<m is the largest block size

	freeHead []int32
	usedHead []int32
	numFree  []int
	numUsed  []int
}

// NewAllocator partitions region into a buddy allocator. The region must
// be longer than the fixed per-block header (headerSize bytes) or no
// block could ever be carved out of it.
func NewAllocator(region []byte) (*Allocator, error) {
	if len(region) <= headerSize {
		return nil, fmt.Errorf("membuddy: region length %d must exceed header size %d", len(region), headerSize)
	}
	a := &Allocator{
		region: region,
		base:   unsafe.Pointer(&region[0]),
		length: len(region),
		m:      bits.Len(uint(len(region))) - 1,
	}
	a.resetState()
	return a, nil
}

// Reset returns the allocator to the condition NewAllocator left it in for the same
// backing region: every outstanding allocation is discarded (not
// zeroed — the caller-supplied bytes are left as-is) and the free lists
// are rebuilt from scratch via the same decomposition NewAllocator used.
func (a *Allocator) Reset() {
	a.resetState()
}

// resetState clears all lists and counters and re-decomposes the region
// into its initial set of maximal free blocks.
func (a *Allocator) resetState() {
	n := a.m + 1
	a.freeHead = make([]int32, n)
	a.usedHead = make([]int32, n)
	a.numFree = make([]int, n)
	a.numUsed = make([]int, n)
	for k := 0; k < n; k++ {
		a.freeHead[k] = noOffset
		a.usedHead[k] = noOffset
	}

	cursor := 0
	for i := a.m; i >= 0; i-- {
		blockSize := 1 << uint(i)
		if blockSize <= headerSize {
			break // remaining bits are all smaller; unusable tail
		}
		if a.length&blockSize != 0 {
			a.pushFree(cursor, i)
			cursor += blockSize
		}
	}
}

// MaxAlloc returns the largest payload size that could possibly be
// returned by Allocate: region length minus the header, an upper bound
// achievable only when the region length is itself a power of two.
func (a *Allocator) MaxAlloc() int {
	return a.length - headerSize
}

// Allocate returns a payload slice of at least n bytes, or nil if n is
// zero or no free class at or above the required one is available.
func (a *Allocator) Allocate(n int) []byte {
	if n <= 0 {
		return nil
	}
	r := classFor(n)
	if r > a.m {
		return nil
	}

	k := r
	for a.numFree[k] == 0 {
		k++
		if k > a.m {
			return nil
		}
	}

	for k > r {
		a.split(k)
		k--
	}

	off := a.popFree(r)
	a.pushUsed(off, r)

	blockSize := 1 << uint(r)
	payload := unsafe.Slice((*byte)(unsafe.Add(a.base, off+headerSize)), blockSize-headerSize)
	return payload[:n]
}

// Free returns a payload pointer previously returned by Allocate to the
// allocator. Freeing nil is a no-op. Freeing a pointer not produced by
// Allocate, or freeing the same pointer twice, is undefined behavior —
// Free performs no validation.
func (a *Allocator) Free(p []byte) {
	if p == nil {
		return
	}
	off := int(uintptr(unsafe.Pointer(&p[0]))-uintptr(a.base)) - headerSize

	k := int(a.headerAt(off).class)
	a.unlinkUsed(off)
	a.pushFree(off, k)
	a.coalesce(k)
}
