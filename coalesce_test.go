package membuddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTryMergeBuddies(t *testing.T) {
	a := newTestAllocator(t, 1<<16)
	resetEmpty(a)

	a.pushFree(0, 4)  // class-4 block at 0
	a.pushFree(16, 4) // its buddy, at 0 ^ 16 = 16

	ok := a.tryMerge(0, 16, 4)
	assert.True(t, ok)
	assert.Equal(t, 0, a.numFree[4])
	assert.Equal(t, 1, a.numFree[5])
}

func TestTryMergeNonAdjacentFails(t *testing.T) {
	a := newTestAllocator(t, 1<<16)
	resetEmpty(a)

	a.pushFree(0, 4)
	a.pushFree(32, 4) // not adjacent to 0 at class 4 (its buddy is 48, not 0)

	ok := a.tryMerge(0, 32, 4)
	assert.False(t, ok)
	assert.Equal(t, 2, a.numFree[4])
}

func TestTryMergeMisalignedFails(t *testing.T) {
	a := newTestAllocator(t, 1<<16)
	resetEmpty(a)

	// 16 and 32 are adjacent (16 bytes apart, class 4) but 16 is not a
	// multiple of 32 (the class-5 parent alignment), so they cannot be
	// the two buddy halves of any class-5 block.
	a.pushFree(16, 4)
	a.pushFree(32, 4)

	ok := a.tryMerge(16, 32, 4)
	assert.False(t, ok)
}

func TestCoalesceSingleStep(t *testing.T) {
	a := newTestAllocator(t, 1<<16)
	resetEmpty(a)

	a.pushFree(0, 4)
	a.pushFree(16, 4)

	a.coalesce(4)
	assert.Equal(t, 0, a.numFree[4])
	assert.Equal(t, 1, a.numFree[5])
}

func TestCoalesceRecursesUpward(t *testing.T) {
	// coalesce only ever looks at the block most recently pushed onto the
	// class it's called on (that's what free() just did) — it does not
	// sweep the whole list for unrelated mergeable pairs. Reproducing
	// that call pattern (push, coalesce, push, coalesce, ...) is what
	// actually chains a merge all the way from class 4 to class 6.
	a := newTestAllocator(t, 1<<16)
	resetEmpty(a)

	a.pushFree(0, 4)
	a.coalesce(4) // no buddy yet

	a.pushFree(16, 4) // buddy of 0
	a.coalesce(4)     // merges into class 5 at offset 0
	assert.Equal(t, 0, a.numFree[4])
	assert.Equal(t, 1, a.numFree[5])

	a.pushFree(32, 4)
	a.coalesce(4) // no buddy yet (32's buddy is 48)

	a.pushFree(48, 4) // buddy of 32
	a.coalesce(4)     // merges to class 5 at 32, which chains into class 6 at 0
	assert.Equal(t, 0, a.numFree[4])
	assert.Equal(t, 0, a.numFree[5])
	assert.Equal(t, 1, a.numFree[6])
}

func TestCoalesceNoBuddyIsNoop(t *testing.T) {
	a := newTestAllocator(t, 1<<16)
	resetEmpty(a)

	a.pushFree(0, 3)
	a.pushFree(64, 3) // far away, not a buddy

	a.coalesce(3)
	assert.Equal(t, 2, a.numFree[3])
	assert.Equal(t, 0, a.numFree[4])
}
