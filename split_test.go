package membuddy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplit(t *testing.T) {
	a := newTestAllocator(t, 1<<16)
	resetEmpty(a)

	a.pushFree(0, 5) // one 32-byte-class block at offset 0
	a.split(5)

	assert.Equal(t, 0, a.numFree[5])
	assert.Equal(t, 2, a.numFree[4])

	// halves occupy the same bytes the parent did, at the correct offsets
	offs := map[int]bool{}
	offs[a.popFree(4)] = true
	offs[a.popFree(4)] = true
	assert.True(t, offs[0])
	assert.True(t, offs[1<<4])
}

func TestSplitRepeatedlyLeavesAStaircase(t *testing.T) {
	// Splitting the same path down from class 6 to class 0, one level at
	// a time (as Allocate does), leaves one spare free block at every
	// intermediate class and two at the bottom — never more, since each
	// split only consumes the single block it just produced.
	a := newTestAllocator(t, 1<<16)
	resetEmpty(a)

	a.pushFree(0, 6)
	for k := 6; k > 1; k-- {
		a.split(k)
	}
	assert.Equal(t, 0, a.numFree[6])
	for k := 2; k < 6; k++ {
		assert.Equal(t, 1, a.numFree[k], "class %d", k)
	}
	assert.Equal(t, 2, a.numFree[1])

	a.split(1)
	assert.Equal(t, 1, a.numFree[1])
	assert.Equal(t, 2, a.numFree[0])
}
