package history

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudwego/membuddy"
)

func TestRecorderEmpty(t *testing.T) {
	rec := NewRecorder(4)
	assert.Equal(t, 0, rec.Len())
	_, ok := rec.Latest()
	assert.False(t, ok)
	_, ok = rec.Oldest()
	assert.False(t, ok)
	assert.Equal(t, 0, rec.PeakUsed())
}

func TestRecorderBelowCapacity(t *testing.T) {
	rec := NewRecorder(4)
	rec.Record(membuddy.Stats{NumBlocksUsed: 1})
	rec.Record(membuddy.Stats{NumBlocksUsed: 2})

	assert.Equal(t, 2, rec.Len())
	latest, ok := rec.Latest()
	require.True(t, ok)
	assert.Equal(t, 2, latest.NumBlocksUsed)

	oldest, ok := rec.Oldest()
	require.True(t, ok)
	assert.Equal(t, 1, oldest.NumBlocksUsed)
}

func TestRecorderWrapsAtCapacity(t *testing.T) {
	rec := NewRecorder(3)
	for i := 1; i <= 5; i++ {
		rec.Record(membuddy.Stats{NumBlocksUsed: i})
	}

	assert.Equal(t, 3, rec.Len())
	latest, _ := rec.Latest()
	assert.Equal(t, 5, latest.NumBlocksUsed)

	oldest, _ := rec.Oldest()
	assert.Equal(t, 3, oldest.NumBlocksUsed)

	var seen []int
	rec.Do(func(s membuddy.Stats) { seen = append(seen, s.NumBlocksUsed) })
	assert.Equal(t, []int{3, 4, 5}, seen)
}

func TestRecorderPeakUsed(t *testing.T) {
	rec := NewRecorder(5)
	for _, v := range []int{2, 9, 4, 1} {
		rec.Record(membuddy.Stats{NumBlocksUsed: v})
	}
	assert.Equal(t, 9, rec.PeakUsed())
}

func TestNewRecorderPanicsOnNonPositiveCapacity(t *testing.T) {
	assert.Panics(t, func() { NewRecorder(0) })
	assert.Panics(t, func() { NewRecorder(-1) })
}
