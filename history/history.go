/*
 * Copyright 2024 CloudWeGo Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package history keeps a fixed-size trail of membuddy.Stats snapshots, so
// callers can watch fragmentation and occupancy trend across a run instead
// of only seeing the allocator's current state.
package history

import (
	"github.com/cloudwego/membuddy"
	"github.com/cloudwego/membuddy/container/ring"
)

// Recorder stores the last capacity Stats snapshots taken from an
// Allocator, oldest overwritten first. It is not safe for concurrent use,
// matching membuddy.Allocator's own single-threaded contract.
type Recorder struct {
	r        *ring.Ring[membuddy.Stats]
	cursor   int
	count    int
	capacity int
}

// NewRecorder creates a Recorder that retains up to capacity snapshots.
// capacity must be positive.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		panic("history: capacity must be positive")
	}
	return &Recorder{
		r:        ring.NewFromSlice(make([]membuddy.Stats, capacity)),
		capacity: capacity,
	}
}

// Record appends a new snapshot, overwriting the oldest one once the
// Recorder is at capacity.
func (rec *Recorder) Record(s membuddy.Stats) {
	item, _ := rec.r.Get(rec.cursor)
	*item.Pointer() = s
	rec.cursor = (rec.cursor + 1) % rec.capacity
	if rec.count < rec.capacity {
		rec.count++
	}
}

// Len returns the number of snapshots currently retained.
func (rec *Recorder) Len() int {
	return rec.count
}

// Latest returns the most recently recorded snapshot and true, or the zero
// Stats and false if nothing has been recorded yet.
func (rec *Recorder) Latest() (membuddy.Stats, bool) {
	if rec.count == 0 {
		return membuddy.Stats{}, false
	}
	idx := (rec.cursor - 1 + rec.capacity) % rec.capacity
	item, _ := rec.r.Get(idx)
	return item.Value(), true
}

// Oldest returns the oldest retained snapshot and true, or the zero Stats
// and false if nothing has been recorded yet.
func (rec *Recorder) Oldest() (membuddy.Stats, bool) {
	if rec.count == 0 {
		return membuddy.Stats{}, false
	}
	var idx int
	if rec.count < rec.capacity {
		idx = 0
	} else {
		idx = rec.cursor
	}
	item, _ := rec.r.Get(idx)
	return item.Value(), true
}

// Do calls f once per retained snapshot, oldest first.
func (rec *Recorder) Do(f func(membuddy.Stats)) {
	if rec.count == 0 {
		return
	}
	start := 0
	if rec.count == rec.capacity {
		start = rec.cursor
	}
	for i := 0; i < rec.count; i++ {
		idx := (start + i) % rec.capacity
		item, _ := rec.r.Get(idx)
		f(item.Value())
	}
}

// PeakUsed returns the largest NumBlocksUsed seen across all retained
// snapshots, or 0 if nothing has been recorded yet.
func (rec *Recorder) PeakUsed() int {
	peak := 0
	rec.Do(func(s membuddy.Stats) {
		if s.NumBlocksUsed > peak {
			peak = s.NumBlocksUsed
		}
	})
	return peak
}
