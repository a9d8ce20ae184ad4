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

// Package hostmem hands out the backing []byte regions that
// membuddy.Allocator instances carve into blocks. A buddy allocator only
// decides how to slice a region up; it has no opinion on where that region's
// bytes come from, so that concern lives here, separate from the engine.
package hostmem

import (
	"fmt"

	"github.com/bytedance/gopkg/lang/dirtmake"
	"github.com/bytedance/gopkg/lang/mcache"

	"github.com/cloudwego/membuddy/cache/mempool"
)

// Source picks how a Provider acquires and releases region bytes.
type Source int

const (
	// SourcePool delegates to cache/mempool's size-classed sync.Pool.
	// Best when the caller repeatedly creates and tears down allocators
	// of similar sizes and wants the slab reused instead of freed.
	SourcePool Source = iota

	// SourceMCache delegates to github.com/bytedance/gopkg/lang/mcache,
	// itself a size-classed sync.Pool already tuned and shared process-wide.
	// Best when the process already uses mcache elsewhere and region reuse
	// should share that pool instead of keeping a second one.
	SourceMCache

	// SourceDirty allocates a fresh, uninitialized region every time via
	// dirtmake.Bytes, skipping pooling entirely. Best for one-shot or
	// long-lived allocators where reuse overhead isn't worth paying.
	SourceDirty
)

// maxRegionSize bounds what cache/mempool's pool ladder actually covers
// (128GB of capacity, less the 8-byte footer mempool.Malloc keeps in it);
// requests above it are rejected up front instead of letting
// mempool.Malloc index past its pool table.
const maxRegionSize = 128<<30 - 8

// Provider acquires and releases []byte regions for use as
// membuddy.Allocator backing storage. The zero value is usable directly
// with SourcePool semantics; use NewProvider to pick a different Source.
type Provider struct {
	source Source
}

// NewProvider builds a Provider using the given Source.
func NewProvider(source Source) *Provider {
	return &Provider{source: source}
}

// Acquire returns a region of at least n bytes. membuddy.NewAllocator
// treats the whole of the returned slice as the managed region.
//
// For SourcePool, the returned slice's length is exactly n even though its
// capacity may be larger: cache/mempool keeps a magic footer in the last
// bytes of that capacity to validate Release later. Reslicing up to
// cap(region) would let the allocator's own block headers overwrite that
// footer, so Acquire never does that and callers shouldn't either.
func (p *Provider) Acquire(n int) ([]byte, error) {
	if n <= 0 {
		return nil, fmt.Errorf("hostmem: region size must be positive, got %d", n)
	}
	switch p.source {
	case SourceMCache:
		return mcache.Malloc(n), nil
	case SourceDirty:
		return dirtmake.Bytes(n, n), nil
	default:
		if n > maxRegionSize {
			return nil, fmt.Errorf("hostmem: requested region %d exceeds pooled max %d", n, maxRegionSize)
		}
		return mempool.Malloc(n), nil
	}
}

// Release returns a region previously obtained from Acquire. It is a no-op
// for regions whose Source does not pool (SourceDirty), and safe to call
// with nil.
func (p *Provider) Release(region []byte) {
	if region == nil {
		return
	}
	switch p.source {
	case SourceMCache:
		mcache.Free(region)
	case SourceDirty:
		// nothing to return; let the GC reclaim it
	default:
		mempool.Free(region)
	}
}
