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

// Command membuddydemo runs several independent buddy allocators
// concurrently, one per goroutine, each churning through random
// allocate/free traffic against its own private region. membuddy.Allocator
// itself is not safe for concurrent use by design, so this demo keeps that
// contract: every goroutine owns exactly one Allocator for its entire
// lifetime, and pool-level concurrency comes from running many of them
// side by side rather than sharing one.
package main

import (
	"context"
	"flag"
	"log"
	"math/rand"
	"sync"
	"time"

	"github.com/cloudwego/membuddy"
	"github.com/cloudwego/membuddy/concurrency/gopool"
	"github.com/cloudwego/membuddy/history"
	"github.com/cloudwego/membuddy/hostmem"
)

func main() {
	var (
		workers    = flag.Int("workers", 8, "number of independent allocators to run")
		regionSize = flag.Int("region", 1<<20, "bytes per allocator's backing region")
		iterations = flag.Int("iterations", 20000, "alloc/free operations per worker")
		maxAlloc   = flag.Int("max-alloc", 2048, "largest single allocation size requested")
	)
	flag.Parse()

	pool := gopool.NewGoPool("membuddydemo", &gopool.Option{
		MaxIdleWorkers: *workers,
		WorkerMaxAge:   time.Minute,
		TaskChanBuffer: *workers,
	})
	pool.SetPanicHandler(func(ctx context.Context, r interface{}) {
		log.Printf("membuddydemo: worker %v panicked: %v", ctx.Value(workerIDKey{}), r)
	})

	provider := hostmem.NewProvider(hostmem.SourcePool)

	var wg sync.WaitGroup
	wg.Add(*workers)
	for i := 0; i < *workers; i++ {
		id := i
		ctx := context.WithValue(context.Background(), workerIDKey{}, id)
		pool.CtxGo(ctx, func() {
			defer wg.Done()
			runWorker(id, provider, *regionSize, *iterations, *maxAlloc)
		})
	}
	wg.Wait()
}

type workerIDKey struct{}

// runWorker drives one Allocator through a random sequence of allocations
// and frees, recording a Stats snapshot after every operation, then reports
// a summary. It never touches another worker's Allocator or region.
func runWorker(id int, provider *hostmem.Provider, regionSize, iterations, maxAlloc int) {
	region, err := provider.Acquire(regionSize)
	if err != nil {
		log.Printf("worker %d: acquire region: %v", id, err)
		return
	}
	defer provider.Release(region)

	a, err := membuddy.NewAllocator(region)
	if err != nil {
		log.Printf("worker %d: new allocator: %v", id, err)
		return
	}

	rec := history.NewRecorder(256)
	rng := rand.New(rand.NewSource(int64(id) + 1))

	var live [][]byte
	for i := 0; i < iterations; i++ {
		if len(live) > 0 && rng.Intn(2) == 0 {
			idx := rng.Intn(len(live))
			a.Free(live[idx])
			live[idx] = live[len(live)-1]
			live = live[:len(live)-1]
		} else {
			sz := 1 + rng.Intn(maxAlloc)
			if p := a.Allocate(sz); p != nil {
				live = append(live, p)
			}
		}
		rec.Record(a.Stats())
	}
	for _, p := range live {
		a.Free(p)
	}

	final := a.Stats()
	log.Printf("worker %d: peak blocks used=%d, final used=%d, final free=%d",
		id, rec.PeakUsed(), final.NumBlocksUsed, final.NumBlocksFree)
}
