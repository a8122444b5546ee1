// Package parallel runs data-parallel dispatch grids over a fixed pool of
// goroutines.
package parallel

import (
	"runtime"
	"sync"
	"sync/atomic"
)

// Pool executes dispatch grids: n independent work items identified by
// index, one invocation per index, with no ordering guarantees between
// items. Dispatch blocks until the whole grid has finished, which is the
// only synchronization point between phases.
//
// Thread safety: a Pool is safe for sequential Dispatch calls from one
// goroutine; items of a single grid run concurrently.
type Pool struct {
	workers int
}

// New creates a pool sizing its worker count to GOMAXPROCS when workers
// is 0 or negative.
func New(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{workers: workers}
}

// Workers returns the number of concurrent workers a grid is spread over.
func (p *Pool) Workers() int { return p.workers }

// Dispatch invokes fn(i) once for every i in [0, n), spread across the
// pool's workers, and returns once every invocation has completed. Workers
// claim indices from a shared counter so uneven item costs balance out.
func (p *Pool) Dispatch(n int, fn func(i int)) {
	if n <= 0 {
		return
	}
	workers := p.workers
	if workers > n {
		workers = n
	}
	if workers == 1 {
		for i := 0; i < n; i++ {
			fn(i)
		}
		return
	}

	var next atomic.Int64
	var wg sync.WaitGroup

	wg.Add(workers)
	for w := 0; w < workers; w++ {
		go func() {
			defer wg.Done()
			for {
				i := next.Add(1) - 1
				if i >= int64(n) {
					return
				}
				fn(int(i))
			}
		}()
	}
	wg.Wait()
}
