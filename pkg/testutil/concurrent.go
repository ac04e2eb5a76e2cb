package testutil

import (
	"context"
	"sync"
	"sync/atomic"

	dErrors "moortracker/pkg/domain-errors"
)

// ConcurrentResult tracks outcomes of concurrent test operations.
// Failures are counted by domain error code; errors without one count as internal.
type ConcurrentResult struct {
	Successes int32
	Failures  map[dErrors.Code]int32
}

// Total returns the total number of operations executed.
func (r *ConcurrentResult) Total() int32 {
	total := r.Successes
	for _, n := range r.Failures {
		total += n
	}
	return total
}

// RunConcurrent executes fn in parallel goroutines, released together, and
// collects results.
func RunConcurrent(goroutines int, fn func(idx int) error) *ConcurrentResult {
	var wg sync.WaitGroup
	var mu sync.Mutex
	var successes atomic.Int32
	failures := make(map[dErrors.Code]int32)
	start := make(chan struct{})

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			<-start
			err := fn(idx)
			if err == nil {
				successes.Add(1)
				return
			}
			code := dErrors.CodeOf(err, dErrors.CodeInternal)
			mu.Lock()
			failures[code]++
			mu.Unlock()
		}(i)
	}

	close(start)
	wg.Wait()

	return &ConcurrentResult{
		Successes: successes.Load(),
		Failures:  failures,
	}
}

// RunConcurrentCtx executes fn in parallel goroutines with context support.
func RunConcurrentCtx(ctx context.Context, goroutines int, fn func(ctx context.Context, idx int) error) *ConcurrentResult {
	return RunConcurrent(goroutines, func(idx int) error {
		return fn(ctx, idx)
	})
}
