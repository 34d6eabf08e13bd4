package claimcore

import (
	"context"
	"sync"

	"go.uber.org/ratelimit"
)

// DefaultScanWorkers bounds the pool used for bulk read-only queries.
const DefaultScanWorkers = 10

// ScanResult pairs one task's output with its input index.
type ScanResult[T any] struct {
	Index int
	Value T
	Err   error
}

// Scan runs fn over n independent read-only tasks with a bounded worker
// pool, pacing task starts at rps requests per second. Results come back
// in input order. Only safe for read-only, independent operations — never
// for transaction submission, where nonce ordering matters.
func Scan[T any](ctx context.Context, n, workers, rps int, fn func(ctx context.Context, i int) (T, error)) []ScanResult[T] {
	if workers <= 0 {
		workers = DefaultScanWorkers
	}
	if rps <= 0 {
		rps = workers
	}
	rl := ratelimit.New(rps)

	results := make([]ScanResult[T], n)
	idx := make(chan int)

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range idx {
				rl.Take()
				v, err := fn(ctx, i)
				results[i] = ScanResult[T]{Index: i, Value: v, Err: err}
			}
		}()
	}

	for i := 0; i < n; i++ {
		if err := ctx.Err(); err != nil {
			for j := i; j < n; j++ {
				results[j] = ScanResult[T]{Index: j, Err: err}
			}
			close(idx)
			wg.Wait()
			return results
		}
		idx <- i
	}
	close(idx)
	wg.Wait()
	return results
}
