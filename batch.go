package tutorialsite

import (
	"context"
	"sync"
)

// runBatch applies fn to every item using up to workers goroutines.
// Results are stored by input index, so their order matches items
// regardless of completion order. fn observes ctx itself.
func runBatch[T, R any](ctx context.Context, workers int, items []T, fn func(context.Context, T) R) []R {
	if len(items) == 0 {
		return nil
	}

	concurrency := min(workers, len(items))

	results := make([]R, len(items))
	var wg sync.WaitGroup
	jobs := make(chan int, len(items))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = fn(ctx, items[idx])
			}
		}()
	}

	for i := range items {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}
