package answer

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/panjf2000/ants/v2"
)

// AnswerBatch answers every query against the same text on a bounded worker
// pool. Results are returned in query order. Once ctx is done no further
// queries are submitted and ctx.Err() is returned.
func (e *Engine) AnswerBatch(ctx context.Context, text string, queries []string, workers int) ([]Result, error) {
	if workers <= 0 {
		workers = runtime.NumCPU() / 2
		if workers < 1 {
			workers = 1
		}
	}
	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("create answer pool: %w", err)
	}
	defer pool.Release()

	results := make([]Result, len(queries))
	var wg sync.WaitGroup
	for i, q := range queries {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return nil, err
		}
		wg.Add(1)
		i, q := i, q
		if err := pool.Submit(func() {
			defer wg.Done()
			results[i] = e.Answer(q, text)
		}); err != nil {
			wg.Done()
			wg.Wait()
			return nil, fmt.Errorf("submit query %d: %w", i, err)
		}
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return results, nil
}
