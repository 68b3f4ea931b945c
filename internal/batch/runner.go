// internal/batch/runner.go
package batch

import (
	"context"
	"sync"

	"github.com/law-makers/websearch/pkg/models"
	"github.com/rs/zerolog/log"
)

// Searcher is what the runner drives; search.Router satisfies it
type Searcher interface {
	Search(ctx context.Context, req models.SearchRequest) ([]models.SearchResult, error)
}

// Runner executes many search requests with bounded concurrency
type Runner struct {
	searcher    Searcher
	concurrency int
}

// New creates a Runner.
// If concurrency <= 0, it auto-tunes based on system resources
func New(searcher Searcher, concurrency int) *Runner {
	if concurrency <= 0 {
		concurrency = OptimalConcurrency()
	}
	return &Runner{
		searcher:    searcher,
		concurrency: concurrency,
	}
}

// Concurrency returns the worker limit
func (r *Runner) Concurrency() int {
	return r.concurrency
}

// Run processes requests concurrently and streams one result per request.
// Requests are dispatched round-robin across engines. Once ctx is done the
// remaining requests are reported with the context error instead of being run.
// The channel is closed after every request has a result.
func (r *Runner) Run(ctx context.Context, requests []models.SearchRequest) <-chan models.BatchResult {
	results := make(chan models.BatchResult, len(requests))
	if ctx == nil {
		ctx = context.Background()
	}

	order := Interleave(requests)

	go func() {
		var wg sync.WaitGroup
		sem := make(chan struct{}, r.concurrency)

		for pos, idx := range order {
			if ctx.Err() == nil {
				select {
				case <-ctx.Done():
				case sem <- struct{}{}:
				}
			}
			if ctx.Err() != nil {
				log.Debug().
					Int("skipped", len(order)-pos).
					Msg("Batch cancelled, skipping remaining requests")
				for _, rest := range order[pos:] {
					results <- models.BatchResult{Index: rest, Request: requests[rest], Error: ctx.Err()}
				}
				wg.Wait()
				close(results)
				return
			}

			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				defer func() { <-sem }()

				res, err := r.searcher.Search(ctx, requests[i])
				results <- models.BatchResult{
					Index:   i,
					Request: requests[i],
					Results: res,
					Error:   err,
				}
			}(idx)
		}

		wg.Wait()
		close(results)
	}()

	return results
}
