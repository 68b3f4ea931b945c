// internal/batch/concurrency.go
package batch

import (
	"runtime"
)

// maxConcurrency caps auto-tuned concurrency. Search engines throttle
// aggressively, so this stays far below what the network could carry.
const maxConcurrency = 16

// OptimalConcurrency calculates a worker count for I/O bound searches
func OptimalConcurrency() int {
	numCPU := runtime.NumCPU()

	optimal := numCPU * 2
	if optimal > maxConcurrency {
		optimal = maxConcurrency
	}
	if optimal < 1 {
		optimal = 1
	}
	return optimal
}
