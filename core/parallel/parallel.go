// Package parallel splits row-wise work across CPU cores.
package parallel

import (
	"runtime"
	"sync"
)

// DefaultRowThreshold is the row count below which work runs on the
// calling goroutine. Scoring a few thousand rows is cheaper than the
// goroutine fan-out.
const DefaultRowThreshold = 4096

// Parallelize splits [0, items) into at most runtime.NumCPU() contiguous
// ranges and calls fn once per range concurrently. Each index is covered
// exactly once, and fn must only write to the rows of its own range.
func Parallelize(items int, fn func(start, end int)) {
	if items <= 0 {
		return
	}

	workers := runtime.NumCPU()
	if workers > items {
		workers = items
	}
	chunk := (items + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < items; start += chunk {
		end := start + chunk
		if end > items {
			end = items
		}
		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}
	wg.Wait()
}

// ParallelizeWithThreshold runs fn(0, items) directly when items <= threshold
// and falls back to Parallelize otherwise.
func ParallelizeWithThreshold(items int, threshold int, fn func(start, end int)) {
	if items <= 0 {
		return
	}
	if items <= threshold {
		fn(0, items)
		return
	}
	Parallelize(items, fn)
}

// Rows applies fn to every row index in [0, rows) using DefaultRowThreshold.
func Rows(rows int, fn func(i int)) {
	ParallelizeWithThreshold(rows, DefaultRowThreshold, func(start, end int) {
		for i := start; i < end; i++ {
			fn(i)
		}
	})
}
