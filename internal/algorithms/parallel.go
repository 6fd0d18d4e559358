package algorithms

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

var maxWorkers atomic.Int32

// SetMaxWorkers bounds how many goroutines an operation fans rows out to.
// n <= 0 means GOMAXPROCS. Output never depends on this value.
func SetMaxWorkers(n int) {
	maxWorkers.Store(int32(n))
}

// MaxWorkers returns the effective worker count
func MaxWorkers() int {
	if n := int(maxWorkers.Load()); n > 0 {
		return n
	}
	return runtime.GOMAXPROCS(0)
}

// parallelRows runs fn over contiguous row ranges [start, end) covering [0, rows).
// fn must only write output rows inside its range.
func parallelRows(rows int, fn func(start, end int)) {
	if rows <= 0 {
		return
	}

	workers := min(MaxWorkers(), rows)
	if workers == 1 {
		fn(0, rows)
		return
	}

	// more chunks than workers so uneven rows balance out
	chunks := min(workers*4, rows)
	chunkSize := (rows + chunks - 1) / chunks

	var g errgroup.Group
	g.SetLimit(workers)
	for start := 0; start < rows; start += chunkSize {
		start := start
		end := min(start+chunkSize, rows)
		g.Go(func() error {
			fn(start, end)
			return nil
		})
	}
	_ = g.Wait() // fn cannot fail
}
