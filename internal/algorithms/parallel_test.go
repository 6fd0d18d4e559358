package algorithms

import (
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParallelRowsCoversEachRowOnce(t *testing.T) {
	t.Cleanup(func() { SetMaxWorkers(0) })

	for _, tc := range []struct{ rows, workers int }{
		{1, 4}, {7, 1}, {7, 3}, {64, 8}, {100, 7}, {3, 16},
	} {
		t.Run(fmt.Sprintf("rows=%d/workers=%d", tc.rows, tc.workers), func(t *testing.T) {
			SetMaxWorkers(tc.workers)
			visits := make([]atomic.Int32, tc.rows)
			parallelRows(tc.rows, func(start, end int) {
				for y := start; y < end; y++ {
					visits[y].Add(1)
				}
			})
			for y := range visits {
				assert.Equal(t, int32(1), visits[y].Load(), "row %d", y)
			}
		})
	}
}

func TestParallelRowsRespectsWorkerLimit(t *testing.T) {
	t.Cleanup(func() { SetMaxWorkers(0) })
	SetMaxWorkers(3)

	var active, peak atomic.Int32
	parallelRows(60, func(start, end int) {
		n := active.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(time.Millisecond)
		active.Add(-1)
	})

	assert.LessOrEqual(t, peak.Load(), int32(3))
	assert.GreaterOrEqual(t, peak.Load(), int32(1))
}

func TestParallelRowsNoRows(t *testing.T) {
	called := false
	parallelRows(0, func(start, end int) { called = true })
	assert.False(t, called)
}
