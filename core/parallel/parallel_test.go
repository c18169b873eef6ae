package parallel

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParallelize_CoversEveryIndexOnce(t *testing.T) {
	for _, n := range []int{0, 1, 7, 1000, 10007} {
		hits := make([]int32, n)
		Parallelize(n, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("n=%d: index %d visited %d times", n, i, h)
			}
		}
	}
}

func TestParallelizeWithThreshold_Sequential(t *testing.T) {
	calls := 0
	ParallelizeWithThreshold(10, 100, func(start, end int) {
		calls++
		assert.Equal(t, 0, start)
		assert.Equal(t, 10, end)
	})
	assert.Equal(t, 1, calls)

	ParallelizeWithThreshold(0, 100, func(start, end int) {
		t.Fatal("fn must not be called for zero items")
	})
}

func TestRows(t *testing.T) {
	n := DefaultRowThreshold*2 + 3
	out := make([]float64, n)
	Rows(n, func(i int) { out[i] = float64(i) * 2 })
	for i, v := range out {
		if v != float64(i)*2 {
			t.Fatalf("row %d = %v", i, v)
		}
	}
}
