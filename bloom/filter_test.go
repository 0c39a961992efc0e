package bloom_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/docpeek/bloom"
	"github.com/stretchr/testify/assert"
)

func TestFilter_AddAndTest(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)

	assert.False(t, f.Test("https://cook.example/loop.html#update"))

	f.Add("https://cook.example/loop.html#update")

	assert.True(t, f.Test("https://cook.example/loop.html#update"))
	assert.False(t, f.Test("https://cook.example/loop.html#draw"))
}

func TestFilter_Seen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, bloom.DefaultFalsePositiveRate)

	assert.False(t, f.Seen("https://cook.example/loop.html"))
	assert.True(t, f.Seen("https://cook.example/loop.html"))
	assert.False(t, f.Seen("https://cook.example/loop.html#update"))
}

func TestFilter_EstimatedCount(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, 0.01)
	assert.Equal(t, uint(0), f.EstimatedCount())

	f.Add("https://cook.example/a.html")
	f.Add("https://cook.example/b.html")
	f.Add("https://cook.example/c.html")
	f.Add("https://cook.example/c.html")

	count := f.EstimatedCount()
	assert.True(t, count >= 2 && count <= 4, "expected count near 3, got %d", count)
}

func TestFilter_ConcurrentSeen(t *testing.T) {
	t.Parallel()

	f := bloom.NewFilter(1000, bloom.DefaultFalsePositiveRate)

	var (
		wg    sync.WaitGroup
		mu    sync.Mutex
		fresh int
	)
	for range 8 {
		wg.Go(func() {
			if !f.Seen("https://cook.example/loop.html#update") {
				mu.Lock()
				fresh++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	assert.Equal(t, 1, fresh)
}

func TestFilter_FalsePositiveRate(t *testing.T) {
	t.Parallel()

	const (
		numItems   = 10000
		fpRate     = 0.01
		testProbes = 10000
	)

	f := bloom.NewFilter(numItems, fpRate)
	for i := range numItems {
		f.Add(fmt.Sprintf("https://cook.example/added.html#s%d", i))
	}

	falsePositives := 0
	for i := range testProbes {
		if f.Test(fmt.Sprintf("https://cook.example/other.html#s%d", i)) {
			falsePositives++
		}
	}

	// Allow twice the configured rate for statistical variance.
	actualRate := float64(falsePositives) / float64(testProbes)
	assert.Less(t, actualRate, 0.02, "false positive rate %f exceeds 2%%", actualRate)
}
