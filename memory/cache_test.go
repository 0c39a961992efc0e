package memory_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/docpeek/memory"
	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {
	t.Parallel()

	t.Run("returns absent for unknown key", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCache()

		_, ok := c.Get("https://cook.example/a.html")

		assert.False(t, ok)
		assert.Equal(t, 0, c.Len())
	})

	t.Run("returns stored preview", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCache()
		c.Set("https://cook.example/a.html#intro", "A short summary.")

		text, ok := c.Get("https://cook.example/a.html#intro")

		assert.True(t, ok)
		assert.Equal(t, "A short summary.", text)
	})

	t.Run("keys are exact strings", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCache()
		c.Set("https://cook.example/a/", "slash")

		_, ok := c.Get("https://cook.example/a")

		assert.False(t, ok)
	})

	t.Run("entries are write-once", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCache()
		c.Set("k", "first")
		c.Set("k", "second")

		text, _ := c.Get("k")

		assert.Equal(t, "first", text)
		assert.Equal(t, 1, c.Len())
	})

	t.Run("safe for concurrent use", func(t *testing.T) {
		t.Parallel()

		c := memory.NewCache()
		var wg sync.WaitGroup
		for i := 0; i < 50; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				key := fmt.Sprintf("k%d", i%10)
				c.Set(key, "v")
				_, _ = c.Get(key)
			}(i)
		}
		wg.Wait()

		assert.Equal(t, 10, c.Len())
	})
}
