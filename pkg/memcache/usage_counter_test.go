package mem

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestUsageCountersIncrement(t *testing.T) {
	c := NewUsageCounters()

	assert.Equal(t, 0, c.Count("guest"))
	assert.Equal(t, 1, c.Increment("guest", time.Hour))
	assert.Equal(t, 2, c.Increment("guest", time.Hour))
	assert.Equal(t, 2, c.Count("guest"))
	assert.Equal(t, 0, c.Count("other"))
}

func TestUsageCountersExpire(t *testing.T) {
	c := NewUsageCounters()
	now := time.Unix(1_700_000_000, 0)
	c.now = func() time.Time { return now }

	c.Increment("guest", time.Minute)
	c.Increment("guest", time.Minute)

	now = now.Add(2 * time.Minute)
	assert.Equal(t, 0, c.Count("guest"))
	assert.Equal(t, 1, c.Increment("guest", time.Minute))
}

func TestUsageCountersReset(t *testing.T) {
	c := NewUsageCounters()
	c.Increment("guest", time.Hour)
	c.Reset("guest")
	assert.Equal(t, 0, c.Count("guest"))
}

func TestUsageCountersConcurrent(t *testing.T) {
	c := NewUsageCounters()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c.Increment("guest", time.Hour)
		}()
	}
	wg.Wait()
	assert.Equal(t, 50, c.Count("guest"))
}

func TestUsageCountersIncrementIfBelow(t *testing.T) {
	c := NewUsageCounters()

	n, ok := c.IncrementIfBelow("guest", 2, time.Hour)
	assert.True(t, ok)
	assert.Equal(t, 1, n)
	n, ok = c.IncrementIfBelow("guest", 2, time.Hour)
	assert.True(t, ok)
	assert.Equal(t, 2, n)
	n, ok = c.IncrementIfBelow("guest", 2, time.Hour)
	assert.False(t, ok)
	assert.Equal(t, 2, n)

	c.Decrement("guest")
	assert.Equal(t, 1, c.Count("guest"))
	c.Decrement("guest")
	c.Decrement("guest")
	assert.Equal(t, 0, c.Count("guest"))
}

func TestUsageCountersIncrementIfBelowConcurrent(t *testing.T) {
	c := NewUsageCounters()
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		granted int
	)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, ok := c.IncrementIfBelow("guest", 5, time.Hour); ok {
				mu.Lock()
				granted++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 5, granted)
	assert.Equal(t, 5, c.Count("guest"))
}
