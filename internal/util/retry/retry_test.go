package retry

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFixedDelayDefaults(t *testing.T) {
	r := NewFixedDelay[string]()
	assert.Equal(t, DefaultDelay, r.Delay())
	assert.Equal(t, 5*time.Minute, r.When("a"))
}

func TestFixedDelayNeverBacksOff(t *testing.T) {
	r := NewFixedDelay[string](WithDelay(time.Second))

	for i := 1; i <= 50; i++ {
		assert.Equal(t, time.Second, r.When("a"))
		assert.Equal(t, i, r.NumRequeues("a"))
	}
	assert.Equal(t, 0, r.NumRequeues("b"))
}

func TestFixedDelayForget(t *testing.T) {
	r := NewFixedDelay[string]()
	r.When("a")
	r.When("a")
	r.When("b")

	r.Forget("a")

	assert.Equal(t, 0, r.NumRequeues("a"))
	assert.Equal(t, 1, r.NumRequeues("b"))
	assert.Equal(t, DefaultDelay, r.When("a"))
}

func TestWithDelayIgnoresNonPositive(t *testing.T) {
	assert.Equal(t, DefaultDelay, NewFixedDelay[string](WithDelay(0)).Delay())
	assert.Equal(t, DefaultDelay, NewFixedDelay[string](WithDelay(-time.Second)).Delay())
	assert.Equal(t, time.Minute, NewFixedDelay[string](WithDelay(time.Minute)).Delay())
}

func TestFixedDelayConcurrentUse(t *testing.T) {
	r := NewFixedDelay[int](WithDelay(time.Millisecond))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				r.When(j % 5)
			}
		}()
	}
	wg.Wait()

	total := 0
	for i := 0; i < 5; i++ {
		total += r.NumRequeues(i)
	}
	assert.Equal(t, 1000, total)
}
