// Package retry provides the requeue policy for failed reconciliations.
//
// Every failure is retried after the same fixed delay, regardless of what
// failed and how often it failed before. There is no backoff and no retry
// limit; an item is retried until it succeeds or disappears.
package retry

import (
	"sync"
	"time"

	"k8s.io/client-go/util/workqueue"
)

// DefaultDelay is the requeue delay used when none is configured.
const DefaultDelay = 5 * time.Minute

// Config holds retry configuration.
type Config struct {
	Delay time.Duration
}

// Option is a functional option for retry configuration.
type Option func(*Config)

// WithDelay sets the delay between attempts. Non-positive values are ignored.
func WithDelay(d time.Duration) Option {
	return func(c *Config) {
		if d > 0 {
			c.Delay = d
		}
	}
}

// FixedDelay is a workqueue rate limiter that always waits the same delay.
// It tracks failures per item only for reporting.
type FixedDelay[T comparable] struct {
	delay time.Duration

	mu       sync.Mutex
	failures map[T]int
}

var _ workqueue.TypedRateLimiter[string] = &FixedDelay[string]{}

// NewFixedDelay creates a FixedDelay rate limiter.
func NewFixedDelay[T comparable](opts ...Option) *FixedDelay[T] {
	cfg := &Config{Delay: DefaultDelay}
	for _, opt := range opts {
		opt(cfg)
	}
	return &FixedDelay[T]{
		delay:    cfg.Delay,
		failures: make(map[T]int),
	}
}

// When records a failure of item and returns the fixed delay.
func (r *FixedDelay[T]) When(item T) time.Duration {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures[item]++
	return r.delay
}

// NumRequeues returns how many times item failed since it was last forgotten.
func (r *FixedDelay[T]) NumRequeues(item T) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures[item]
}

// Forget clears the failure count of item.
func (r *FixedDelay[T]) Forget(item T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.failures, item)
}

// Delay returns the configured delay.
func (r *FixedDelay[T]) Delay() time.Duration {
	return r.delay
}
