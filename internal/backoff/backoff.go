// Package backoff provides the suspend step of an externally driven
// readiness poll.
//
// A poller that observes "not ready" must give up the processor before it
// looks again. Backoff does that in two phases:
//   - the first Yields waits call runtime.Gosched, which is enough when the
//     producer is already running on another P
//   - later waits sleep, starting at Min and doubling up to Max
//
// Every Wait suspends the caller in some form, so a poll loop built on it
// never busy-spins.
package backoff

import (
	"runtime"
	"time"
)

// Defaults used by New.
const (
	DefaultYields = 4
	DefaultMin    = 20 * time.Microsecond
	DefaultMax    = 5 * time.Millisecond
)

// Strategy suspends a polling goroutine between readiness checks.
type Strategy interface {
	// Wait suspends the caller once.
	Wait()

	// Reset returns the strategy to its initial, shortest wait.
	Reset()
}

// Backoff is a yield-then-exponential-sleep Strategy.
//
// Not safe for concurrent use; each poller owns one.
type Backoff struct {
	yields   int
	min, max time.Duration

	count int
	sleep time.Duration
}

var _ Strategy = (*Backoff)(nil)

// New creates a Backoff with the package defaults.
func New() *Backoff {
	return NewBackoff(DefaultYields, DefaultMin, DefaultMax)
}

// NewBackoff creates a Backoff.
//
// Parameters:
//   - yields: number of scheduler yields before the first sleep (>= 0)
//   - min: first sleep duration
//   - max: cap on the sleep duration
func NewBackoff(yields int, min, max time.Duration) *Backoff {
	if yields < 0 {
		yields = 0
	}
	if min <= 0 {
		min = DefaultMin
	}
	if max < min {
		max = min
	}
	return &Backoff{yields: yields, min: min, max: max, sleep: min}
}

// Wait suspends the caller once.
func (b *Backoff) Wait() {
	b.count++
	if b.count <= b.yields {
		runtime.Gosched()
		return
	}
	time.Sleep(b.sleep)
	b.sleep = min(b.sleep*2, b.max)
}

// Reset restarts the yield phase.
func (b *Backoff) Reset() {
	b.count = 0
	b.sleep = b.min
}

// Next returns the duration the next Wait will sleep, or 0 if it will only
// yield.
func (b *Backoff) Next() time.Duration {
	if b.count < b.yields {
		return 0
	}
	return b.sleep
}
