package tick

import (
	"sync/atomic"
	"time"
)

// epoch anchors the monotonic readings of every AtomicTicker.
var epoch = time.Now()

// monotonic returns nanoseconds since epoch on the monotonic clock.
func monotonic() int64 {
	return int64(time.Since(epoch))
}

// AtomicTicker keeps its last tick as an atomic int64, so any number of
// goroutines may poll it; a CAS makes sure one tick fires once.
type AtomicTicker struct {
	interval int64 // nanoseconds
	lastTick atomic.Int64
}

var _ Ticker = (*AtomicTicker)(nil)

// NewAtomicTicker creates an AtomicTicker with the specified interval.
func NewAtomicTicker(interval time.Duration) *AtomicTicker {
	t := &AtomicTicker{
		interval: int64(interval),
	}
	t.lastTick.Store(monotonic())
	return t
}

// Tick returns true if the interval has elapsed since the last tick.
func (a *AtomicTicker) Tick() bool {
	now := monotonic()
	last := a.lastTick.Load()

	if now-last >= a.interval {
		// only one poller wins the tick
		if a.lastTick.CompareAndSwap(last, now) {
			return true
		}
	}
	return false
}

// Reset resets the ticker to start a new interval from now.
func (a *AtomicTicker) Reset() {
	a.lastTick.Store(monotonic())
}

// Interval returns the ticker's interval.
func (a *AtomicTicker) Interval() time.Duration {
	return time.Duration(a.interval)
}
