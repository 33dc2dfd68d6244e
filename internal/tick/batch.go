package tick

import "time"

// BatchTicker checks the time only every N calls to Tick.
//
// With every=1024 and interval=1s a stress loop reads the clock once per
// 1024 rounds and reports at most once a second. Not safe for concurrent
// use.
type BatchTicker struct {
	interval time.Duration
	every    int
	count    int
	lastTick time.Time
}

var _ Ticker = (*BatchTicker)(nil)

// NewBatch creates a BatchTicker that checks time every N operations.
//
// Parameters:
//   - interval: How often ticks should fire (wall clock time)
//   - every: Check the clock only every N calls to Tick()
func NewBatch(interval time.Duration, every int) *BatchTicker {
	if every < 1 {
		every = 1
	}
	return &BatchTicker{
		interval: interval,
		every:    every,
		lastTick: time.Now(),
	}
}

// Tick returns true if the interval has elapsed. Between clock reads it
// returns false without looking at the time.
func (b *BatchTicker) Tick() bool {
	b.count++
	if b.count%b.every != 0 {
		return false
	}

	now := time.Now()
	if now.Sub(b.lastTick) >= b.interval {
		b.lastTick = now
		return true
	}
	return false
}

// Reset resets the ticker state.
func (b *BatchTicker) Reset() {
	b.count = 0
	b.lastTick = time.Now()
}

// Every returns the batch size.
func (b *BatchTicker) Every() int {
	return b.every
}

// Interval returns the ticker's interval.
func (b *BatchTicker) Interval() time.Duration {
	return b.interval
}
