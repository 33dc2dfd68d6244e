// Package tick decides when a hot loop should report progress.
//
// A stress loop runs a send/receive round as fast as it can and must not
// block on a timer channel between rounds. A Ticker is polled instead: Tick
// is a cheap non-blocking check that returns true once per interval.
//
//   - AtomicTicker: monotonic clock + CAS, safe to poll from many goroutines
//   - BatchTicker: reads the clock only every N calls, single goroutine
//
// New picks one by name, for configuration files.
package tick

import (
	"fmt"
	"time"
)

// Ticker signals when a time interval has elapsed.
type Ticker interface {
	// Tick returns true if the interval has elapsed since the last tick.
	// This is a non-blocking check.
	Tick() bool

	// Reset starts a new interval from now.
	Reset()

	// Interval returns the configured interval.
	Interval() time.Duration
}

// Kinds accepted by New.
const (
	KindAtomic = "atomic"
	KindBatch  = "batch"
)

// DefaultEvery is the batch size New uses for KindBatch.
const DefaultEvery = 1024

// New creates a Ticker of the named kind.
func New(kind string, interval time.Duration) (Ticker, error) {
	if interval <= 0 {
		return nil, fmt.Errorf("tick: interval must be positive, got %v", interval)
	}
	switch kind {
	case KindAtomic, "":
		return NewAtomicTicker(interval), nil
	case KindBatch:
		return NewBatch(interval, DefaultEvery), nil
	default:
		return nil, fmt.Errorf("tick: unknown kind %q", kind)
	}
}
