package cancel

import (
	"context"
	"sync/atomic"
)

// AtomicCanceler uses an atomic.Bool for cancellation signaling.
//
// Done() is a single atomic load, cheap enough to run on every iteration of
// a readiness poll.
type AtomicCanceler struct {
	done atomic.Bool
}

// NewAtomic creates a new AtomicCanceler.
func NewAtomic() *AtomicCanceler {
	return &AtomicCanceler{}
}

// FromContext returns an AtomicCanceler that is cancelled when ctx is done.
//
// The returned stop function detaches the canceler from ctx; call it once
// the wait is over. stop reports whether it detached before ctx fired.
func FromContext(ctx context.Context) (*AtomicCanceler, func() bool) {
	a := NewAtomic()
	if ctx.Err() != nil {
		a.Cancel()
		return a, func() bool { return false }
	}
	stop := context.AfterFunc(ctx, a.Cancel)
	return a, stop
}

// Done returns true if cancellation has been triggered.
func (a *AtomicCanceler) Done() bool {
	return a.done.Load()
}

// Cancel triggers cancellation.
//
// Safe to call multiple times; subsequent calls are no-ops.
func (a *AtomicCanceler) Cancel() {
	a.done.Store(true)
}

// Reset clears the cancellation flag.
//
// Not safe to call concurrently with Done() or Cancel().
func (a *AtomicCanceler) Reset() {
	a.done.Store(false)
}
