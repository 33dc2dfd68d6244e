package oneshot

import (
	"context"
	"time"

	"github.com/randomizedcoder/go-oneshot/internal/backoff"
	"github.com/randomizedcoder/go-oneshot/internal/cancel"
)

// Backoff suspends a polling goroutine between readiness checks.
type Backoff interface {
	// Wait suspends the caller once.
	Wait()

	// Reset returns to the initial, shortest wait.
	Reset()
}

// NewBackoff returns a Backoff that yields the processor for the first
// yields waits, then sleeps from min doubling up to max.
func NewBackoff(yields int, min, max time.Duration) Backoff {
	return backoff.NewBackoff(yields, min, max)
}

// PollReceiver is the right to receive exactly one value, for callers that
// drive their own waiting.
//
// Its Sender does not know who waits and wakes nobody: the caller polls
// IsReady or TryReceive and suspends between polls however it likes. Wait
// is a ready-made loop for the common case.
type PollReceiver[T any] struct {
	receiverHandle[T]
}

func newPollReceiver[T any](c *core[T]) *PollReceiver[T] {
	r := &PollReceiver[T]{}
	r.init(c)
	watch(r, &r.receiverHandle, c)
	return r
}

// TryReceive makes one attempt to receive.
//
// Returns ErrNotReady if no value is published yet; the PollReceiver stays
// usable. A value or ErrSenderClosed consumes it.
//
// Panics if the PollReceiver was already consumed.
func (r *PollReceiver[T]) TryReceive() (T, error) {
	c := r.enter("TryReceive")
	defer r.leave()

	v, err := c.try()
	if err == ErrNotReady {
		c.probe.onNotReady()
		return v, err
	}
	r.finish(c)
	return v, err
}

// Wait polls until a value arrives, the Sender is closed, or ctx is done.
//
// Between polls it suspends through a yield-then-sleep backoff, so it never
// busy-spins. On ctx expiry it returns ctx.Err() and the PollReceiver stays
// usable.
func (r *PollReceiver[T]) Wait(ctx context.Context) (T, error) {
	return r.WaitWith(ctx, backoff.New())
}

// WaitWith is Wait with a caller-supplied suspend strategy.
func (r *PollReceiver[T]) WaitWith(ctx context.Context, b Backoff) (T, error) {
	c := r.enter("Wait")
	defer r.leave()

	done, stop := cancel.FromContext(ctx)
	defer stop()

	for {
		v, err := c.try()
		if err != ErrNotReady {
			r.finish(c)
			return v, err
		}
		if done.Done() {
			var zero T
			return zero, ctx.Err()
		}
		b.Wait()
	}
}
