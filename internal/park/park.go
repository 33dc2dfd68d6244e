// Package park provides a per-waiter wake permit, the goroutine analogue of
// parking and unparking a specific thread.
//
// A Parker holds at most one token:
//   - Unpark deposits the token (a no-op if one is already pending)
//   - Park consumes the token, blocking until one is available
//
// Because the token persists until consumed, an Unpark that happens before
// the matching Park is not lost. Park may also return for a token deposited
// for an earlier condition, so callers always re-check their condition in a
// loop:
//
//	for !cond() {
//		p.Park()
//	}
package park

import "context"

// Parker is a single-token wake permit. Create with New.
type Parker struct {
	token chan struct{}
}

// Waker is the half of a Parker handed to the goroutine that wakes the
// waiter.
type Waker interface {
	Unpark()
}

var _ Waker = (*Parker)(nil)

// New creates a Parker with no pending token.
func New() *Parker {
	return &Parker{token: make(chan struct{}, 1)}
}

// Park blocks until a token is available and consumes it.
func (p *Parker) Park() {
	<-p.token
}

// ParkContext is Park with cancellation. It returns ctx.Err() if ctx is done
// before a token arrives; a pending token is left in place in that case.
func (p *Parker) ParkContext(ctx context.Context) error {
	select {
	case <-p.token:
		return nil
	default:
	}
	select {
	case <-p.token:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Unpark makes a token available, waking a parked goroutine if there is one.
// Never blocks.
func (p *Parker) Unpark() {
	select {
	case p.token <- struct{}{}:
	default:
	}
}

// Drain discards a pending token, if any.
//
// Not safe to call concurrently with Park.
func (p *Parker) Drain() {
	select {
	case <-p.token:
	default:
	}
}
