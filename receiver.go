package oneshot

import (
	"context"
	"runtime"
	"sync/atomic"
)

// receiverHandle is the consumable right to receive, shared by Receiver and
// PollReceiver.
//
// busy is a single-waiter guard: only one goroutine may be inside a receive
// call on a handle at a time.
type receiverHandle[T any] struct {
	_    noCopy
	c    atomic.Pointer[core[T]]
	busy atomic.Bool

	// lost releases a shared receiver that is garbage collected unused.
	lost runtime.Cleanup
}

func (h *receiverHandle[T]) init(c *core[T]) {
	h.c.Store(c)
}

// watch registers the release of h's share for when owner, the value
// embedding h, becomes unreachable. Only shared cores are watched.
func watch[H any, T any](owner *H, h *receiverHandle[T], c *core[T]) {
	if c.shared {
		h.lost = runtime.AddCleanup(owner, (*core[T]).release, c)
	}
}

// forget gives up h's share. It must run while h is still reachable.
func (h *receiverHandle[T]) forget(c *core[T]) {
	if c.shared {
		h.lost.Stop()
	}
	c.release()
}

// enter claims the handle for op. Panics on concurrent use or if the handle
// was already consumed.
func (h *receiverHandle[T]) enter(op string) *core[T] {
	if !h.busy.CompareAndSwap(false, true) {
		panic("oneshot: concurrent " + op + " on receiver - only one waiter allowed")
	}
	c := h.c.Load()
	if c == nil {
		h.busy.Store(false)
		panic("oneshot: " + op + " on consumed receiver")
	}
	return c
}

func (h *receiverHandle[T]) leave() {
	h.busy.Store(false)
}

// finish consumes the handle.
func (h *receiverHandle[T]) finish(c *core[T]) {
	if h.c.CompareAndSwap(c, nil) {
		h.forget(c)
	}
}

// IsReady reports whether a value is waiting. Advisory only: it is never
// sufficient on its own to read the value.
func (h *receiverHandle[T]) IsReady() bool {
	c := h.c.Load()
	return c != nil && c.slot.IsReady()
}

// Close gives up the receiver without receiving. A value sent before or
// after Close is disposed with the channel.
//
// Close on a consumed receiver is a no-op. Panics if called while a receive
// is in progress.
func (h *receiverHandle[T]) Close() {
	if !h.busy.CompareAndSwap(false, true) {
		panic("oneshot: Close during receive")
	}
	defer h.busy.Store(false)
	if c := h.c.Swap(nil); c != nil {
		h.forget(c)
	}
}

// Receiver is the right to receive exactly one value, waiting for it by
// parking the calling goroutine.
//
// The Sender paired with a Receiver holds the Receiver's wake permit and
// releases it after publishing, so the wait costs no polling. Any goroutine
// may wait on the Receiver, but only one at a time.
type Receiver[T any] struct {
	receiverHandle[T]
}

func newReceiver[T any](c *core[T]) *Receiver[T] {
	r := &Receiver[T]{}
	r.init(c)
	watch(r, &r.receiverHandle, c)
	return r
}

// Receive waits for the value and consumes the Receiver.
//
// It never returns before a value is ready; the only error is
// ErrSenderClosed, when the Sender was closed without sending. There is no
// timeout: use ReceiveContext to bound the wait.
//
// Panics if the Receiver was already consumed.
func (r *Receiver[T]) Receive() (T, error) {
	return r.ReceiveContext(context.Background())
}

// ReceiveContext is Receive with cancellation. If ctx is done first it
// returns ctx.Err() and the Receiver stays usable.
func (r *Receiver[T]) ReceiveContext(ctx context.Context) (T, error) {
	c := r.enter("Receive")
	defer r.leave()

	for {
		v, err := c.try()
		if err != ErrNotReady {
			r.finish(c)
			return v, err
		}
		// A wake that raced ahead of this park left its token behind, so
		// Park returns at once and the loop re-checks the flag.
		if err := c.parker.ParkContext(ctx); err != nil {
			var zero T
			return zero, err
		}
		c.probe.onParked()
	}
}
