package oneshot

import (
	"sync/atomic"

	"github.com/randomizedcoder/go-oneshot/internal/park"
	"github.com/randomizedcoder/go-oneshot/internal/slot"
)

// core is the state shared by one Sender/Receiver pair.
//
// refs counts live handles. A borrowed core is disposed by its Channel once
// refs reaches zero; a shared core disposes itself on the last release.
type core[T any] struct {
	slot slot.Slot[T]

	// parker is the receiving side's wake permit, captured by the Sender at
	// split time. nil for externally driven pairs.
	parker *park.Parker

	// abandoned is set when the Sender is closed without sending.
	abandoned atomic.Bool

	refs   atomic.Int32
	shared bool

	probe        *probe
	afterPublish func()
}

// reset returns the core to Empty with two outstanding handles.
//
// CONTRACT: exclusive access (refs == 0, no handle alive).
func (c *core[T]) reset(parking bool) {
	c.slot.Reset()
	c.abandoned.Store(false)
	switch {
	case !parking:
		c.parker = nil
	case c.parker == nil:
		c.parker = park.New()
	default:
		c.parker.Drain()
	}
	c.refs.Store(2)
}

// send writes and publishes v, then wakes the receiver.
func (c *core[T]) send(v T) {
	c.slot.Write(v)
	c.slot.Publish()
	c.probe.onSent()
	if c.afterPublish != nil {
		c.afterPublish()
	}
	if c.parker != nil {
		c.parker.Unpark()
	}
}

// abandon marks the pair as never going to receive a value and wakes the
// receiver so it can observe that.
func (c *core[T]) abandon() {
	c.abandoned.Store(true)
	if c.parker != nil {
		c.parker.Unpark()
	}
}

// senderLost closes a shared pair whose Sender was garbage collected without
// Send or Close.
func (c *core[T]) senderLost() {
	c.abandon()
	c.release()
}

// try is one readiness probe on the receiving side.
//
// Returns the value, ErrSenderClosed, or ErrNotReady. Only ErrNotReady
// leaves the receiver usable.
func (c *core[T]) try() (T, error) {
	if v, ok := c.slot.Take(); ok {
		c.probe.onReceived()
		return v, nil
	}
	var zero T
	if c.abandoned.Load() {
		return zero, ErrSenderClosed
	}
	return zero, ErrNotReady
}

// release gives up one handle's share.
func (c *core[T]) release() {
	if c.refs.Add(-1) == 0 && c.shared {
		c.drop()
	}
}

// drop disposes of a sent-but-unreceived value.
//
// CONTRACT: exclusive access.
func (c *core[T]) drop() bool {
	return c.slot.Drop(func(v T) {
		c.probe.onDisposed()
		dispose(v)
	})
}
