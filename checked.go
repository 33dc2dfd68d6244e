package oneshot

import "sync/atomic"

// Checked is a one-shot channel that detects a second Send.
//
// A misuse guard is exchanged at the start of every Send; only the first
// caller writes the slot, every later (or concurrent) caller gets
// ErrDoubleSend. The guard only decides who may write: visibility of the
// value is still carried by the slot's readiness flag alone.
//
// Checked is meant for channels reached through a shared pointer by code
// that cannot prove single use. Failures are returned immediately and
// never retried.
//
// The zero value is ready to use.
type Checked[T any] struct {
	raw  Raw[T]
	used atomic.Bool
}

// NewChecked creates a Checked channel.
func NewChecked[T any](opts ...Option) *Checked[T] {
	c := &Checked[T]{}
	c.raw.probe = collect(opts).probe(tierChecked, "")
	return c
}

// Send publishes v, or returns ErrDoubleSend if the channel was already
// used. Safe for concurrent use.
func (c *Checked[T]) Send(v T) error {
	if c.used.Swap(true) {
		c.raw.probe.onDoubleSend()
		return ErrDoubleSend
	}
	c.raw.Send(v)
	return nil
}

// Receive moves the published value out of the channel.
// Returns ErrNotReady if no value is available.
func (c *Checked[T]) Receive() (T, error) {
	return c.raw.Receive()
}

// IsReady reports whether a value is waiting. Advisory only.
func (c *Checked[T]) IsReady() bool {
	return c.raw.IsReady()
}

// Used reports whether a Send has claimed the channel. The value may not be
// published yet.
func (c *Checked[T]) Used() bool {
	return c.used.Load()
}

// Close disposes of a sent value that was never received.
//
// Not safe to call concurrently with Send or Receive.
func (c *Checked[T]) Close() {
	c.raw.Close()
}
