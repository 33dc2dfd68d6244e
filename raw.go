package oneshot

import "github.com/randomizedcoder/go-oneshot/internal/slot"

// Raw is the minimal one-shot channel: a Slot reached through a shared
// pointer with no misuse detection.
//
// WARNING: Raw does not protect its own slot. The caller must guarantee:
//   - Send is called at most once over the channel's lifetime
//   - Send is never called concurrently with another Send
//
// Violating either is a data race on the stored value. Use Checked when
// single use cannot be proven, or Channel to make it structural.
//
// Receive is safe to call at any time: it reports ErrNotReady instead of
// reading an unpublished value.
//
// The zero value is ready to use.
type Raw[T any] struct {
	_     noCopy
	slot  slot.Slot[T]
	probe *probe
}

// NewRaw creates a Raw channel.
func NewRaw[T any](opts ...Option) *Raw[T] {
	return &Raw[T]{probe: collect(opts).probe(tierRaw, "")}
}

// Send publishes v.
//
// CONTRACT: at most one Send per Raw, never concurrently.
func (r *Raw[T]) Send(v T) {
	r.slot.Write(v)
	r.slot.Publish()
	r.probe.onSent()
}

// Receive moves the published value out of the channel.
// Returns ErrNotReady if nothing has been published, or if the value was
// already received.
func (r *Raw[T]) Receive() (T, error) {
	v, ok := r.slot.Take()
	if !ok {
		r.probe.onNotReady()
		return v, ErrNotReady
	}
	r.probe.onReceived()
	return v, nil
}

// IsReady reports whether a value is waiting. Advisory only; a true result
// can be invalidated by a concurrent Receive.
func (r *Raw[T]) IsReady() bool {
	return r.slot.IsReady()
}

// Close disposes of a sent value that was never received.
//
// Not safe to call concurrently with Send or Receive.
func (r *Raw[T]) Close() {
	r.slot.Drop(func(v T) {
		r.probe.onDisposed()
		dispose(v)
	})
}
