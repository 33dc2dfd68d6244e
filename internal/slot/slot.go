// Package slot provides the single-value storage cell shared by every
// one-shot channel tier.
//
// A Slot holds zero or one value of type T together with a readiness flag.
// The flag is the only synchronization edge between the writer and the
// reader:
//
//   - Write stores the value (plain memory write)
//   - Publish sets the flag (atomic store, release)
//   - Take swaps the flag back to false (atomic swap, acquire) and only
//     reads the value when the swap observed true
//
// The value write is sequenced before the flag store, and the flag swap is
// sequenced before the value read, so "flag observed true" implies the write
// is fully visible. The race detector understands this edge.
//
// # Contract (IMPORTANT)
//
// Slot performs no misuse detection of its own:
//   - Exactly ONE Write per Reset cycle, performed before Publish
//   - Drop and Reset require exclusive access (no concurrent Write or Take)
//
// Higher tiers build their guarantees on top of this contract and never
// touch the stored value directly.
package slot

import "sync/atomic"

// Slot is a single-value cell. The zero value is an empty slot.
type Slot[T any] struct {
	value T
	ready atomic.Bool
}

// Write stores v into the empty slot.
//
// CONTRACT: the caller guarantees this is the first and only write since the
// slot was created or last Reset, and that no Take is reading the value.
func (s *Slot[T]) Write(v T) {
	s.value = v
}

// Publish marks the written value as ready for Take.
func (s *Slot[T]) Publish() {
	s.ready.Store(true)
}

// IsReady reports whether a value has been published and not yet taken.
//
// This is a hint only: a true result does not transfer the value, and a
// reader must still go through Take.
func (s *Slot[T]) IsReady() bool {
	return s.ready.Load()
}

// Take moves the published value out of the slot.
//
// Returns false if no value is ready, either because nothing was published
// yet or because the value was already taken.
func (s *Slot[T]) Take() (T, bool) {
	if !s.ready.Swap(false) {
		var zero T
		return zero, false
	}
	v := s.value
	var zero T
	s.value = zero // release references held by the slot
	return v, true
}

// Drop disposes of a published-but-untaken value.
//
// dispose is called at most once, with the stored value, and only if the slot
// holds one. Returns true if a value was dropped. A nil dispose just clears
// the slot.
//
// CONTRACT: exclusive access.
func (s *Slot[T]) Drop(dispose func(T)) bool {
	v, ok := s.Take()
	if ok && dispose != nil {
		dispose(v)
	}
	return ok
}

// Reset returns the slot to its empty state without disposing of any value.
// Callers that may hold a value should Drop first.
//
// CONTRACT: exclusive access.
func (s *Slot[T]) Reset() {
	var zero T
	s.value = zero
	s.ready.Store(false)
}
