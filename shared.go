package oneshot

// NewShared creates a shared one-shot channel and returns its Sender and
// parking Receiver.
//
// The channel lives on the heap and each handle owns a share of it; it is
// released when both handles have been used or closed, disposing of a value
// that was sent but never received. Neither side needs a common scope with
// the other, so both handles may be moved into goroutines that are never
// joined.
//
// A handle dropped without use or Close gives up its share when the garbage
// collector reclaims it: a lost Sender counts as closed, waking its
// Receiver with ErrSenderClosed. This happens at an unspecified time after
// the handle becomes unreachable, and never if the sent value itself
// references the handle. Close is the prompt way.
func NewShared[T any](opts ...Option) (*Sender[T], *Receiver[T]) {
	c := newSharedCore[T](true, opts)
	return newSender(c), newReceiver(c)
}

// NewSharedPolled is NewShared for callers that drive their own waiting.
func NewSharedPolled[T any](opts ...Option) (*Sender[T], *PollReceiver[T]) {
	c := newSharedCore[T](false, opts)
	return newSender(c), newPollReceiver(c)
}

func newSharedCore[T any](parking bool, opts []Option) *core[T] {
	o := collect(opts)
	c := &core[T]{
		shared:       true,
		probe:        o.probe(tierTypestate, ownershipShared),
		afterPublish: o.afterPublish,
	}
	c.reset(parking)
	return c
}
