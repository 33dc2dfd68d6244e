package oneshot

import "fmt"

// Channel is a borrowed one-shot channel: the caller owns the Channel value
// and lends it to exactly one Sender and one Receiver per Split.
//
// Use it when the producer and the consumer are started from, and joined
// by, a common scope:
//
//	var ch oneshot.Channel[string]
//	defer ch.Close()
//
//	s, r := ch.Split()
//	var wg sync.WaitGroup
//	wg.Go(func() { s.Send("hello") })
//	msg, _ := r.Receive()
//	wg.Wait()
//
// The zero value is ready to use. A Channel must not be copied after the
// first Split.
type Channel[T any] struct {
	_    noCopy
	core core[T]
}

// New creates a Channel.
func New[T any](opts ...Option) *Channel[T] {
	ch := &Channel[T]{}
	ch.configure(collect(opts))
	return ch
}

func (ch *Channel[T]) configure(o options) {
	ch.core.probe = o.probe(tierTypestate, ownershipBorrowed)
	ch.core.afterPublish = o.afterPublish
}

// Split resets the Channel to empty and hands out its Sender and its
// parking Receiver. A value left unreceived by the previous round is
// disposed first.
//
// Panics if a handle from the previous Split is still alive: every handle
// must have been used or closed before the Channel is split again.
func (ch *Channel[T]) Split() (*Sender[T], *Receiver[T]) {
	c := ch.prepare("Split", true)
	return newSender(c), newReceiver(c)
}

// SplitPolled is Split for callers that drive their own waiting: the Sender
// wakes nobody and the PollReceiver is polled.
func (ch *Channel[T]) SplitPolled() (*Sender[T], *PollReceiver[T]) {
	c := ch.prepare("SplitPolled", false)
	return newSender(c), newPollReceiver(c)
}

func (ch *Channel[T]) prepare(op string, parking bool) *core[T] {
	ch.mustBeIdle(op)
	ch.core.drop()
	ch.core.reset(parking)
	return &ch.core
}

func (ch *Channel[T]) mustBeIdle(op string) {
	if n := ch.core.refs.Load(); n != 0 {
		panic(fmt.Sprintf("oneshot: %s with %d outstanding handles", op, n))
	}
}

// Outstanding returns the number of handles from the last Split that are
// neither used nor closed.
func (ch *Channel[T]) Outstanding() int {
	return int(ch.core.refs.Load())
}

// Close ends the borrow: it disposes of a value that was sent but never
// received.
//
// Panics if a handle is still alive. The Channel may be split again after
// Close.
func (ch *Channel[T]) Close() {
	ch.mustBeIdle("Close")
	ch.core.drop()
}
