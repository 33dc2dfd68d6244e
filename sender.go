package oneshot

import (
	"runtime"
	"sync/atomic"
)

// Sender is the right to send exactly one value into a one-shot channel.
//
// Send and Close consume the Sender. Using a consumed Sender again panics:
// that is a program bug, not a runtime condition. oneshotvet reports it
// statically where it can.
type Sender[T any] struct {
	_ noCopy
	c atomic.Pointer[core[T]]

	// lost closes a shared Sender that is garbage collected unused.
	lost runtime.Cleanup
}

func newSender[T any](c *core[T]) *Sender[T] {
	s := &Sender[T]{}
	s.c.Store(c)
	if c.shared {
		s.lost = runtime.AddCleanup(s, (*core[T]).senderLost, c)
	}
	return s
}

// Send delivers v and consumes the Sender. Never blocks.
//
// Panics if the Sender was already consumed.
func (s *Sender[T]) Send(v T) {
	c := s.c.Swap(nil)
	if c == nil {
		panic("oneshot: Send on consumed Sender")
	}
	if c.shared {
		s.lost.Stop()
	}
	c.send(v)
	c.release()
}

// Close gives up the Sender without sending. The Receiver then fails with
// ErrSenderClosed instead of waiting forever.
//
// Close on a consumed Sender is a no-op.
func (s *Sender[T]) Close() {
	c := s.c.Swap(nil)
	if c == nil {
		return
	}
	if c.shared {
		s.lost.Stop()
	}
	c.abandon()
	c.release()
}
