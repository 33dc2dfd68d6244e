// Package queue provides multi-value handoff queues used as baselines for
// the one-shot channels.
//
// Two implementations of the Queue interface:
//   - ChannelQueue: a buffered Go channel behind non-blocking select
//   - Blocking: an unbounded MPMC queue (mutex + growable ring + condition
//     variable) that also offers blocking Send/Receive
//
// A one-shot channel moves exactly one value and is discarded. These queues
// carry a stream and are reused, so every operation pays for a lock or a
// channel send. The benchmarks in internal/combined and cmd/oneshot-bench
// measure that difference; the oneshot package itself never imports queue.
package queue

// Queue is a non-blocking FIFO queue.
//
// Push returns false if the queue is full, Pop returns false if it is
// empty.
type Queue[T any] interface {
	// Push adds an item to the queue.
	// Returns false if the queue is full.
	Push(T) bool

	// Pop removes and returns an item from the queue.
	// Returns false if the queue is empty.
	Pop() (T, bool)
}
