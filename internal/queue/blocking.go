package queue

import (
	"context"
	"sync"
)

// Blocking is an unbounded multi-producer multi-consumer FIFO queue.
//
// Items live in a power-of-2 ring that doubles when full, so Send never
// blocks and never fails. Receivers wait on a condition variable; each Send
// signals one of them.
//
// Create with NewBlocking.
type Blocking[T any] struct {
	mu       sync.Mutex
	nonEmpty sync.Cond

	buf   []T
	mask  int
	head  int // index of the oldest item
	count int
}

var _ Queue[int] = (*Blocking[int])(nil)

// NewBlocking creates a Blocking queue with room for size items before the
// first growth. Size is rounded up to a power of 2.
func NewBlocking[T any](size int) *Blocking[T] {
	n := 1
	for n < size {
		n <<= 1
	}
	q := &Blocking[T]{
		buf:  make([]T, n),
		mask: n - 1,
	}
	q.nonEmpty.L = &q.mu
	return q
}

// Send enqueues v and wakes one waiting receiver.
func (q *Blocking[T]) Send(v T) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.pushLocked(v)
	q.nonEmpty.Signal()
}

// Receive blocks until an item is available and dequeues it.
func (q *Blocking[T]) Receive() T {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.count == 0 {
		q.nonEmpty.Wait()
	}
	return q.popLocked()
}

// ReceiveContext is Receive with cancellation. It returns ctx.Err() if ctx
// is done before an item arrives.
func (q *Blocking[T]) ReceiveContext(ctx context.Context) (T, error) {
	stop := context.AfterFunc(ctx, func() {
		q.mu.Lock()
		defer q.mu.Unlock()
		q.nonEmpty.Broadcast()
	})
	defer stop()

	q.mu.Lock()
	defer q.mu.Unlock()
	for q.count == 0 {
		if err := ctx.Err(); err != nil {
			var zero T
			return zero, err
		}
		q.nonEmpty.Wait()
	}
	return q.popLocked(), nil
}

// Push enqueues v. Always returns true.
func (q *Blocking[T]) Push(v T) bool {
	q.Send(v)
	return true
}

// Pop dequeues an item without waiting.
// Returns false if the queue is empty.
func (q *Blocking[T]) Pop() (T, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.count == 0 {
		var zero T
		return zero, false
	}
	return q.popLocked(), true
}

// Len returns the current number of items in the queue.
func (q *Blocking[T]) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.count
}

// Cap returns the current ring capacity. It grows as needed.
func (q *Blocking[T]) Cap() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.buf)
}

func (q *Blocking[T]) pushLocked(v T) {
	if q.count == len(q.buf) {
		q.growLocked()
	}
	q.buf[(q.head+q.count)&q.mask] = v
	q.count++
}

func (q *Blocking[T]) popLocked() T {
	v := q.buf[q.head]
	var zero T
	q.buf[q.head] = zero
	q.head = (q.head + 1) & q.mask
	q.count--
	return v
}

// growLocked doubles the ring, unwrapping the items to start at index 0.
func (q *Blocking[T]) growLocked() {
	buf := make([]T, len(q.buf)*2)
	n := copy(buf, q.buf[q.head:])
	copy(buf[n:], q.buf[:q.head])
	q.buf = buf
	q.mask = len(buf) - 1
	q.head = 0
}
