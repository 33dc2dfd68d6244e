package queue_test

import (
	"testing"

	"github.com/randomizedcoder/go-oneshot/internal/queue"
)

// Sink variables to prevent compiler from eliminating benchmark loops
var sinkInt int
var sinkBool bool

// Direct type benchmarks (true performance floor)

func BenchmarkQueue_Channel_PushPop_Direct(b *testing.B) {
	q := queue.NewChannel[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_Blocking_PushPop_Direct(b *testing.B) {
	q := queue.NewBlocking[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

// Interface benchmarks (with dynamic dispatch overhead)

func BenchmarkQueue_Channel_PushPop_Interface(b *testing.B) {
	var q queue.Queue[int] = queue.NewChannel[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

func BenchmarkQueue_Blocking_PushPop_Interface(b *testing.B) {
	var q queue.Queue[int] = queue.NewBlocking[int](1024)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	var ok bool
	for i := 0; i < b.N; i++ {
		q.Push(i)
		val, ok = q.Pop()
	}
	sinkInt = val
	sinkBool = ok
}

// Blocking send/receive from the same goroutine: lock + signal with no
// waiter.

func BenchmarkQueue_Blocking_SendReceive(b *testing.B) {
	q := queue.NewBlocking[int](1)
	b.ReportAllocs()
	b.ResetTimer()

	var val int
	for i := 0; i < b.N; i++ {
		q.Send(i)
		val = q.Receive()
	}
	sinkInt = val
}

// Growth from a one-slot ring.
func BenchmarkQueue_Blocking_SendGrow(b *testing.B) {
	q := queue.NewBlocking[int](1)
	b.ReportAllocs()
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		q.Send(i)
	}
	sinkInt = q.Len()
}
