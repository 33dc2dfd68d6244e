// Command oneshot-bench times a single cross-goroutine handoff per
// iteration over each one-shot tier and over the usual alternatives.
//
// Usage:
//
//	go run ./cmd/oneshot-bench -n 1000000
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	ring "github.com/randomizedcoder/go-lock-free-ring"

	oneshot "github.com/randomizedcoder/go-oneshot"
	"github.com/randomizedcoder/go-oneshot/internal/queue"
)

type result struct {
	name string
	dur  time.Duration
}

func main() {
	iterations := flag.Int("n", 1_000_000, "number of handoffs per implementation")
	flag.Parse()

	if *iterations <= 0 {
		fmt.Fprintln(os.Stderr, "oneshot-bench: -n must be positive")
		os.Exit(2)
	}
	n := *iterations

	fmt.Printf("Benchmarking one-value handoff between goroutines (%d iterations)\n", n)
	fmt.Println("─────────────────────────────────────────────────────────")

	results := []result{
		{"Raw (spin)", timeIt(n, handoffRaw)},
		{"Checked (spin)", timeIt(n, handoffChecked)},
		{"Channel (park)", timeIt(n, handoffBorrowed)},
		{"Channel (poll)", timeIt(n, handoffPolled)},
		{"Shared (park)", timeIt(n, handoffShared)},
		{"Go chan", timeIt(n, handoffGoChan)},
		{"Blocking queue", timeIt(n, handoffBlocking)},
	}
	ringDur, err := handoffRing(n)
	if err != nil {
		fmt.Fprintf(os.Stderr, "oneshot-bench: lock-free ring: %v\n", err)
		os.Exit(1)
	}
	results = append(results, result{"Lock-free ring", ringDur})

	var base float64
	for _, r := range results {
		if r.name == "Go chan" {
			base = perOp(r.dur, n)
		}
	}

	fmt.Printf("\nResults (send in a new goroutine + receive per iteration):\n")
	for _, r := range results {
		p := perOp(r.dur, n)
		fmt.Printf("  %-16s %12v (%8.2f ns/op, %.2fx vs Go chan)\n", r.name+":", r.dur, p, base/p)
	}
}

func timeIt(n int, f func(n int)) time.Duration {
	start := time.Now()
	f(n)
	return time.Since(start)
}

func perOp(d time.Duration, n int) float64 {
	return float64(d.Nanoseconds()) / float64(n)
}

func handoffRaw(n int) {
	for i := 0; i < n; i++ {
		r := oneshot.NewRaw[int]()
		go r.Send(i)
		for {
			if _, err := r.Receive(); err == nil {
				break
			}
		}
	}
}

func handoffChecked(n int) {
	for i := 0; i < n; i++ {
		c := oneshot.NewChecked[int]()
		go func() { _ = c.Send(i) }()
		for {
			if _, err := c.Receive(); err == nil {
				break
			}
		}
	}
}

func handoffBorrowed(n int) {
	var ch oneshot.Channel[int]
	defer ch.Close()
	for i := 0; i < n; i++ {
		s, r := ch.Split()
		go s.Send(i)
		_, _ = r.Receive()
	}
}

func handoffPolled(n int) {
	var ch oneshot.Channel[int]
	defer ch.Close()
	ctx := context.Background()
	for i := 0; i < n; i++ {
		s, r := ch.SplitPolled()
		go s.Send(i)
		_, _ = r.Wait(ctx)
	}
}

func handoffShared(n int) {
	for i := 0; i < n; i++ {
		s, r := oneshot.NewShared[int]()
		go s.Send(i)
		_, _ = r.Receive()
	}
}

func handoffGoChan(n int) {
	for i := 0; i < n; i++ {
		q := queue.NewChannel[int](1)
		go q.Push(i)
		<-q.Chan()
	}
}

func handoffBlocking(n int) {
	q := queue.NewBlocking[int](1)
	for i := 0; i < n; i++ {
		go q.Send(i)
		q.Receive()
	}
}

func handoffRing(n int) (time.Duration, error) {
	r, err := ring.NewShardedRing(1024, 1)
	if err != nil {
		return 0, err
	}
	start := time.Now()
	for i := 0; i < n; i++ {
		go r.Write(0, i)
		for {
			if _, ok := r.TryRead(); ok {
				break
			}
		}
	}
	return time.Since(start), nil
}
