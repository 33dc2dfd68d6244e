package slot_test

import (
	"runtime"
	"sync"
	"testing"

	"github.com/randomizedcoder/go-oneshot/internal/slot"
)

type payload struct {
	a, b, c int
	s       string
}

// TestSlot_PublishVisibility checks that a value published by one goroutine
// is seen whole by another.
// Run with: go test -race ./internal/slot
func TestSlot_PublishVisibility(t *testing.T) {
	const rounds = 500

	for i := 0; i < rounds; i++ {
		var s slot.Slot[payload]
		want := payload{a: i, b: i * 2, c: i * 3, s: "round"}

		var wg sync.WaitGroup
		wg.Go(func() {
			s.Write(want)
			s.Publish()
		})

		var got payload
		for {
			v, ok := s.Take()
			if ok {
				got = v
				break
			}
			runtime.Gosched()
		}
		wg.Wait()

		if got != want {
			t.Fatalf("round %d: expected %+v, got %+v", i, want, got)
		}
	}
}

// TestSlot_SingleTaker verifies that concurrent takers cannot both
// observe the same published value.
func TestSlot_SingleTaker(t *testing.T) {
	const takers = 8

	var s slot.Slot[int]
	s.Write(99)
	s.Publish()

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		hits int
	)
	for i := 0; i < takers; i++ {
		wg.Go(func() {
			if _, ok := s.Take(); ok {
				mu.Lock()
				hits++
				mu.Unlock()
			}
		})
	}
	wg.Wait()

	if hits != 1 {
		t.Errorf("expected exactly 1 successful Take(), got %d", hits)
	}
}
