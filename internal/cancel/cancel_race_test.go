package cancel_test

import (
	"context"
	"sync"
	"testing"

	"github.com/randomizedcoder/go-oneshot/internal/cancel"
)

// TestFromContext_Race polls a context-armed canceler from many goroutines
// while the context is cancelled.
// Run with: go test -race ./internal/cancel
func TestFromContext_Race(t *testing.T) {
	ctx, cancelCtx := context.WithCancel(context.Background())
	c, stop := cancel.FromContext(ctx)
	defer stop()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Go(func() {
			for !c.Done() {
			}
		})
	}

	wg.Go(cancelCtx)
	wg.Wait()

	if !c.Done() {
		t.Error("expected Done() = true after context cancellation")
	}
}

// TestAtomicCanceler_Race tests concurrent Done/Cancel on AtomicCanceler.
func TestAtomicCanceler_Race(t *testing.T) {
	c := cancel.NewAtomic()
	var wg sync.WaitGroup

	for i := 0; i < 10; i++ {
		wg.Go(func() {
			for j := 0; j < 10000; j++ {
				_ = c.Done()
			}
		})
	}
	wg.Go(c.Cancel)
	wg.Wait()

	if !c.Done() {
		t.Error("expected Done() = true after Cancel()")
	}
}
