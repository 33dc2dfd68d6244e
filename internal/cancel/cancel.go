// Package cancel provides cancellation signals for the polling side of the
// externally driven one-shot receiver.
//
// Two implementations of the Canceler interface are provided:
//   - ContextCanceler: selects on ctx.Done() on every check
//   - AtomicCanceler: a single atomic load per check
//
// Poll loops check for cancellation once per readiness probe, so the check
// has to be cheap. FromContext bridges a context.Context to an
// AtomicCanceler without a helper goroutine.
package cancel

// Canceler signals that a waiter should stop waiting.
//
// Implementations must be safe for concurrent use:
//   - Multiple goroutines may call Done() concurrently
//   - Cancel() may be called concurrently with Done()
type Canceler interface {
	// Done returns true if cancellation has been triggered.
	Done() bool

	// Cancel triggers cancellation. Safe to call multiple times.
	Cancel()
}
