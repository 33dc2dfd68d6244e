package cancel

import "context"

// ContextCanceler wraps context.Context for cancellation signaling.
//
// Each Done() performs a non-blocking select on ctx.Done(). It is the
// baseline AtomicCanceler is measured against, and the form to use when the
// context must also be handed to blocking calls.
type ContextCanceler struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContext creates a ContextCanceler from a parent context.
func NewContext(parent context.Context) *ContextCanceler {
	ctx, cancel := context.WithCancel(parent)
	return &ContextCanceler{
		ctx:    ctx,
		cancel: cancel,
	}
}

// Done returns true if the context has been cancelled.
func (c *ContextCanceler) Done() bool {
	select {
	case <-c.ctx.Done():
		return true
	default:
		return false
	}
}

// Cancel cancels the context.
func (c *ContextCanceler) Cancel() {
	c.cancel()
}

// Context returns the underlying context.Context, for calls such as
// Receiver.ReceiveContext that block on it.
func (c *ContextCanceler) Context() context.Context {
	return c.ctx
}
