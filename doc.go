// Package oneshot provides single-use channels that move exactly one value
// from one goroutine to another.
//
// # Tiers
//
// Every channel is built on the same cell: a value plus an atomic readiness
// flag. The write to the value happens before the flag is set, and the flag
// is cleared with an atomic swap before the value is read, so a receiver
// that sees the flag also sees the whole value. No mutex is taken on any
// path.
//
//   - Raw: shared pointer, no misuse detection. Two Sends is a data race.
//   - Checked: shared pointer, a second Send returns ErrDoubleSend.
//   - Channel (Sender + Receiver): the right to send and the right to
//     receive are separate handles, each consumed by its operation.
//
// Go has no move semantics, so the handle tier is enforced three ways: the
// method sets are disjoint (a Sender cannot receive), handles carry noCopy
// markers for go vet, and cmd/oneshotvet reports a second use of the same
// handle. A consumed handle used at run time panics.
//
// # Waiting
//
// Split and NewShared return a Receiver that parks: the Sender holds the
// Receiver's wake permit and releases it after publishing. SplitPolled and
// NewSharedPolled return a PollReceiver: the Sender wakes nobody and the
// caller polls.
//
// # Ownership
//
// A Channel is borrowed: the caller owns it, splits it inside a scope that
// joins both sides, and closes it. NewShared and NewSharedPolled allocate a
// reference-counted channel that each handle keeps alive on its own, for
// goroutines with no common join point.
//
// # Disposal
//
// A sent value that is never received is not lost silently: if it
// implements Disposer, Dispose is called exactly once when the channel is
// closed, re-split, or its last shared handle is released.
package oneshot
