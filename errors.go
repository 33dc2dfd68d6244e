package oneshot

import "errors"

var (
	// ErrDoubleSend is returned by Checked.Send when the channel was already
	// used by an earlier Send.
	ErrDoubleSend = errors.New("oneshot: channel already used")

	// ErrNotReady is returned when a receive finds no published value: before
	// any send, or after the value was already received.
	ErrNotReady = errors.New("oneshot: no message available")

	// ErrSenderClosed is returned to a receiver whose Sender was closed
	// without sending.
	ErrSenderClosed = errors.New("oneshot: sender closed without sending")
)
