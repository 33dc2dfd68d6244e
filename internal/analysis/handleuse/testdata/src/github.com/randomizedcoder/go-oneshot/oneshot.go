package oneshot

import "context"

type Channel[T any] struct{}

func (ch *Channel[T]) Split() (*Sender[T], *Receiver[T])           { return nil, nil }
func (ch *Channel[T]) SplitPolled() (*Sender[T], *PollReceiver[T]) { return nil, nil }

type Sender[T any] struct{}

func (s *Sender[T]) Send(v T) {}
func (s *Sender[T]) Close()   {}

type Receiver[T any] struct{}

func (r *Receiver[T]) Receive() (T, error)                            { var z T; return z, nil }
func (r *Receiver[T]) ReceiveContext(ctx context.Context) (T, error) { var z T; return z, nil }
func (r *Receiver[T]) IsReady() bool                                  { return false }
func (r *Receiver[T]) Close()                                         {}

type PollReceiver[T any] struct{}

func (r *PollReceiver[T]) TryReceive() (T, error)                 { var z T; return z, nil }
func (r *PollReceiver[T]) Wait(ctx context.Context) (T, error)    { var z T; return z, nil }
func (r *PollReceiver[T]) IsReady() bool                          { return false }
func (r *PollReceiver[T]) Close()                                 {}
