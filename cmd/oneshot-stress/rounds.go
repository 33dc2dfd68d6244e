package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	oneshot "github.com/randomizedcoder/go-oneshot"
	"github.com/randomizedcoder/go-oneshot/internal/config"
)

// round moves i from a fresh sender goroutine to the caller and returns what
// arrived.
type round func(ctx context.Context, i int) (int, error)

// newRound builds the round for cfg's tier, ownership and wake settings.
// The returned cleanup releases a borrowed channel.
func newRound(cfg config.Config, opts ...oneshot.Option) (round, func(), error) {
	switch cfg.Tier {
	case "raw":
		return rawRound(opts), func() {}, nil
	case "checked":
		return checkedRound(opts), func() {}, nil
	case "typestate":
	default:
		return nil, nil, fmt.Errorf("unknown tier %q", cfg.Tier)
	}

	switch {
	case cfg.Ownership == "shared" && cfg.Wake == "park":
		return sharedRound(opts), func() {}, nil
	case cfg.Ownership == "shared":
		return sharedPolledRound(opts), func() {}, nil
	}

	ch := oneshot.New[int](opts...)
	if cfg.Wake == "poll" {
		return borrowedPolledRound(ch), ch.Close, nil
	}
	return borrowedRound(ch), ch.Close, nil
}

// spin polls recv until it stops reporting ErrNotReady, suspending between
// polls.
func spin(ctx context.Context, recv func() (int, error)) (int, error) {
	b := oneshot.NewBackoff(8, time.Microsecond, time.Millisecond)
	for {
		v, err := recv()
		if !errors.Is(err, oneshot.ErrNotReady) {
			return v, err
		}
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		b.Wait()
	}
}

func rawRound(opts []oneshot.Option) round {
	return func(ctx context.Context, i int) (int, error) {
		r := oneshot.NewRaw[int](opts...)
		go r.Send(i)
		return spin(ctx, r.Receive)
	}
}

func checkedRound(opts []oneshot.Option) round {
	return func(ctx context.Context, i int) (int, error) {
		c := oneshot.NewChecked[int](opts...)
		errc := make(chan error, 1)
		go func() { errc <- c.Send(i) }()
		v, err := spin(ctx, c.Receive)
		if err != nil {
			return v, err
		}
		if err := <-errc; err != nil {
			return v, fmt.Errorf("send: %w", err)
		}
		return v, nil
	}
}

func borrowedRound(ch *oneshot.Channel[int]) round {
	return func(ctx context.Context, i int) (int, error) {
		s, r := ch.Split()
		var wg sync.WaitGroup
		wg.Go(func() { s.Send(i) })
		v, err := r.ReceiveContext(ctx)
		wg.Wait()
		if err != nil {
			r.Close()
		}
		return v, err
	}
}

func borrowedPolledRound(ch *oneshot.Channel[int]) round {
	return func(ctx context.Context, i int) (int, error) {
		s, r := ch.SplitPolled()
		var wg sync.WaitGroup
		wg.Go(func() { s.Send(i) })
		v, err := r.Wait(ctx)
		wg.Wait()
		if err != nil {
			r.Close()
		}
		return v, err
	}
}

func sharedRound(opts []oneshot.Option) round {
	return func(ctx context.Context, i int) (int, error) {
		s, r := oneshot.NewShared[int](opts...)
		go s.Send(i)
		v, err := r.ReceiveContext(ctx)
		if err != nil {
			r.Close()
		}
		return v, err
	}
}

func sharedPolledRound(opts []oneshot.Option) round {
	return func(ctx context.Context, i int) (int, error) {
		s, r := oneshot.NewSharedPolled[int](opts...)
		go s.Send(i)
		v, err := r.Wait(ctx)
		if err != nil {
			r.Close()
		}
		return v, err
	}
}
