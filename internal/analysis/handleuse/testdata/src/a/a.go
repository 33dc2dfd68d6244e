package a

import (
	"context"

	oneshot "github.com/randomizedcoder/go-oneshot"
)

func doubleSend(ch *oneshot.Channel[int]) {
	s, r := ch.Split()
	s.Send(1)
	s.Send(2) // want `s.Send on a consumed oneshot.Sender`
	r.Close()
}

func doubleReceive(ch *oneshot.Channel[int]) {
	s, r := ch.Split()
	s.Send(1)
	_, _ = r.Receive()
	_, _ = r.ReceiveContext(context.Background()) // want `r.ReceiveContext on a consumed oneshot.Receiver`
}

func sendAfterClose(ch *oneshot.Channel[int]) {
	s, r := ch.Split()
	s.Close()
	s.Send(1) // want `s.Send on a consumed oneshot.Sender`
	r.Close()
}

func closeAfterSend(ch *oneshot.Channel[int]) {
	s, r := ch.Split()
	s.Send(1)
	s.Close()
	r.Close()
	r.Close()
}

func branches(ch *oneshot.Channel[int], ok bool) {
	s, r := ch.Split()
	if ok {
		s.Send(1)
	} else {
		s.Send(2)
	}
	r.Close()
}

func earlyReturn(ch *oneshot.Channel[int], fail bool) {
	s, r := ch.Split()
	if fail {
		s.Close()
		r.Close()
		return
	}
	s.Send(1)
	_, _ = r.Receive()
}

func nestedAfter(ch *oneshot.Channel[int], ok bool) {
	s, r := ch.Split()
	s.Send(1)
	if ok {
		s.Send(2) // want `s.Send on a consumed oneshot.Sender`
	}
	r.Close()
}

func resplit(ch *oneshot.Channel[int]) {
	s, r := ch.Split()
	s.Send(1)
	_, _ = r.Receive()

	s, r = ch.Split()
	s.Send(2)
	_, _ = r.Receive()
}

func polled(ch *oneshot.Channel[int]) {
	s, r := ch.SplitPolled()
	s.Send(1)
	_, _ = r.TryReceive()
	_, _ = r.TryReceive()
	_, _ = r.Wait(context.Background())
	_, _ = r.Wait(context.Background())
	r.Close()
	_, _ = r.TryReceive() // want `r.TryReceive on a consumed oneshot.PollReceiver`
}

func retryAfterCancel(ch *oneshot.Channel[int], ctx context.Context) {
	s, r := ch.Split()
	if _, err := r.ReceiveContext(ctx); err != nil {
		s.Send(1)
		_, _ = r.Receive()
		return
	}
	s.Close()
}

func closures(ch *oneshot.Channel[int]) {
	s, r := ch.Split()
	go func() {
		s.Send(1)
	}()
	_, _ = r.Receive()
}

func copies(ch *oneshot.Channel[int]) {
	s, r := ch.Split()
	c := *s // want `copy of oneshot.Sender`
	c.Send(1)
	var p *oneshot.Receiver[int] = r
	_, _ = p.Receive()
}
