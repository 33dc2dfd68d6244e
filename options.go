package oneshot

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
)

// Tier and ownership labels attached to logs and metrics.
const (
	tierRaw       = "raw"
	tierChecked   = "checked"
	tierTypestate = "typestate"

	ownershipBorrowed = "borrowed"
	ownershipShared   = "shared"
)

// Disposer is implemented by values that own a resource which must be
// released if the value is dropped without being received.
//
// Dispose is called exactly once for a sent value that is still stored when
// its channel is closed, re-split, or (for shared channels) when the last
// handle is released. Received values are never disposed by the channel.
type Disposer interface {
	Dispose()
}

func dispose[T any](v T) {
	if d, ok := any(v).(Disposer); ok {
		d.Dispose()
	}
}

// Option configures a channel at construction.
type Option func(*options)

type options struct {
	logger       logrus.FieldLogger
	metrics      *Metrics
	afterPublish func()
}

// WithLogger logs rejected sends at Warn and disposed values at Debug.
func WithLogger(l logrus.FieldLogger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// WithMetrics records channel activity into m.
func WithMetrics(m *Metrics) Option {
	return func(o *options) {
		o.metrics = m
	}
}

// withAfterPublish runs f between a Sender's publish and its wake call.
func withAfterPublish(f func()) Option {
	return func(o *options) {
		o.afterPublish = f
	}
}

func collect(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// probe is the per-channel instrumentation. A nil *probe records nothing, so
// zero-value channels pay only a nil check.
type probe struct {
	log logrus.FieldLogger

	sent, received, disposed prometheus.Counter
	doubleSend, notReady     prometheus.Counter
	parked                   prometheus.Counter
}

func (o options) probe(tier, ownership string) *probe {
	if o.logger == nil && o.metrics == nil {
		return nil
	}
	p := &probe{}
	if o.logger != nil {
		fields := logrus.Fields{"tier": tier}
		if ownership != "" {
			fields["ownership"] = ownership
		}
		p.log = o.logger.WithFields(fields)
	}
	if m := o.metrics; m != nil {
		p.sent = m.sent.WithLabelValues(tier)
		p.received = m.received.WithLabelValues(tier)
		p.disposed = m.disposed.WithLabelValues(tier)
		p.doubleSend = m.rejected.WithLabelValues(tier, reasonDoubleSend)
		p.notReady = m.rejected.WithLabelValues(tier, reasonNotReady)
		p.parked = m.parked
	}
	return p
}

func (p *probe) onSent() {
	if p != nil && p.sent != nil {
		p.sent.Inc()
	}
}

func (p *probe) onReceived() {
	if p != nil && p.received != nil {
		p.received.Inc()
	}
}

func (p *probe) onParked() {
	if p != nil && p.parked != nil {
		p.parked.Inc()
	}
}

func (p *probe) onNotReady() {
	if p != nil && p.notReady != nil {
		p.notReady.Inc()
	}
}

func (p *probe) onDoubleSend() {
	if p == nil {
		return
	}
	if p.doubleSend != nil {
		p.doubleSend.Inc()
	}
	if p.log != nil {
		p.log.WithField("reason", reasonDoubleSend).Warn("oneshot: send rejected")
	}
}

func (p *probe) onDisposed() {
	if p == nil {
		return
	}
	if p.disposed != nil {
		p.disposed.Inc()
	}
	if p.log != nil {
		p.log.Debug("oneshot: unread value disposed")
	}
}
