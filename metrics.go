package oneshot

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

// Rejection reasons used as the "reason" label of oneshot_rejected_total.
const (
	reasonDoubleSend = "double_send"
	reasonNotReady   = "not_ready"
)

// Metrics holds the Prometheus collectors shared by every channel created
// with WithMetrics.
type Metrics struct {
	sent     *prometheus.CounterVec
	received *prometheus.CounterVec
	rejected *prometheus.CounterVec
	disposed *prometheus.CounterVec
	parked   prometheus.Counter
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		sent: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oneshot_sent_total",
				Help: "Values published into one-shot channels.",
			},
			[]string{"tier"},
		),
		received: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oneshot_received_total",
				Help: "Values moved out of one-shot channels by a receiver.",
			},
			[]string{"tier"},
		),
		rejected: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oneshot_rejected_total",
				Help: "Operations rejected with a reportable error.",
			},
			[]string{"tier", "reason"},
		),
		disposed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "oneshot_disposed_total",
				Help: "Sent values dropped without ever being received.",
			},
			[]string{"tier"},
		),
		parked: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "oneshot_parked_total",
				Help: "Times a blocking receiver was woken from park.",
			},
		),
	}
	if reg == nil {
		return m, nil
	}
	for _, c := range []prometheus.Collector{m.sent, m.received, m.rejected, m.disposed, m.parked} {
		if err := reg.Register(c); err != nil {
			return nil, fmt.Errorf("oneshot: register metrics: %w", err)
		}
	}
	return m, nil
}
