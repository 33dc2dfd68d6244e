package oneshot_test

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"

	oneshot "github.com/randomizedcoder/go-oneshot"
)

// counterValue gathers reg and returns the value of the counter name whose
// labels match want exactly.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, want map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("Gather failed: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name {
			continue
		}
		for _, m := range mf.GetMetric() {
			labels := make(map[string]string, len(m.GetLabel()))
			for _, lp := range m.GetLabel() {
				labels[lp.GetName()] = lp.GetValue()
			}
			if equalLabels(labels, want) {
				return m.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func equalLabels(a, b map[string]string) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func newTestMetrics(t *testing.T) (*oneshot.Metrics, *prometheus.Registry) {
	t.Helper()
	reg := prometheus.NewPedanticRegistry()
	m, err := oneshot.NewMetrics(reg)
	if err != nil {
		t.Fatalf("NewMetrics failed: %v", err)
	}
	return m, reg
}

func TestNewMetrics_DoubleRegister(t *testing.T) {
	reg := prometheus.NewRegistry()
	if _, err := oneshot.NewMetrics(reg); err != nil {
		t.Fatalf("first NewMetrics failed: %v", err)
	}

	_, err := oneshot.NewMetrics(reg)
	var are prometheus.AlreadyRegisteredError
	if !errors.As(err, &are) {
		t.Fatalf("expected AlreadyRegisteredError, got %v", err)
	}
}

func TestNewMetrics_NilRegisterer(t *testing.T) {
	m, err := oneshot.NewMetrics(nil)
	if err != nil {
		t.Fatalf("NewMetrics(nil) failed: %v", err)
	}
	if m == nil {
		t.Fatal("expected non-nil Metrics")
	}
}

func TestMetrics_Checked(t *testing.T) {
	m, reg := newTestMetrics(t)
	c := oneshot.NewChecked[int](oneshot.WithMetrics(m))

	if _, err := c.Receive(); !errors.Is(err, oneshot.ErrNotReady) {
		t.Fatalf("expected ErrNotReady, got %v", err)
	}
	if err := c.Send(1); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	_ = c.Send(2)
	_ = c.Send(3)
	if _, err := c.Receive(); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}

	checks := []struct {
		name   string
		labels map[string]string
		want   float64
	}{
		{"oneshot_sent_total", map[string]string{"tier": "checked"}, 1},
		{"oneshot_received_total", map[string]string{"tier": "checked"}, 1},
		{"oneshot_rejected_total", map[string]string{"tier": "checked", "reason": "double_send"}, 2},
		{"oneshot_rejected_total", map[string]string{"tier": "checked", "reason": "not_ready"}, 1},
	}
	for _, c := range checks {
		if got := counterValue(t, reg, c.name, c.labels); got != c.want {
			t.Errorf("%s%v: expected %v, got %v", c.name, c.labels, c.want, got)
		}
	}
}

func TestMetrics_ChannelDisposed(t *testing.T) {
	m, reg := newTestMetrics(t)
	v, n := newResource(1)

	ch := oneshot.New[resource](oneshot.WithMetrics(m))
	s, r := ch.Split()
	s.Send(v)
	r.Close()
	ch.Close()

	expectDisposed(t, n, 1)
	if got := counterValue(t, reg, "oneshot_disposed_total", map[string]string{"tier": "typestate"}); got != 1 {
		t.Errorf("expected 1 disposed, got %v", got)
	}
	if got := counterValue(t, reg, "oneshot_sent_total", map[string]string{"tier": "typestate"}); got != 1 {
		t.Errorf("expected 1 sent, got %v", got)
	}
}

func TestMetrics_SharedPolledNotReady(t *testing.T) {
	m, reg := newTestMetrics(t)

	s, r := oneshot.NewSharedPolled[int](oneshot.WithMetrics(m))
	for range 3 {
		if _, err := r.TryReceive(); !errors.Is(err, oneshot.ErrNotReady) {
			t.Fatalf("expected ErrNotReady, got %v", err)
		}
	}
	s.Send(1)
	if _, err := r.TryReceive(); err != nil {
		t.Fatalf("TryReceive failed: %v", err)
	}

	notReady := map[string]string{"tier": "typestate", "reason": "not_ready"}
	if got := counterValue(t, reg, "oneshot_rejected_total", notReady); got != 3 {
		t.Errorf("expected 3 not_ready rejections, got %v", got)
	}
	if got := counterValue(t, reg, "oneshot_received_total", map[string]string{"tier": "typestate"}); got != 1 {
		t.Errorf("expected 1 received, got %v", got)
	}
}

func TestWithLogger_DoubleSend(t *testing.T) {
	logger, hook := logtest.NewNullLogger()

	c := oneshot.NewChecked[string](oneshot.WithLogger(logger))
	if err := c.Send("a"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if len(hook.AllEntries()) != 0 {
		t.Fatalf("expected no log entries after a good send, got %d", len(hook.AllEntries()))
	}

	_ = c.Send("b")

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry for the rejected send")
	}
	if entry.Level != logrus.WarnLevel {
		t.Errorf("expected Warn, got %v", entry.Level)
	}
	if entry.Data["tier"] != "checked" {
		t.Errorf("expected tier=checked, got %v", entry.Data["tier"])
	}
	if entry.Data["reason"] != "double_send" {
		t.Errorf("expected reason=double_send, got %v", entry.Data["reason"])
	}
}

func TestWithLogger_Disposed(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	v, _ := newResource(1)

	s, r := oneshot.NewShared[resource](oneshot.WithLogger(logger))
	s.Send(v)
	r.Close()

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatal("expected a log entry for the disposed value")
	}
	if entry.Level != logrus.DebugLevel {
		t.Errorf("expected Debug, got %v", entry.Level)
	}
	if entry.Data["ownership"] != "shared" {
		t.Errorf("expected ownership=shared, got %v", entry.Data["ownership"])
	}
}
