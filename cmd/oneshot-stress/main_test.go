package main

import (
	"context"
	"io"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/randomizedcoder/go-oneshot/internal/config"
)

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestRun_AllShapes(t *testing.T) {
	testCases := []struct {
		tier, ownership, wake string
	}{
		{"raw", "borrowed", "park"},
		{"checked", "borrowed", "park"},
		{"typestate", "borrowed", "park"},
		{"typestate", "borrowed", "poll"},
		{"typestate", "shared", "park"},
		{"typestate", "shared", "poll"},
	}

	for _, tc := range testCases {
		t.Run(tc.tier+"/"+tc.ownership+"/"+tc.wake, func(t *testing.T) {
			cfg := config.Default()
			cfg.Iterations = 200
			cfg.Tier = tc.tier
			cfg.Ownership = tc.ownership
			cfg.Wake = tc.wake

			st, err := run(context.Background(), cfg, quietLogger())
			if err != nil {
				t.Fatalf("run failed: %v", err)
			}
			if st.rounds != cfg.Iterations {
				t.Errorf("expected %d rounds, got %d", cfg.Iterations, st.rounds)
			}
			if st.mismatches != 0 || st.failures != 0 {
				t.Errorf("expected a clean run, got %d mismatches and %d failures", st.mismatches, st.failures)
			}
		})
	}
}

func TestRun_Cancelled(t *testing.T) {
	cfg := config.Default()
	cfg.Iterations = 0 // until interrupted

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	st, err := run(ctx, cfg, quietLogger())
	if err != nil {
		t.Fatalf("expected cancellation to end the run cleanly, got %v", err)
	}
	if st.rounds != 0 {
		t.Errorf("expected 0 rounds on a cancelled context, got %d", st.rounds)
	}
}

func TestStress_ExitCodes(t *testing.T) {
	if code := stress([]string{"-n", "50", "-log-level", "error"}); code != 0 {
		t.Errorf("expected exit 0, got %d", code)
	}
	if code := stress([]string{"-tier", "bogus"}); code != 2 {
		t.Errorf("expected exit 2 for bad config, got %d", code)
	}
}
