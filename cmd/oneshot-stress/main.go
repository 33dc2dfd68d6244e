// Command oneshot-stress runs send/receive rounds between two goroutines
// and checks that every round delivers exactly the value sent.
//
// Usage:
//
//	go run ./cmd/oneshot-stress -n 1000000 -tier typestate -ownership shared
//	go run ./cmd/oneshot-stress -config stress.yaml -metrics-addr :9100
//
// Exits 1 if any round delivers the wrong value or fails.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	uuid "github.com/satori/go.uuid"
	"github.com/sirupsen/logrus"

	oneshot "github.com/randomizedcoder/go-oneshot"
	"github.com/randomizedcoder/go-oneshot/internal/cancel"
	"github.com/randomizedcoder/go-oneshot/internal/config"
	"github.com/randomizedcoder/go-oneshot/internal/logging"
	"github.com/randomizedcoder/go-oneshot/internal/tick"
)

func main() {
	os.Exit(stress(os.Args[1:]))
}

// stress runs the command and returns its exit status.
func stress(args []string) int {
	cfg, err := config.Load("oneshot-stress", args)
	if err != nil {
		fmt.Fprintf(os.Stderr, "oneshot-stress: %v\n", err)
		return 2
	}

	logger, err := logging.New(cfg.LogLevel, os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "oneshot-stress: %v\n", err)
		return 2
	}
	log := logger.WithField("run_id", uuid.NewV4().String())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	metrics, err := oneshot.NewMetrics(reg)
	if err != nil {
		log.WithError(err).Error("metrics setup failed")
		return 1
	}
	if cfg.MetricsAddr != "" {
		srv := serveMetrics(cfg.MetricsAddr, reg, log)
		defer shutdown(srv, log)
	}

	st, err := run(ctx, cfg, log, oneshot.WithMetrics(metrics), oneshot.WithLogger(log))
	entry := log.WithFields(logrus.Fields{
		"rounds":     st.rounds,
		"mismatches": st.mismatches,
		"failures":   st.failures,
		"elapsed":    st.elapsed.Round(time.Millisecond),
	})
	switch {
	case err != nil:
		entry.WithError(err).Error("stress run failed")
		return 1
	case st.mismatches > 0 || st.failures > 0:
		entry.Error("stress run found bad rounds")
		return 1
	}
	entry.Info("stress run passed")
	return 0
}

type stats struct {
	rounds     int
	mismatches int
	failures   int
	elapsed    time.Duration
}

// run executes rounds until cfg.Iterations is reached or ctx is done.
// Cancellation ends the run early without counting as a failure.
func run(ctx context.Context, cfg config.Config, log logrus.FieldLogger, opts ...oneshot.Option) (st stats, err error) {
	step, cleanup, err := newRound(cfg, opts...)
	if err != nil {
		return st, err
	}
	defer cleanup()

	ticker, err := tick.New(cfg.Ticker, cfg.ReportInterval)
	if err != nil {
		return st, err
	}

	done, release := cancel.FromContext(ctx)
	defer release()

	log = log.WithFields(logrus.Fields{
		"tier":      cfg.Tier,
		"ownership": cfg.Ownership,
		"wake":      cfg.Wake,
	})
	log.WithField("iterations", cfg.Iterations).Info("stress run starting")

	start := time.Now()
	defer func() { st.elapsed = time.Since(start) }()

	for i := 0; cfg.Iterations == 0 || i < cfg.Iterations; i++ {
		if done.Done() {
			log.WithField("rounds", st.rounds).Warn("interrupted")
			return st, nil
		}

		got, err := step(ctx, i)
		switch {
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			log.WithField("rounds", st.rounds).Warn("interrupted")
			return st, nil
		case err != nil:
			st.failures++
			log.WithError(err).WithField("round", i).Error("round failed")
		case got != i:
			st.mismatches++
			log.WithFields(logrus.Fields{"round": i, "got": got}).Error("round delivered wrong value")
		}
		st.rounds++

		if ticker.Tick() {
			log.WithFields(logrus.Fields{
				"rounds":  st.rounds,
				"per_sec": float64(st.rounds) / time.Since(start).Seconds(),
			}).Info("progress")
		}
	}
	return st, nil
}

func serveMetrics(addr string, reg *prometheus.Registry, log logrus.FieldLogger) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Error("metrics server stopped")
		}
	}()
	log.WithField("addr", addr).Info("serving metrics")
	return srv
}

func shutdown(srv *http.Server, log logrus.FieldLogger) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Warn("metrics server shutdown")
	}
}
