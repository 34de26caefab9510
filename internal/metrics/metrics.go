package metrics

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the search collectors on a private registry.
type Metrics struct {
	Registry         *prometheus.Registry
	Matches          prometheus.Counter
	EstimatedOPS     prometheus.Gauge
	WebhookFailures  prometheus.Counter
	WebhookDelivered prometheus.Counter
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		Registry: reg,
		Matches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vanityeth_matches_total",
			Help: "Addresses that matched the pattern.",
		}),
		EstimatedOPS: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "vanityeth_estimated_ops_per_second",
			Help: "Last benchmark estimate of aggregate attempts per second.",
		}),
		WebhookFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vanityeth_webhook_failures_total",
			Help: "Webhook deliveries that failed.",
		}),
		WebhookDelivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "vanityeth_webhook_delivered_total",
			Help: "Webhook deliveries acknowledged with 2xx.",
		}),
	}
	reg.MustRegister(
		m.Matches,
		m.EstimatedOPS,
		m.WebhookFailures,
		m.WebhookDelivered,
	)
	return m
}

// TrackAttempts exposes the engine's attempt counter, read on every scrape.
// Call it once.
func (m *Metrics) TrackAttempts(attempts func() uint64) {
	m.Registry.MustRegister(prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "vanityeth_attempts_total",
		Help: "Mnemonics generated and checked, all workers.",
	}, func() float64 { return float64(attempts()) }))
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}

// Serve exposes /metrics on addr until ctx is done.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", m.Handler())
	srv := &http.Server{Addr: addr, Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
