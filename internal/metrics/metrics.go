// Package metrics exposes Prometheus counters for the bot and an optional
// HTTP endpoint serving them.
package metrics

import (
	"context"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wagner-austin/signal-bot/internal/logging"
)

// Metrics holds the bot's instrumentation.
type Metrics struct {
	registry *prometheus.Registry
	started  time.Time

	MessagesReceived prometheus.Counter
	MessagesSent     prometheus.Counter
	CommandsHandled  *prometheus.CounterVec
	CommandErrors    prometheus.Counter
	BackupsCreated   prometheus.Counter
	UptimeSeconds    prometheus.GaugeFunc
}

// New builds the metric set on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		started:  time.Now(),
	}
	m.MessagesReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signalbot_messages_received_total",
		Help: "Envelopes received from signal-cli.",
	})
	m.MessagesSent = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signalbot_messages_sent_total",
		Help: "Messages sent through any transport.",
	})
	m.CommandsHandled = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "signalbot_commands_handled_total",
		Help: "Commands dispatched, by canonical name.",
	}, []string{"command"})
	m.CommandErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signalbot_command_errors_total",
		Help: "Commands that ended in an internal error.",
	})
	m.BackupsCreated = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "signalbot_backups_created_total",
		Help: "Database backup snapshots created.",
	})
	m.UptimeSeconds = prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Name: "signalbot_uptime_seconds",
		Help: "Seconds since the service started.",
	}, func() float64 { return time.Since(m.started).Seconds() })

	m.registry.MustRegister(
		m.MessagesReceived, m.MessagesSent, m.CommandsHandled,
		m.CommandErrors, m.BackupsCreated, m.UptimeSeconds,
	)
	return m
}

// Uptime returns the time since the metrics (and so the service) started.
func (m *Metrics) Uptime() time.Duration {
	return time.Since(m.started)
}

// Serve runs an HTTP endpoint exposing /metrics until the context is
// cancelled.
func (m *Metrics) Serve(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{}))
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	logging.Boot("metrics listening on %s", addr)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
