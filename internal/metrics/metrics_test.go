package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestCounters(t *testing.T) {
	m := New()

	m.MessagesReceived.Inc()
	m.MessagesReceived.Inc()
	if got := testutil.ToFloat64(m.MessagesReceived); got != 2 {
		t.Errorf("messages received = %f, want 2", got)
	}

	m.CommandsHandled.WithLabelValues("register").Inc()
	if got := testutil.ToFloat64(m.CommandsHandled.WithLabelValues("register")); got != 1 {
		t.Errorf("commands handled = %f, want 1", got)
	}

	if m.Uptime() < 0 {
		t.Error("uptime should not be negative")
	}
}
