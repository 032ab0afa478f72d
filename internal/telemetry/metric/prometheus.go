// Package metric provides Prometheus metrics for WireMesh.
package metric

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// namespace prefixes every WireMesh metric.
const namespace = "wiremesh"

// NewRegistry creates a Registry backed by Prometheus collectors and
// registers them with reg. Pass prometheus.DefaultRegisterer for the
// process-wide registry.
func NewRegistry(reg prometheus.Registerer) *Registry {
	newCounter := func(name, help string) prometheus.Counter {
		c := prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
		reg.MustRegister(c)
		return c
	}
	newGauge := func(name, help string) prometheus.Gauge {
		g := prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      name,
			Help:      help,
		})
		reg.MustRegister(g)
		return g
	}

	drain := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "queue_drain_duration_seconds",
		Help:      "Time spent flushing the outbound queue after a connect.",
		Buckets:   prometheus.DefBuckets,
	})
	reg.MustRegister(drain)

	return &Registry{
		ConnectAttempts:  newCounter("connect_attempts_total", "Transport open attempts."),
		ConnectFailures:  newCounter("connect_failures_total", "Failed transport open attempts."),
		Reconnects:       newCounter("reconnects_total", "Reconnect attempts triggered by the retry policy."),
		StateValue:       newGauge("connection_state", "Current connection state (0=disconnected, 1=connecting, 2=connected, 3=failed)."),
		MessagesSent:     newCounter("messages_sent_total", "Messages transmitted on the transport."),
		MessagesReceived: newCounter("messages_received_total", "Application messages received."),
		MessagesDropped:  newCounter("messages_dropped_total", "Outbound messages dropped due to the queue cap."),
		QueueDepth:       newGauge("queue_depth", "Messages waiting in the outbound queue."),
		DrainDuration:    drain,
		HeartbeatsSent:   newCounter("heartbeats_sent_total", "Heartbeat probes sent."),
	}
}

// Handler returns the HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
