// Package metric provides Prometheus metrics for WireMesh.
package metric

// Counter is a cumulative metric that only increases.
type Counter interface {
	Inc()
	Add(float64)
}

// Gauge is a metric that can go up and down.
type Gauge interface {
	Set(float64)
	Inc()
	Dec()
}

// Histogram samples observations and counts them in buckets.
type Histogram interface {
	Observe(float64)
}

// Registry holds all connection manager metrics.
type Registry struct {
	// Connection lifecycle
	ConnectAttempts Counter
	ConnectFailures Counter
	Reconnects      Counter
	StateValue      Gauge // current domain.ConnState as a numeric value

	// Message flow
	MessagesSent     Counter
	MessagesReceived Counter
	MessagesDropped  Counter
	QueueDepth       Gauge
	DrainDuration    Histogram

	// Liveness
	HeartbeatsSent Counter
}

// nopCounter, nopGauge, and nopHistogram discard all observations.
type (
	nopCounter   struct{}
	nopGauge     struct{}
	nopHistogram struct{}
)

func (nopCounter) Inc()              {}
func (nopCounter) Add(float64)       {}
func (nopGauge) Set(float64)         {}
func (nopGauge) Inc()                {}
func (nopGauge) Dec()                {}
func (nopHistogram) Observe(float64) {}

// NewNop creates a registry that discards every observation. It is the
// default when no metrics backend is wired up.
func NewNop() *Registry {
	return &Registry{
		ConnectAttempts:  nopCounter{},
		ConnectFailures:  nopCounter{},
		Reconnects:       nopCounter{},
		StateValue:       nopGauge{},
		MessagesSent:     nopCounter{},
		MessagesReceived: nopCounter{},
		MessagesDropped:  nopCounter{},
		QueueDepth:       nopGauge{},
		DrainDuration:    nopHistogram{},
		HeartbeatsSent:   nopCounter{},
	}
}
