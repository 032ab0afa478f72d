// Package conn implements the resilient connection manager.
package conn

import "github.com/wiremesh/wiremesh-go/internal/core/domain"

// Stats is a point-in-time snapshot of the session counters, exposed
// for status displays. All fields are read-only observations; callers
// never mutate session state through it.
type Stats struct {
	State             domain.ConnState `json:"state"`
	ReconnectAttempts int              `json:"reconnect_attempts"`
	Pending           int              `json:"pending"`
	Sent              uint64           `json:"sent"`
	Received          uint64           `json:"received"`
	Dropped           uint64           `json:"dropped"`
	HeartbeatsSent    uint64           `json:"heartbeats_sent"`
	LastError         string           `json:"last_error,omitempty"`
}

// bumpStats mutates the stats mirror under its lock. Called from the
// event loop only.
func (m *Manager) bumpStats(fn func(*Stats)) {
	m.statsMu.Lock()
	fn(&m.stats)
	m.statsMu.Unlock()
}

// updateQueueDepth refreshes the pending count and queue depth gauge.
func (m *Manager) updateQueueDepth() {
	depth := m.sess.queue.len()
	m.metrics.QueueDepth.Set(float64(depth))
	m.bumpStats(func(s *Stats) { s.Pending = depth })
}

// snapshotStats builds a consistent snapshot from inside the loop.
func (m *Manager) snapshotStats() Stats {
	m.statsMu.Lock()
	s := m.stats
	m.statsMu.Unlock()
	s.State = m.sess.state
	s.ReconnectAttempts = m.sess.reconnectAttempts
	s.Pending = m.sess.queue.len()
	s.LastError = m.sess.lastError
	return s
}
