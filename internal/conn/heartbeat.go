// Package conn implements the resilient connection manager.
package conn

import "github.com/wiremesh/wiremesh-go/internal/core/domain"

// armHeartbeat schedules the next liveness probe. Loop-owned.
func (m *Manager) armHeartbeat() {
	m.arm(timerHeartbeat, m.cfg.HeartbeatInterval)
}

// fireHeartbeat sends one probe and reschedules itself. The heartbeat
// is a recurring, self-rescheduling action that runs until the session
// leaves StateConnected.
//
// Probes are fire-and-forget: a missing reply is not a failure signal;
// only the transport's own close/error events trigger recovery.
func (m *Manager) fireHeartbeat() {
	if m.sess.state != domain.StateConnected {
		return
	}

	if m.sess.tr == nil {
		// Transport already gone; the pending closed event drives the
		// state machine. Skipping the probe is a silent no-op.
		return
	}

	probe, err := domain.NewHeartbeat()
	if err != nil {
		m.log.Error("heartbeat probe creation failed", "error", err)
		m.armHeartbeat()
		return
	}

	data, err := probe.Encode()
	if err != nil {
		m.log.Error("heartbeat probe encoding failed", "error", err)
		m.armHeartbeat()
		return
	}

	if err := m.sess.tr.Send(data); err != nil {
		// Skip silently; the transport-closed event is already on its way.
		m.log.Debug("heartbeat probe skipped", "error", err)
	} else {
		m.metrics.HeartbeatsSent.Inc()
		m.bumpStats(func(s *Stats) { s.HeartbeatsSent++ })
		m.log.Debug("heartbeat probe sent", "id", probe.ID)
	}

	m.armHeartbeat()
}
