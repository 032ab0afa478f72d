// Package conn implements the resilient connection manager.
package conn

import "github.com/wiremesh/wiremesh-go/internal/core/domain"

// evaluateReconnect is the reconnection policy decision function,
// consulted after every unplanned disconnect or failed attempt.
//
// The delay is fixed (no exponential backoff) and the attempt budget
// counts consecutive failures since the last successful connection.
// Loop-owned.
func (m *Manager) evaluateReconnect() {
	if !m.cfg.AutoReconnect {
		return
	}

	if m.sess.reconnectAttempts >= m.cfg.MaxReconnectAttempts {
		err := domain.ErrReconnectExhausted
		m.sess.lastError = err.Error()
		m.log.Warn("reconnect attempts exhausted",
			"attempts", m.sess.reconnectAttempts,
			"max", m.cfg.MaxReconnectAttempts,
		)
		m.setState(domain.StateFailed)
		m.notifyError(err)
		return
	}

	m.sess.reconnectAttempts++
	m.bumpStats(func(s *Stats) { s.ReconnectAttempts = m.sess.reconnectAttempts })
	m.log.Info("reconnect scheduled",
		"attempt", m.sess.reconnectAttempts,
		"max", m.cfg.MaxReconnectAttempts,
		"delay", m.cfg.ReconnectInterval,
	)
	m.arm(timerReconnect, m.cfg.ReconnectInterval)
}

// fireReconnect re-attempts the connection when the reconnect timer
// fires. An explicit disconnect cancels the timer, so reaching here
// always means the retry is still wanted.
func (m *Manager) fireReconnect() {
	switch m.sess.state {
	case domain.StateDisconnected, domain.StateFailed:
		m.metrics.Reconnects.Inc()
		m.beginAttempt()
	}
}
