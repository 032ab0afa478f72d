// Package conn implements the resilient connection manager.
package conn

import "time"

// timerKind is a timer category. The session holds at most one live
// timer per category; arming a category cancels its prior timer.
type timerKind int

const (
	timerDial timerKind = iota
	timerHeartbeat
	timerReconnect
)

func (k timerKind) String() string {
	switch k {
	case timerDial:
		return "dial-timeout"
	case timerHeartbeat:
		return "heartbeat"
	case timerReconnect:
		return "reconnect"
	default:
		return "unknown"
	}
}

// timerHandle is an explicit handle for one scheduled timer. The
// generation number lets the event loop discard firings from handles
// that were cancelled after the callback was already queued.
type timerHandle struct {
	kind timerKind
	gen  uint64
	t    *time.Timer
}

// arm schedules a timer of the given kind, cancelling any live timer of
// the same kind first. Loop-owned.
func (m *Manager) arm(kind timerKind, d time.Duration) {
	slot := m.timerSlot(kind)
	m.cancel(kind)

	m.sess.timerGen++
	h := &timerHandle{kind: kind, gen: m.sess.timerGen}
	h.t = time.AfterFunc(d, func() {
		m.post(timerMsg{kind: kind, gen: h.gen})
	})
	*slot = h
}

// cancel stops and clears the live timer of the given kind, if any.
// Loop-owned.
func (m *Manager) cancel(kind timerKind) {
	slot := m.timerSlot(kind)
	if *slot != nil {
		(*slot).t.Stop()
		*slot = nil
	}
}

// cancelAllTimers clears every timer category. Loop-owned.
func (m *Manager) cancelAllTimers() {
	m.cancel(timerDial)
	m.cancel(timerHeartbeat)
	m.cancel(timerReconnect)
}

// takeTimer consumes the live timer of the given kind if its generation
// matches; it returns false for stale or unknown firings. Loop-owned.
func (m *Manager) takeTimer(kind timerKind, gen uint64) bool {
	slot := m.timerSlot(kind)
	if *slot == nil || (*slot).gen != gen {
		return false
	}
	*slot = nil
	return true
}

func (m *Manager) timerSlot(kind timerKind) **timerHandle {
	switch kind {
	case timerDial:
		return &m.sess.dialTimer
	case timerHeartbeat:
		return &m.sess.heartbeatTimer
	default:
		return &m.sess.reconnectTimer
	}
}
