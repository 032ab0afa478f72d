// Package conn implements the resilient connection manager.
package conn

import (
	"time"

	"github.com/wiremesh/wiremesh-go/internal/core/domain"
)

// outboundQueue is the FIFO buffer for messages that cannot be sent
// yet. It never reorders: eventual send order is submission order.
// Loop-owned, so no locking.
type outboundQueue struct {
	items []domain.Message
	cap   int // 0 = unbounded
}

// push appends a message. It returns false when the queue is at its
// configured cap; the message is not enqueued in that case.
func (q *outboundQueue) push(msg domain.Message) bool {
	if q.cap > 0 && len(q.items) >= q.cap {
		return false
	}
	q.items = append(q.items, msg)
	return true
}

// pushFront returns a popped message to the head of the queue. Only the
// drain pass uses it: the popped message is older than everything still
// queued, so putting it back in front preserves submission order.
func (q *outboundQueue) pushFront(msg domain.Message) {
	q.items = append([]domain.Message{msg}, q.items...)
}

// pop removes and returns the oldest message.
func (q *outboundQueue) pop() (domain.Message, bool) {
	if len(q.items) == 0 {
		return domain.Message{}, false
	}
	msg := q.items[0]
	q.items = q.items[1:]
	return msg, true
}

// len returns the number of queued messages.
func (q *outboundQueue) len() int {
	return len(q.items)
}

// clear discards all queued messages.
func (q *outboundQueue) clear() {
	q.items = nil
}

// transmit encodes and sends one message on the live transport.
// Loop-owned.
func (m *Manager) transmit(msg domain.Message) error {
	data, err := msg.Encode()
	if err != nil {
		return err
	}
	if err := m.sess.tr.Send(data); err != nil {
		return err
	}
	m.metrics.MessagesSent.Inc()
	m.bumpStats(func(s *Stats) { s.Sent++ })
	return nil
}

// drainQueue flushes pending messages strictly in FIFO order after a
// successful connect. A failed send stops the pass and keeps the failed
// message and everything behind it queued, oldest first, for the next
// successful connection.
func (m *Manager) drainQueue() {
	if m.sess.queue.len() == 0 {
		return
	}

	start := time.Now()
	drained := 0
	for {
		msg, ok := m.sess.queue.pop()
		if !ok {
			break
		}
		if err := m.transmit(msg); err != nil {
			m.sess.queue.pushFront(msg)
			m.log.Warn("drain interrupted",
				"id", msg.ID,
				"remaining", m.sess.queue.len(),
				"error", err,
			)
			break
		}
		drained++
	}
	m.metrics.DrainDuration.Observe(time.Since(start).Seconds())

	m.updateQueueDepth()
	if drained > 0 {
		m.log.Info("outbound queue drained",
			"sent", drained,
			"remaining", m.sess.queue.len(),
		)
	}
}
