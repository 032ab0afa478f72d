// Package conn implements the resilient connection manager.
package conn

import (
	"context"
	"encoding/json"
	"sync"
	"sync/atomic"

	"github.com/wiremesh/wiremesh-go/internal/core/domain"
	"github.com/wiremesh/wiremesh-go/internal/telemetry/logger"
	"github.com/wiremesh/wiremesh-go/internal/telemetry/metric"
	"github.com/wiremesh/wiremesh-go/internal/transport"
)

// loopBuffer sizes the event-loop mailbox. It absorbs bursts from
// timers, transport pumps, and callers without blocking them.
const loopBuffer = 128

// Messages posted into the event loop.
type (
	connectMsg    struct{}
	disconnectMsg struct{}
	sendMsg       struct{ msg domain.Message }
	listenerMsg   struct{ l Listener }
	timerMsg      struct {
		kind timerKind
		gen  uint64
	}
	transportMsg struct {
		attempt uint64
		ev      transport.Event
	}
	statsMsg  struct{ reply chan Stats }
	timersMsg struct{ reply chan map[timerKind]bool }
	closeMsg  struct{}
)

// session is the single mutable session record. It is owned exclusively
// by the event loop; nothing outside run() touches it.
type session struct {
	state             domain.ConnState
	tr                transport.Transport
	cancelDial        context.CancelFunc
	attempt           uint64 // transport attempt generation
	reconnectAttempts int
	lastError         string
	queue             outboundQueue

	// Explicit timer handles, at most one live per category.
	timerGen       uint64
	dialTimer      *timerHandle
	heartbeatTimer *timerHandle
	reconnectTimer *timerHandle

	listeners []Listener
}

// Manager manages one logical connection to a remote endpoint.
//
// Construct with New, then drive it with Connect, Send, and Disconnect.
// Close releases the manager; a closed manager cannot be reused.
type Manager struct {
	endpoint string
	cfg      Config
	factory  transport.Factory
	log      logger.Logger
	metrics  *metric.Registry

	loop chan any
	done chan struct{}

	closeOnce sync.Once

	// stateMirror lets State() read without entering the loop.
	stateMirror atomic.Int32

	// statsMu guards the stats mirror maintained by the loop.
	statsMu sync.Mutex
	stats   Stats

	// session record, loop-owned
	sess session
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the manager logger.
func WithLogger(log logger.Logger) Option {
	return func(m *Manager) {
		m.log = log
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(reg *metric.Registry) Option {
	return func(m *Manager) {
		m.metrics = reg
	}
}

// WithListener registers a listener at construction time.
func WithListener(l Listener) Option {
	return func(m *Manager) {
		m.sess.listeners = append(m.sess.listeners, l)
	}
}

// New creates a Manager for the given endpoint. The endpoint is
// immutable for the manager's lifetime; a different endpoint requires a
// new manager. The manager starts in StateDisconnected and does not
// connect until Connect is called.
func New(endpoint string, factory transport.Factory, cfg Config, opts ...Option) *Manager {
	m := &Manager{
		endpoint: endpoint,
		cfg:      cfg.normalized(),
		factory:  factory,
		log:      logger.Default(),
		metrics:  metric.NewNop(),
		loop:     make(chan any, loopBuffer),
		done:     make(chan struct{}),
	}
	m.sess.state = domain.StateDisconnected
	m.sess.queue.cap = m.cfg.MaxQueueSize

	for _, opt := range opts {
		opt(m)
	}

	m.log = m.log.With("endpoint", endpoint)

	go m.run()
	return m
}

// Connect asks the manager to establish the connection. It is a no-op
// while already connecting or connected.
func (m *Manager) Connect() {
	m.post(connectMsg{})
}

// Disconnect tears the connection down and cancels all pending work,
// including a scheduled reconnect. Queued outbound messages are kept
// and flushed on the next successful connect. Idempotent.
func (m *Manager) Disconnect() {
	m.post(disconnectMsg{})
}

// Send submits a message for transmission. It never blocks and never
// fails for "not connected": when the connection is down the message is
// queued in FIFO order. The returned error covers only validation and a
// closed manager.
func (m *Manager) Send(payload json.RawMessage) error {
	msg, err := domain.NewMessage(payload)
	if err != nil {
		return err
	}
	if err := msg.Validate(); err != nil {
		return err
	}
	if !m.post(sendMsg{msg: msg}) {
		return domain.ErrManagerClosed
	}
	return nil
}

// AddListener registers a listener for state, message, and error
// notifications.
func (m *Manager) AddListener(l Listener) {
	m.post(listenerMsg{l: l})
}

// State returns the current connection state.
func (m *Manager) State() domain.ConnState {
	return domain.ConnState(m.stateMirror.Load())
}

// Stats returns a snapshot of the session counters.
func (m *Manager) Stats() Stats {
	m.statsMu.Lock()
	defer m.statsMu.Unlock()
	s := m.stats
	s.State = m.State()
	return s
}

// Close shuts the manager down: all timers are cancelled, the transport
// is closed, and queued messages are discarded. Blocks until the event
// loop has exited.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		select {
		case m.loop <- closeMsg{}:
		case <-m.done:
		}
	})
	<-m.done
}

// post delivers a message to the event loop. It reports false when the
// manager is closed.
func (m *Manager) post(msg any) bool {
	select {
	case m.loop <- msg:
		return true
	case <-m.done:
		return false
	}
}

// run is the event loop. All session mutation happens here.
func (m *Manager) run() {
	defer close(m.done)

	for raw := range m.loop {
		switch msg := raw.(type) {
		case connectMsg:
			m.handleConnect()
		case disconnectMsg:
			m.handleDisconnect()
		case sendMsg:
			m.handleSend(msg.msg)
		case listenerMsg:
			m.sess.listeners = append(m.sess.listeners, msg.l)
		case timerMsg:
			m.handleTimer(msg)
		case transportMsg:
			m.handleTransport(msg)
		case statsMsg:
			msg.reply <- m.snapshotStats()
		case timersMsg:
			msg.reply <- map[timerKind]bool{
				timerDial:      m.sess.dialTimer != nil,
				timerHeartbeat: m.sess.heartbeatTimer != nil,
				timerReconnect: m.sess.reconnectTimer != nil,
			}
		case closeMsg:
			m.shutdown()
			return
		}
	}
}

// ============================================================================
// State machine
// ============================================================================

// handleConnect implements the explicit connect() operation.
func (m *Manager) handleConnect() {
	switch m.sess.state {
	case domain.StateConnecting, domain.StateConnected:
		// Exactly one attempt in flight at any time.
		m.log.Debug("connect ignored", "state", m.sess.state.String())
		return
	}

	// An explicit connect restarts the attempt budget.
	m.sess.reconnectAttempts = 0
	m.cancel(timerReconnect)
	m.beginAttempt()
}

// beginAttempt opens a fresh transport and arms the dial timeout.
func (m *Manager) beginAttempt() {
	m.sess.attempt++
	m.setState(domain.StateConnecting)
	m.metrics.ConnectAttempts.Inc()

	tr := m.factory(m.endpoint)
	ctx, cancel := context.WithCancel(context.Background())
	m.sess.tr = tr
	m.sess.cancelDial = cancel

	m.log.Debug("opening transport", "attempt", m.sess.attempt)

	go m.pump(tr, m.sess.attempt)

	if err := tr.Open(ctx); err != nil {
		// Misuse of a fresh transport; treat like an immediate failure.
		m.failAttempt(domain.ErrTransport.WithCause(err))
		return
	}

	m.arm(timerDial, m.cfg.DialTimeout)
}

// pump forwards transport events into the loop, tagged with the attempt
// they belong to so stale events are discarded.
func (m *Manager) pump(tr transport.Transport, attempt uint64) {
	for ev := range tr.Events() {
		if !m.post(transportMsg{attempt: attempt, ev: ev}) {
			return
		}
	}
}

// handleTransport dispatches a transport event.
func (m *Manager) handleTransport(msg transportMsg) {
	if msg.attempt != m.sess.attempt {
		m.log.Debug("stale transport event dropped",
			"kind", msg.ev.Kind.String(),
			"attempt", msg.attempt,
		)
		return
	}

	switch msg.ev.Kind {
	case transport.Opened:
		m.handleOpened()
	case transport.MessageReceived:
		m.handleInbound(msg.ev.Data)
	case transport.Closed:
		m.handleClosed(msg.ev.Err)
	}
}

// handleOpened completes a successful connect.
func (m *Manager) handleOpened() {
	if m.sess.state != domain.StateConnecting {
		return
	}

	// Cancel the dial timeout before anything else runs so a queued
	// firing cannot invalidate the transition.
	m.cancel(timerDial)
	m.sess.cancelDial = nil

	m.sess.reconnectAttempts = 0
	m.sess.lastError = ""
	m.setState(domain.StateConnected)
	m.log.Info("connected")

	m.armHeartbeat()
	m.drainQueue()
}

// handleInbound decodes and delivers one inbound message.
func (m *Manager) handleInbound(data []byte) {
	if m.sess.state != domain.StateConnected {
		return
	}

	msg, err := domain.DecodeMessage(data)
	if err != nil {
		m.log.Warn("inbound message discarded", "error", err)
		return
	}

	if msg.Kind == domain.KindHeartbeat {
		// Informational only: a reply does not reset the schedule and
		// its absence is not a failure signal.
		m.log.Debug("heartbeat reply received", "id", msg.ID)
		return
	}

	m.metrics.MessagesReceived.Inc()
	m.bumpStats(func(s *Stats) { s.Received++ })
	for _, l := range m.sess.listeners {
		l.OnMessage(msg)
	}
}

// handleClosed reacts to the transport going away.
func (m *Manager) handleClosed(cause error) {
	switch m.sess.state {
	case domain.StateConnecting:
		err := domain.ErrTransport
		if cause != nil {
			err = err.WithCause(cause)
		}
		m.failAttempt(err)

	case domain.StateConnected:
		// Stop the heartbeat before anything else runs.
		m.cancel(timerHeartbeat)
		m.teardownTransport()

		err := domain.ErrTransportClosed
		if cause != nil {
			err = err.WithCause(cause)
		}
		m.sess.lastError = err.Error()
		m.log.Warn("connection lost", "error", cause)

		m.setState(domain.StateDisconnected)
		m.notifyError(err)
		m.evaluateReconnect()
	}
}

// handleSend transmits immediately while connected, otherwise queues.
// An immediate send is attempted only when nothing is queued ahead of
// the message; eventual send order is always submission order.
func (m *Manager) handleSend(msg domain.Message) {
	if m.sess.state == domain.StateConnected && m.sess.tr != nil && m.sess.queue.len() == 0 {
		err := m.transmit(msg)
		if err == nil {
			return
		}
		// The queue is empty here, so appending keeps the failed message
		// oldest; the pending transport-closed event drives recovery.
		m.log.Warn("send failed, message queued", "id", msg.ID, "error", err)
	}

	if !m.sess.queue.push(msg) {
		m.log.Warn("outbound queue full, message dropped",
			"id", msg.ID,
			"cap", m.cfg.MaxQueueSize,
		)
		m.metrics.MessagesDropped.Inc()
		m.bumpStats(func(s *Stats) { s.Dropped++ })
		m.notifyError(domain.ErrQueueFull.WithDetails(msg.ID))
		return
	}
	m.updateQueueDepth()
	m.log.Debug("message queued", "id", msg.ID, "pending", m.sess.queue.len())
}

// handleDisconnect implements the explicit disconnect() operation: the
// universal cancellation. Queued messages survive.
func (m *Manager) handleDisconnect() {
	// Heartbeat first, then the rest.
	m.cancel(timerHeartbeat)
	m.cancelAllTimers()
	m.teardownTransport()
	m.sess.lastError = ""
	m.setState(domain.StateDisconnected)
	m.log.Info("disconnected")
}

// handleTimer dispatches a timer firing, discarding stale generations.
func (m *Manager) handleTimer(msg timerMsg) {
	if !m.takeTimer(msg.kind, msg.gen) {
		m.log.Debug("stale timer firing dropped", "kind", msg.kind.String())
		return
	}

	switch msg.kind {
	case timerDial:
		m.handleDialTimeout()
	case timerHeartbeat:
		m.fireHeartbeat()
	case timerReconnect:
		m.fireReconnect()
	}
}

// handleDialTimeout fails a connect attempt that exceeded DialTimeout.
func (m *Manager) handleDialTimeout() {
	if m.sess.state != domain.StateConnecting {
		return
	}
	m.log.Warn("connect attempt timed out", "timeout", m.cfg.DialTimeout)
	m.failAttempt(domain.ErrDialTimeout)
}

// failAttempt moves a failed connect attempt to StateFailed and
// consults the reconnection policy.
func (m *Manager) failAttempt(err *domain.DomainError) {
	m.cancel(timerDial)
	m.teardownTransport()
	m.metrics.ConnectFailures.Inc()

	m.sess.lastError = err.Error()
	m.setState(domain.StateFailed)
	m.notifyError(err)
	m.evaluateReconnect()
}

// teardownTransport closes the live transport, if any, and bumps the
// attempt generation so late events from it are discarded.
func (m *Manager) teardownTransport() {
	if m.sess.cancelDial != nil {
		m.sess.cancelDial()
		m.sess.cancelDial = nil
	}
	if m.sess.tr != nil {
		_ = m.sess.tr.Close()
		m.sess.tr = nil
	}
	m.sess.attempt++
}

// shutdown releases everything on Close.
func (m *Manager) shutdown() {
	m.cancelAllTimers()
	m.teardownTransport()
	m.sess.queue.clear()
	m.setState(domain.StateDisconnected)
	m.log.Info("manager closed")
}

// ============================================================================
// Notifications
// ============================================================================

// setState transitions the session state and notifies listeners. A
// transition to the current state is a no-op.
func (m *Manager) setState(next domain.ConnState) {
	if m.sess.state == next {
		return
	}
	prev := m.sess.state
	m.sess.state = next
	m.stateMirror.Store(int32(next))
	m.metrics.StateValue.Set(float64(next))
	m.bumpStats(func(s *Stats) {
		s.ReconnectAttempts = m.sess.reconnectAttempts
		s.LastError = m.sess.lastError
	})

	m.log.Debug("state changed", "from", prev.String(), "to", next.String())
	for _, l := range m.sess.listeners {
		l.OnStateChange(next)
	}
}

// notifyError reports a failure to listeners. Failures are reported,
// never raised across the public boundary.
func (m *Manager) notifyError(err error) {
	m.bumpStats(func(s *Stats) { s.LastError = m.sess.lastError })
	for _, l := range m.sess.listeners {
		l.OnError(err)
	}
}
