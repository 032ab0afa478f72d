// Package transport provides the opaque channel abstraction for WireMesh.
package transport

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wiremesh/wiremesh-go/internal/infra/tlsroots"
)

// WebSocket transport defaults.
const (
	// DefaultWriteTimeout bounds a single frame write.
	DefaultWriteTimeout = 10 * time.Second

	// DefaultMaxMessageSize caps inbound frames (1 MB).
	DefaultMaxMessageSize = 1024 * 1024

	// eventBuffer is the event channel capacity. The manager drains the
	// channel continuously; the buffer only absorbs short bursts.
	eventBuffer = 32
)

var (
	// ErrAlreadyOpened is returned when Open is called twice.
	ErrAlreadyOpened = errors.New("transport: already opened")

	// ErrNotOpen is returned by Send before the Opened event.
	ErrNotOpen = errors.New("transport: not open")

	// ErrPeerClosed is the Closed reason observed when the remote end of
	// an in-memory pipe goes away.
	ErrPeerClosed = errors.New("transport: peer closed")
)

// WSOption configures a WebSocket transport.
type WSOption func(*WSTransport)

// WithTLSPool sets the root certificate pool for wss endpoints.
func WithTLSPool(pool *tlsroots.Pool) WSOption {
	return func(t *WSTransport) {
		t.tlsConfig = pool.TLSConfig()
	}
}

// WithRequestHeader sets HTTP headers sent during the handshake.
func WithRequestHeader(header http.Header) WSOption {
	return func(t *WSTransport) {
		t.header = header
	}
}

// WithWriteTimeout overrides the per-frame write deadline.
func WithWriteTimeout(d time.Duration) WSOption {
	return func(t *WSTransport) {
		t.writeTimeout = d
	}
}

// WSTransport is a gorilla/websocket client transport.
//
// gorilla/websocket supports one concurrent writer, so all writes are
// serialized behind writeMu. Reads happen on a single internal goroutine.
type WSTransport struct {
	endpoint     string
	header       http.Header
	tlsConfig    *tls.Config
	writeTimeout time.Duration

	mu     sync.Mutex
	conn   *websocket.Conn
	opened bool
	closed bool

	writeMu sync.Mutex

	events chan Event
	done   chan struct{}
}

// NewWebSocket creates a WebSocket transport for the given endpoint
// (ws:// or wss:// URL). The transport is single-use.
func NewWebSocket(endpoint string, opts ...WSOption) *WSTransport {
	t := &WSTransport{
		endpoint:     endpoint,
		writeTimeout: DefaultWriteTimeout,
		events:       make(chan Event, eventBuffer),
		done:         make(chan struct{}),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// WebSocketFactory returns a Factory producing WebSocket transports with
// the given options applied to every attempt.
func WebSocketFactory(opts ...WSOption) Factory {
	return func(endpoint string) Transport {
		return NewWebSocket(endpoint, opts...)
	}
}

// Open dials the endpoint asynchronously. The outcome is delivered on the
// event channel as Opened or Closed.
func (t *WSTransport) Open(ctx context.Context) error {
	t.mu.Lock()
	if t.opened || t.closed {
		t.mu.Unlock()
		return ErrAlreadyOpened
	}
	t.opened = true
	t.mu.Unlock()

	go t.dial(ctx)
	return nil
}

func (t *WSTransport) dial(ctx context.Context) {
	dialer := websocket.Dialer{
		TLSClientConfig: t.tlsConfig,
	}

	conn, resp, err := dialer.DialContext(ctx, t.endpoint, t.header)
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	if err != nil {
		t.finish(err)
		return
	}

	conn.SetReadLimit(DefaultMaxMessageSize)

	t.mu.Lock()
	if t.closed {
		// Close raced the dial; drop the connection and terminate the stream.
		t.mu.Unlock()
		_ = conn.Close()
		t.finish(nil)
		return
	}
	t.conn = conn
	t.mu.Unlock()

	t.deliver(Event{Kind: Opened})
	t.readLoop(conn)
}

// readLoop reads frames until the connection errors or closes.
// Read errors after Close are reported as a clean close.
func (t *WSTransport) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			t.mu.Lock()
			wasClosed := t.closed
			t.mu.Unlock()
			if wasClosed || websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				err = nil
			}
			t.finish(err)
			return
		}
		t.deliver(Event{Kind: MessageReceived, Data: data})
	}
}

// Send writes one text frame. Safe for concurrent use.
func (t *WSTransport) Send(data []byte) error {
	t.mu.Lock()
	conn := t.conn
	closed := t.closed
	t.mu.Unlock()

	if conn == nil || closed {
		return ErrNotOpen
	}

	t.writeMu.Lock()
	defer t.writeMu.Unlock()

	_ = conn.SetWriteDeadline(time.Now().Add(t.writeTimeout))
	return conn.WriteMessage(websocket.TextMessage, data)
}

// Close tears down the connection. Idempotent. If the transport never
// reached Opened, the pending dial result is discarded and the event
// channel still terminates with Closed.
func (t *WSTransport) Close() error {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return nil
	}
	t.closed = true
	close(t.done)
	conn := t.conn
	opened := t.opened
	t.mu.Unlock()

	if conn != nil {
		t.writeMu.Lock()
		_ = conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(t.writeTimeout),
		)
		t.writeMu.Unlock()
		// Unblocks the read loop, which emits the final Closed event.
		return conn.Close()
	}

	if !opened {
		// Never dialed; terminate the event stream directly.
		t.finish(nil)
	}
	return nil
}

// Events returns the event stream.
func (t *WSTransport) Events() <-chan Event {
	return t.events
}

// finish emits the terminal Closed event exactly once and closes the
// event channel.
func (t *WSTransport) finish(err error) {
	t.deliver(Event{Kind: Closed, Err: err})
	close(t.events)
}

// deliver emits one event. Once Close has been called the receiver may
// be gone for good, so a full buffer stops blocking and the event is
// dropped; the read goroutine always exits.
func (t *WSTransport) deliver(ev Event) {
	select {
	case t.events <- ev:
	default:
		select {
		case t.events <- ev:
		case <-t.done:
		}
	}
}
