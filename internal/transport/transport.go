// Package transport provides the opaque channel abstraction for WireMesh.
package transport

import "context"

// EventKind identifies a transport event.
type EventKind int

const (
	// Opened signals the transport is established and ready to send.
	Opened EventKind = iota

	// MessageReceived carries one inbound message payload.
	MessageReceived

	// Closed signals the transport is gone. Err holds the reason, or nil
	// for a clean local close. Closed is always the final event; the
	// event channel is closed right after it is delivered.
	Closed
)

// String returns the event kind name.
func (k EventKind) String() string {
	switch k {
	case Opened:
		return "opened"
	case MessageReceived:
		return "message_received"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// Event is a single transport lifecycle or data event.
type Event struct {
	Kind EventKind
	Data []byte // payload for MessageReceived
	Err  error  // reason for Closed (nil on clean close)
}

// Transport is a single-use bidirectional message channel.
//
// Open starts the connection attempt asynchronously; the outcome arrives
// on the event channel as either Opened or Closed. A Transport cannot be
// reopened after Closed; the manager creates a fresh one per attempt.
type Transport interface {
	// Open begins establishing the channel. It returns an error only for
	// immediate misuse (already opened or closed); dial failures are
	// reported as a Closed event.
	Open(ctx context.Context) error

	// Send transmits one message. It is safe for concurrent use and
	// returns an error if the transport is not open.
	Send(data []byte) error

	// Close tears the channel down. It is idempotent.
	Close() error

	// Events returns the event stream. The channel is closed after the
	// final Closed event.
	Events() <-chan Event
}

// Factory creates a fresh Transport for a connection attempt to endpoint.
// The manager calls it once per attempt so implementations never need to
// support reopening.
type Factory func(endpoint string) Transport
