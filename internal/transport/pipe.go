// Package transport provides the opaque channel abstraction for WireMesh.
package transport

import (
	"context"
	"sync"
)

// Pipe is an in-memory Transport connected to a peer Pipe. Both ends
// implement Transport; data sent on one end arrives as MessageReceived
// on the other. Used by tests and the CLI loopback mode.
type Pipe struct {
	peer *Pipe

	mu     sync.Mutex
	opened bool
	closed bool

	events chan Event
}

// NewPipe creates a connected transport pair.
func NewPipe() (*Pipe, *Pipe) {
	a := &Pipe{events: make(chan Event, eventBuffer)}
	b := &Pipe{events: make(chan Event, eventBuffer)}
	a.peer = b
	b.peer = a
	return a, b
}

// Open marks the end established and emits Opened immediately.
func (p *Pipe) Open(_ context.Context) error {
	p.mu.Lock()
	if p.opened || p.closed {
		p.mu.Unlock()
		return ErrAlreadyOpened
	}
	p.opened = true
	p.mu.Unlock()

	p.events <- Event{Kind: Opened}
	return nil
}

// Send delivers data to the peer end.
func (p *Pipe) Send(data []byte) error {
	p.mu.Lock()
	if !p.opened || p.closed {
		p.mu.Unlock()
		return ErrNotOpen
	}
	p.mu.Unlock()

	p.peer.deliver(data)
	return nil
}

func (p *Pipe) deliver(data []byte) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed {
		return
	}
	// Copy so the sender cannot mutate the payload after delivery.
	buf := make([]byte, len(data))
	copy(buf, data)
	p.events <- Event{Kind: MessageReceived, Data: buf}
}

// Close terminates both ends. The local end reports a clean close; the
// peer observes a remote close.
func (p *Pipe) Close() error {
	p.terminate(nil)
	if p.peer != nil {
		p.peer.terminate(ErrPeerClosed)
	}
	return nil
}

// CloseWithError terminates both ends with the given reason, simulating
// a transport-level failure. Test helper.
func (p *Pipe) CloseWithError(err error) {
	p.terminate(err)
	if p.peer != nil {
		p.peer.terminate(err)
	}
}

func (p *Pipe) terminate(err error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return
	}
	p.closed = true
	p.mu.Unlock()

	p.events <- Event{Kind: Closed, Err: err}
	close(p.events)
}

// Events returns the event stream.
func (p *Pipe) Events() <-chan Event {
	return p.events
}
