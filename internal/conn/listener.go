// Package conn implements the resilient connection manager.
package conn

import "github.com/wiremesh/wiremesh-go/internal/core/domain"

// Listener receives manager notifications. All callbacks run
// synchronously on the manager's event loop: they must return promptly
// and must not block waiting for the manager.
type Listener interface {
	// OnStateChange is invoked after every state transition.
	OnStateChange(state domain.ConnState)

	// OnMessage is invoked once per inbound application message.
	// Heartbeat replies are not delivered.
	OnMessage(msg domain.Message)

	// OnError is invoked for reportable failures (dial timeout,
	// transport errors, reconnect exhaustion, queue overflow).
	OnError(err error)
}

// ListenerFuncs adapts plain functions to the Listener interface.
// Nil fields are ignored.
type ListenerFuncs struct {
	StateChange func(state domain.ConnState)
	Message     func(msg domain.Message)
	Error       func(err error)
}

// OnStateChange implements Listener.
func (l ListenerFuncs) OnStateChange(state domain.ConnState) {
	if l.StateChange != nil {
		l.StateChange(state)
	}
}

// OnMessage implements Listener.
func (l ListenerFuncs) OnMessage(msg domain.Message) {
	if l.Message != nil {
		l.Message(msg)
	}
}

// OnError implements Listener.
func (l ListenerFuncs) OnError(err error) {
	if l.Error != nil {
		l.Error(err)
	}
}
