// Package conn implements the resilient connection manager.
//
// A Manager owns one logical bidirectional message connection to a
// remote endpoint and shields callers from transient network failures.
// It is built from four cooperating pieces sharing a single session
// record:
//
//   - state machine: owns the lifecycle state and all transitions
//   - heartbeat scheduler: periodic liveness probes while connected
//   - reconnection policy: fixed-delay retries with an attempt budget
//   - outbound queue: FIFO buffering of messages submitted while offline
//
// Concurrency model: all state transitions, timer firings, and transport
// events are processed by a single event-loop goroutine, so the session
// record never sees parallel mutation. Public methods post into the loop
// and return immediately; callers are never blocked on connectivity.
//
// Listeners are invoked synchronously on the event loop and must return
// promptly.
//
// Multiple independent connections are multiple Manager instances; there
// is no shared global state.
package conn
