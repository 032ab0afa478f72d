// Package domain defines the core domain models for WireMesh.
package domain

// ConnState represents the lifecycle state of a managed connection.
//
// State transitions are owned exclusively by the connection manager;
// every other component only reads the current state.
type ConnState int

const (
	// StateDisconnected is the initial state and the state after an
	// explicit disconnect or an unplanned drop pending reconnection.
	StateDisconnected ConnState = iota

	// StateConnecting means a transport open attempt is in flight.
	StateConnecting

	// StateConnected means the transport is open and usable.
	StateConnected

	// StateFailed means the last attempt failed and no further attempt
	// is scheduled until the caller asks to connect again.
	StateFailed
)

// String returns the lowercase state name.
func (s ConnState) String() string {
	switch s {
	case StateDisconnected:
		return "disconnected"
	case StateConnecting:
		return "connecting"
	case StateConnected:
		return "connected"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// IsValid reports whether s is one of the defined states.
func (s ConnState) IsValid() bool {
	return s >= StateDisconnected && s <= StateFailed
}
