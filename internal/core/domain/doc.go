// Package domain defines the core domain models for WireMesh.
//
// This package contains pure value objects shared across the
// connection manager, transport, and CLI layers:
//
//   - state.go: connection lifecycle states
//   - message.go: outbound/inbound message model with ULID identifiers
//   - errors.go: structured domain errors with stable error codes
//
// Domain models carry no IO dependencies or framework coupling.
package domain
