// Package metric provides Prometheus metrics for WireMesh.
//
// It exposes connection lifecycle metrics for monitoring: connect
// attempts, reconnects, message throughput, outbound queue depth, and
// heartbeat activity.
//
// The Registry holds small metric interfaces so the connection manager
// stays decoupled from the Prometheus client; NewRegistry backs them
// with real Prometheus collectors and NewNop provides a zero-cost
// default for tests and library use.
package metric
