// Package echoserver provides the WireMesh echo server.
//
// The echo server is the development peer for the connection manager:
// it accepts WebSocket connections, echoes every data message back to
// its sender, and answers heartbeat probes with a heartbeat reply.
//
// Endpoints:
//
//   - /stream: WebSocket endpoint for connection manager clients
//   - /healthz: liveness probe
//   - /metrics: Prometheus metrics
package echoserver
