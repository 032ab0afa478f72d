// Command wiremesh-echo is a development echo peer for WireMesh.
//
// Usage:
//
//	wiremesh-echo [-config FILE] [-listen ADDR]
//
// The server upgrades HTTP requests on the configured path to
// WebSocket connections, echoes data messages back verbatim, and
// answers heartbeat probes with fresh heartbeat replies. Prometheus
// metrics are exposed on /metrics and a liveness probe on /healthz.
//
// Configuration is resolved from the optional config file and
// WIREMESH_* environment variables (WIREMESH_ECHO_LISTEN,
// WIREMESH_LOG_LEVEL). Changes to the config file adjust the log
// level at runtime.
package main
