// Package tlsroots provides TLS certificate management for WireMesh.
//
// This package handles TLS certificate loading for secure transports:
//
//   - roots.go: System certificates + custom CA loading
//
// Features:
//
//   - System certificate pool integration
//   - Custom CA certificate support
//   - Ready-made tls.Config for wss:// endpoints
package tlsroots
