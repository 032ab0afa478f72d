// Package config provides CLI configuration for WireMesh.
//
// This package defines CLI-specific configuration:
//
//   - spec.go: CLIConfig struct (~/.wiremesh/cli.yaml)
//   - loader.go: Configuration loading and merging
//
// Configuration includes:
//
//   - Default endpoint and output format
//   - TLS root certificates for wss endpoints
//   - Connection manager tuning (reconnect, heartbeat, queue)
package config
