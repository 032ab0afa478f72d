// Package command provides CLI command definitions for WireMesh.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: Application setup, global flags, manager construction
//   - session.go: Interactive session mode
//   - send.go: One-shot and batch payload sending
//   - watch.go: Inbound message streaming
//   - config.go: Effective configuration display
//   - version.go: Build information
//
// Commands follow a consistent pattern: resolve the configuration from
// file, environment, and flags, build a connection manager, drive it,
// and format output through the output package.
package command
