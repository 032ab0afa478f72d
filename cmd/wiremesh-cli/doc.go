// Command wiremesh-cli is the WireMesh command-line client.
//
// Usage:
//
//	wiremesh-cli [global flags] <command> [command flags]
//
// Commands:
//
//	session   Open an interactive session to the endpoint
//	send      Send one or more message payloads
//	watch     Print inbound messages until interrupted
//	config    Inspect CLI configuration
//	version   Show version and build information
//
// Configuration is resolved from ~/.wiremesh/cli.yaml, WIREMESH_*
// environment variables, and command-line flags, in that order.
package main
