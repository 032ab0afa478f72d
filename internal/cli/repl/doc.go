// Package repl provides interactive session mode for the WireMesh CLI.
//
// This package implements the interactive loop for live connections:
//
//   - repl.go: Session loop, /command dispatch, and payload sending
//   - completer.go: Tab completion for session commands
//   - history.go: Input history persistence
//
// Features:
//
//   - Plain lines sent as message payloads
//   - Session commands (/connect, /disconnect, /status, /state)
//   - History persistence across sessions
package repl
