// Package transport provides the opaque channel abstraction the
// connection manager drives.
//
// A Transport exposes open/send/close plus an event stream carrying
// three event kinds: Opened, MessageReceived, and Closed. The wire
// protocol behind a Transport is out of the manager's scope.
//
// Implementations:
//
//   - websocket.go: gorilla/websocket client transport (ws:// and wss://)
//   - pipe.go: in-memory transport pair for tests and local loopback
package transport
