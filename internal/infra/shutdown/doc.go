// Package shutdown provides graceful shutdown for WireMesh.
//
// This package handles process termination signals:
//
//   - Signal handling (SIGINT, SIGTERM)
//   - Programmatic triggering (Trigger)
//   - Timeout-based forced shutdown
//   - Cleanup callback registration
//   - Shutdown coordination
//
// Usage:
//
//	h := shutdown.NewHandler(10 * time.Second)
//	h.OnShutdown(func(ctx context.Context) error { return mgr.Close() })
//	return h.Wait() // blocks until SIGINT/SIGTERM or h.Trigger()
package shutdown
