// Package config defines the CLI configuration structure.
package config

import (
	"github.com/wiremesh/wiremesh-go/internal/cli/output"
	"github.com/wiremesh/wiremesh-go/internal/conn"
)

// CLIConfig is the configuration for wiremesh-cli.
//
// Values are resolved in priority order: command-line flags, then
// WIREMESH_* environment variables (e.g. WIREMESH_ENDPOINT,
// WIREMESH_LOG_LEVEL), then the config file, then these defaults.
type CLIConfig struct {
	// Endpoint is the ws:// or wss:// URL of the remote peer.
	Endpoint string `koanf:"endpoint"`

	// Output is the default output format (table, json, yaml).
	Output string `koanf:"output"`

	// TLS configures transport security for wss endpoints.
	TLS TLSConfig `koanf:"tls"`

	// Log configures CLI logging.
	Log LogConfig `koanf:"log"`

	// Conn tunes the connection manager.
	Conn conn.Config `koanf:"conn"`
}

// TLSConfig holds transport security settings.
type TLSConfig struct {
	// CACert is an optional PEM file with extra root CAs.
	CACert string `koanf:"cacert"`
}

// LogConfig holds CLI logging settings.
type LogConfig struct {
	// Level is the minimum log level (debug, info, warn, error).
	Level string `koanf:"level"`
}

// Default returns the default CLI configuration.
func Default() *CLIConfig {
	return &CLIConfig{
		Endpoint: "ws://localhost:9443/stream",
		Output:   string(output.FormatTable),
		Log:      LogConfig{Level: "info"},
		Conn:     conn.DefaultConfig(),
	}
}
