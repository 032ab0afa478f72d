// Package config defines the CLI configuration structure.
package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/wiremesh/wiremesh-go/internal/conn"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Endpoint != "ws://localhost:9443/stream" {
		t.Errorf("Endpoint = %q, want %q", cfg.Endpoint, "ws://localhost:9443/stream")
	}
	if cfg.Output != "table" {
		t.Errorf("Output = %q, want %q", cfg.Output, "table")
	}
	if cfg.Log.Level != "info" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "info")
	}
	if !cfg.Conn.AutoReconnect {
		t.Error("Conn.AutoReconnect should default to true")
	}
	if cfg.Conn.ReconnectInterval != conn.DefaultReconnectInterval {
		t.Errorf("Conn.ReconnectInterval = %v, want %v",
			cfg.Conn.ReconnectInterval, conn.DefaultReconnectInterval)
	}
}

func TestDefaultConfigPath(t *testing.T) {
	path := DefaultConfigPath()

	if path == "" {
		t.Fatal("DefaultConfigPath should not be empty")
	}
	if !filepath.IsAbs(path) {
		t.Error("Path should be absolute")
	}

	expected := filepath.Join(".wiremesh", "cli.yaml")
	if len(path) < len(expected) || path[len(path)-len(expected):] != expected {
		t.Errorf("Path = %q, should end with %q", path, expected)
	}
}

func TestLoad_ExplicitMissingFileFails(t *testing.T) {
	if _, err := Load("/nonexistent/path/config.yaml"); err == nil {
		t.Error("Load() with explicit missing file should error")
	}
}

func TestLoad_EmptyPathFallsBackToDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error = %v", err)
	}
	if cfg == nil {
		t.Fatal("Load(\"\") returned nil config")
	}
}

func TestLoad_File(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "cli.yaml")

	content := `
endpoint: "wss://gateway.example.com/stream"
output: json
log:
  level: debug
conn:
  reconnect_interval: 5s
  max_reconnect_attempts: 7
  max_queue_size: 256
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Endpoint != "wss://gateway.example.com/stream" {
		t.Errorf("Endpoint = %q, want file value", cfg.Endpoint)
	}
	if cfg.Output != "json" {
		t.Errorf("Output = %q, want %q", cfg.Output, "json")
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
	if cfg.Conn.ReconnectInterval != 5*time.Second {
		t.Errorf("Conn.ReconnectInterval = %v, want 5s", cfg.Conn.ReconnectInterval)
	}
	if cfg.Conn.MaxReconnectAttempts != 7 {
		t.Errorf("Conn.MaxReconnectAttempts = %d, want 7", cfg.Conn.MaxReconnectAttempts)
	}
	if cfg.Conn.MaxQueueSize != 256 {
		t.Errorf("Conn.MaxQueueSize = %d, want 256", cfg.Conn.MaxQueueSize)
	}

	// Unset fields keep their defaults.
	if cfg.Conn.HeartbeatInterval != conn.DefaultHeartbeatInterval {
		t.Errorf("Conn.HeartbeatInterval = %v, want default", cfg.Conn.HeartbeatInterval)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	path := filepath.Join(tmpDir, "cli.yaml")

	content := `
endpoint: "ws://from-file/stream"
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	t.Setenv("WIREMESH_ENDPOINT", "ws://from-env/stream")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Endpoint != "ws://from-env/stream" {
		t.Errorf("Endpoint = %q, want env value over file", cfg.Endpoint)
	}
}
