// Package conn implements the resilient connection manager.
package conn

import "time"

// Configuration defaults.
const (
	DefaultReconnectInterval    = 3 * time.Second
	DefaultMaxReconnectAttempts = 5
	DefaultHeartbeatInterval    = 30 * time.Second
	DefaultDialTimeout          = 10 * time.Second
)

// Config holds the immutable manager configuration, supplied at
// construction. Start from DefaultConfig and adjust fields as needed.
type Config struct {
	// AutoReconnect enables automatic reconnection after an unplanned
	// disconnect.
	AutoReconnect bool `koanf:"auto_reconnect"`

	// ReconnectInterval is the fixed delay between reconnect attempts.
	ReconnectInterval time.Duration `koanf:"reconnect_interval"`

	// MaxReconnectAttempts is the budget of consecutive failed attempts
	// since the last successful connection.
	MaxReconnectAttempts int `koanf:"max_reconnect_attempts"`

	// HeartbeatInterval is the liveness probe interval while connected.
	HeartbeatInterval time.Duration `koanf:"heartbeat_interval"`

	// DialTimeout bounds a single transport open attempt.
	DialTimeout time.Duration `koanf:"dial_timeout"`

	// MaxQueueSize caps the outbound queue; 0 means unbounded.
	// When the cap is reached, the newest message is dropped and an
	// error notification is emitted.
	MaxQueueSize int `koanf:"max_queue_size"`
}

// DefaultConfig returns the default manager configuration.
func DefaultConfig() Config {
	return Config{
		AutoReconnect:        true,
		ReconnectInterval:    DefaultReconnectInterval,
		MaxReconnectAttempts: DefaultMaxReconnectAttempts,
		HeartbeatInterval:    DefaultHeartbeatInterval,
		DialTimeout:          DefaultDialTimeout,
	}
}

// normalized returns a copy with zero durations and counts replaced by
// defaults. AutoReconnect is left as given.
func (c Config) normalized() Config {
	if c.ReconnectInterval <= 0 {
		c.ReconnectInterval = DefaultReconnectInterval
	}
	if c.MaxReconnectAttempts <= 0 {
		c.MaxReconnectAttempts = DefaultMaxReconnectAttempts
	}
	if c.HeartbeatInterval <= 0 {
		c.HeartbeatInterval = DefaultHeartbeatInterval
	}
	if c.DialTimeout <= 0 {
		c.DialTimeout = DefaultDialTimeout
	}
	if c.MaxQueueSize < 0 {
		c.MaxQueueSize = 0
	}
	return c
}
