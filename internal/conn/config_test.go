package conn

import (
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.AutoReconnect {
		t.Error("AutoReconnect should default to true")
	}
	if cfg.ReconnectInterval != DefaultReconnectInterval {
		t.Errorf("ReconnectInterval = %v, want %v", cfg.ReconnectInterval, DefaultReconnectInterval)
	}
	if cfg.MaxReconnectAttempts != DefaultMaxReconnectAttempts {
		t.Errorf("MaxReconnectAttempts = %d, want %d", cfg.MaxReconnectAttempts, DefaultMaxReconnectAttempts)
	}
	if cfg.HeartbeatInterval != DefaultHeartbeatInterval {
		t.Errorf("HeartbeatInterval = %v, want %v", cfg.HeartbeatInterval, DefaultHeartbeatInterval)
	}
	if cfg.DialTimeout != DefaultDialTimeout {
		t.Errorf("DialTimeout = %v, want %v", cfg.DialTimeout, DefaultDialTimeout)
	}
	if cfg.MaxQueueSize != 0 {
		t.Errorf("MaxQueueSize = %d, want 0 (unbounded)", cfg.MaxQueueSize)
	}
}

func TestConfig_Normalized(t *testing.T) {
	tests := []struct {
		name string
		in   Config
		want Config
	}{
		{
			name: "zero value gets defaults",
			in:   Config{},
			want: Config{
				ReconnectInterval:    DefaultReconnectInterval,
				MaxReconnectAttempts: DefaultMaxReconnectAttempts,
				HeartbeatInterval:    DefaultHeartbeatInterval,
				DialTimeout:          DefaultDialTimeout,
			},
		},
		{
			name: "negative values replaced",
			in: Config{
				ReconnectInterval:    -time.Second,
				MaxReconnectAttempts: -1,
				HeartbeatInterval:    -time.Second,
				DialTimeout:          -time.Second,
				MaxQueueSize:         -5,
			},
			want: Config{
				ReconnectInterval:    DefaultReconnectInterval,
				MaxReconnectAttempts: DefaultMaxReconnectAttempts,
				HeartbeatInterval:    DefaultHeartbeatInterval,
				DialTimeout:          DefaultDialTimeout,
			},
		},
		{
			name: "explicit values preserved",
			in: Config{
				AutoReconnect:        true,
				ReconnectInterval:    time.Second,
				MaxReconnectAttempts: 10,
				HeartbeatInterval:    5 * time.Second,
				DialTimeout:          2 * time.Second,
				MaxQueueSize:         64,
			},
			want: Config{
				AutoReconnect:        true,
				ReconnectInterval:    time.Second,
				MaxReconnectAttempts: 10,
				HeartbeatInterval:    5 * time.Second,
				DialTimeout:          2 * time.Second,
				MaxQueueSize:         64,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.normalized(); got != tt.want {
				t.Errorf("normalized() = %+v, want %+v", got, tt.want)
			}
		})
	}
}
