// Package command provides CLI command definitions for WireMesh.
package command

import (
	"fmt"
	"net/http"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"

	"github.com/wiremesh/wiremesh-go/internal/cli/config"
	"github.com/wiremesh/wiremesh-go/internal/cli/output"
	"github.com/wiremesh/wiremesh-go/internal/conn"
	"github.com/wiremesh/wiremesh-go/internal/infra/buildinfo"
	"github.com/wiremesh/wiremesh-go/internal/infra/tlsroots"
	"github.com/wiremesh/wiremesh-go/internal/telemetry/logger"
	"github.com/wiremesh/wiremesh-go/internal/telemetry/metric"
	"github.com/wiremesh/wiremesh-go/internal/transport"
)

// App creates the CLI application.
func App() *cli.App {
	return &cli.App{
		Name:    "wiremesh-cli",
		Usage:   "WireMesh resilient connection client",
		Version: buildinfo.String(),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			SessionCommand(),
			SendCommand(),
			WatchCommand(),
			ConfigCommand(),
			VersionCommand(),
		},
	}
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "endpoint",
			Aliases: []string{"e"},
			Usage:   "Remote peer URL (ws:// or wss://)",
			EnvVars: []string{"WIREMESH_ENDPOINT"},
		},
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file path (default ~/.wiremesh/cli.yaml)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.StringFlag{
			Name:  "ca-cert",
			Usage: "PEM file with extra root CAs for wss endpoints",
		},
		&cli.StringFlag{
			Name:  "metrics-listen",
			Usage: "Serve Prometheus metrics on this address (e.g. localhost:9100)",
		},
		&cli.BoolFlag{
			Name:  "no-reconnect",
			Usage: "Disable automatic reconnection",
		},
		&cli.DurationFlag{
			Name:  "reconnect-interval",
			Usage: "Fixed delay between reconnect attempts",
		},
		&cli.IntFlag{
			Name:  "max-reconnect-attempts",
			Usage: "Consecutive failed attempts before giving up",
		},
		&cli.DurationFlag{
			Name:  "heartbeat-interval",
			Usage: "Liveness probe interval while connected",
		},
		&cli.DurationFlag{
			Name:  "dial-timeout",
			Usage: "Per-attempt connect timeout",
		},
		&cli.IntFlag{
			Name:  "queue-size",
			Usage: "Outbound queue cap (0 = unbounded)",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// loadConfig resolves the effective configuration from file, env, and
// flags.
func loadConfig(c *cli.Context) (*config.CLIConfig, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	if ep := c.String("endpoint"); ep != "" {
		cfg.Endpoint = ep
	}
	if out := c.String("output"); out != "" {
		cfg.Output = out
	}
	if ca := c.String("ca-cert"); ca != "" {
		cfg.TLS.CACert = ca
	}
	if c.Bool("verbose") {
		cfg.Log.Level = "debug"
	}
	if c.Bool("no-reconnect") {
		cfg.Conn.AutoReconnect = false
	}
	if c.IsSet("reconnect-interval") {
		cfg.Conn.ReconnectInterval = c.Duration("reconnect-interval")
	}
	if c.IsSet("max-reconnect-attempts") {
		cfg.Conn.MaxReconnectAttempts = c.Int("max-reconnect-attempts")
	}
	if c.IsSet("heartbeat-interval") {
		cfg.Conn.HeartbeatInterval = c.Duration("heartbeat-interval")
	}
	if c.IsSet("dial-timeout") {
		cfg.Conn.DialTimeout = c.Duration("dial-timeout")
	}
	if c.IsSet("queue-size") {
		cfg.Conn.MaxQueueSize = c.Int("queue-size")
	}
	return cfg, nil
}

// buildManager constructs a connection manager from the resolved
// configuration, wiring the logger, TLS roots, and optional metrics.
func buildManager(c *cli.Context, cfg *config.CLIConfig, extra ...conn.Option) (*conn.Manager, error) {
	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: "text",
		Output: os.Stderr,
	})
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	var wsOpts []transport.WSOption
	if cfg.TLS.CACert != "" {
		pool, err := tlsroots.NewPool()
		if err != nil {
			return nil, fmt.Errorf("load system roots: %w", err)
		}
		if err := pool.AddCertFile(cfg.TLS.CACert); err != nil {
			return nil, err
		}
		wsOpts = append(wsOpts, transport.WithTLSPool(pool))
	}

	opts := []conn.Option{conn.WithLogger(log)}
	if addr := c.String("metrics-listen"); addr != "" {
		reg := metric.NewRegistry(prometheus.DefaultRegisterer)
		opts = append(opts, conn.WithMetrics(reg))
		go func() {
			mux := http.NewServeMux()
			mux.Handle("/metrics", metric.Handler())
			if err := http.ListenAndServe(addr, mux); err != nil {
				log.Error("metrics listener failed", "addr", addr, "error", err)
			}
		}()
	}
	opts = append(opts, extra...)

	return conn.New(cfg.Endpoint, transport.WebSocketFactory(wsOpts...), cfg.Conn, opts...), nil
}

// formatterFor creates the output formatter for the resolved format.
func formatterFor(cfg *config.CLIConfig) output.Formatter {
	return output.NewFormatter(output.Format(cfg.Output), false)
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
