// Package main provides the entry point for wiremesh-echo.
//
// wiremesh-echo is a WebSocket echo peer for WireMesh clients. It
// echoes data messages back verbatim and answers heartbeat probes,
// which makes it a convenient target for development and testing.
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/wiremesh/wiremesh-go/internal/infra/buildinfo"
	"github.com/wiremesh/wiremesh-go/internal/infra/confloader"
	"github.com/wiremesh/wiremesh-go/internal/infra/shutdown"
	"github.com/wiremesh/wiremesh-go/internal/server/echoserver"
	"github.com/wiremesh/wiremesh-go/internal/telemetry/logger"
)

// serverConfig is the wiremesh-echo configuration, loaded from file and
// WIREMESH_* environment variables.
type serverConfig struct {
	Echo echoserver.Config `koanf:"echo"`
	Log  logConfig         `koanf:"log"`
}

type logConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

func defaultConfig() *serverConfig {
	return &serverConfig{
		Echo: echoserver.DefaultConfig(),
		Log: logConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var (
		configFile  = flag.String("config", "", "Path to configuration file")
		listen      = flag.String("listen", "", "Listen address (overrides config)")
		showVersion = flag.Bool("version", false, "Show version information")
	)
	flag.Parse()

	if *showVersion {
		fmt.Printf("wiremesh-echo %s\n", buildinfo.String())
		return nil
	}

	cfg, err := loadConfig(*configFile)
	if err != nil {
		return err
	}
	if *listen != "" {
		cfg.Echo.Listen = *listen
	}

	log, err := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: os.Stdout,
	})
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	logger.SetDefault(log)

	srv := echoserver.New(cfg.Echo, prometheus.DefaultRegisterer, echoserver.WithLogger(log))

	shutdownHandler := shutdown.NewHandler(10 * time.Second)
	shutdownHandler.OnShutdown(func(ctx context.Context) error {
		log.Info("shutting down echo server")
		return srv.Shutdown(ctx)
	})

	// Hot-reload the log level on config file changes.
	if *configFile != "" {
		watcher, err := confloader.NewWatcher()
		if err != nil {
			return fmt.Errorf("config watcher: %w", err)
		}
		if err := watcher.Watch(*configFile); err != nil {
			return fmt.Errorf("config watcher: %w", err)
		}
		watcher.OnChange(func(path string) {
			reloaded, err := loadConfig(path)
			if err != nil {
				log.Warn("config reload failed", "path", path, "error", err)
				return
			}
			logger.SetLevel(reloaded.Log.Level)
			log.Info("log level reloaded", "level", reloaded.Log.Level)
		})
		watcher.StartAsync()
		shutdownHandler.OnShutdown(func(ctx context.Context) error {
			return watcher.Stop()
		})
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("echo server error", "error", err)
			shutdownHandler.Trigger()
		}
	}()

	log.Info("echo server started, press Ctrl+C to stop")
	if err := shutdownHandler.Wait(); err != nil {
		log.Error("shutdown error", "error", err)
		return err
	}

	log.Info("echo server stopped gracefully")
	return nil
}

// loadConfig loads configuration from the optional file and environment.
func loadConfig(configFile string) (*serverConfig, error) {
	cfg := defaultConfig()

	opts := []confloader.Option{}
	if configFile != "" {
		opts = append(opts, confloader.WithConfigFile(configFile))
	}

	loader := confloader.NewLoader(opts...)
	if err := loader.Load(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
