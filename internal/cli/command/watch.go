// Package command provides CLI command definitions for WireMesh.
package command

import (
	"context"
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/wiremesh/wiremesh-go/internal/conn"
	"github.com/wiremesh/wiremesh-go/internal/core/domain"
	"github.com/wiremesh/wiremesh-go/internal/infra/shutdown"
)

// WatchCommand creates the watch command.
func WatchCommand() *cli.Command {
	return &cli.Command{
		Name:  "watch",
		Usage: "Print inbound messages until interrupted",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "timestamps",
				Usage: "Prefix each message with its creation time",
			},
		},
		Action: runWatch,
	}
}

func runWatch(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	handler := shutdown.NewHandler(5 * time.Second)
	withTimestamps := c.Bool("timestamps")

	listener := conn.ListenerFuncs{
		StateChange: func(state domain.ConnState) {
			fmt.Fprintf(c.App.ErrWriter, "-- %s\n", state)
			if state == domain.StateFailed {
				handler.Trigger()
			}
		},
		Message: func(msg domain.Message) {
			if withTimestamps {
				fmt.Fprintf(c.App.Writer, "%s %s\n",
					msg.CreatedAtTime().Format(time.RFC3339), msg.Payload)
				return
			}
			fmt.Fprintf(c.App.Writer, "%s\n", msg.Payload)
		},
		Error: func(err error) {
			fmt.Fprintf(c.App.ErrWriter, "-- error: %v\n", err)
		},
	}

	mgr, err := buildManager(c, cfg, conn.WithListener(listener))
	if err != nil {
		return err
	}
	handler.OnShutdown(func(ctx context.Context) error {
		mgr.Close()
		return nil
	})

	mgr.Connect()
	fmt.Fprintf(c.App.ErrWriter, "watching %s (Ctrl-C to stop)\n", cfg.Endpoint)
	return handler.Wait()
}
