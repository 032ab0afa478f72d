// Package command provides CLI command definitions for WireMesh.
package command

import (
	"fmt"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/wiremesh/wiremesh-go/internal/cli/repl"
	"github.com/wiremesh/wiremesh-go/internal/conn"
	"github.com/wiremesh/wiremesh-go/internal/core/domain"
)

// SessionCommand creates the interactive session command.
func SessionCommand() *cli.Command {
	return &cli.Command{
		Name:  "session",
		Usage: "Open an interactive session to the endpoint",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "no-connect",
				Usage: "Start disconnected; use /connect inside the session",
			},
		},
		Action: runSession,
	}
}

func runSession(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	mgr, err := buildManager(c, cfg)
	if err != nil {
		return err
	}
	defer mgr.Close()

	if !c.Bool("no-connect") {
		mgr.Connect()
		waitForState(mgr, domain.StateConnected, cfg.Conn.DialTimeout)
	}
	fmt.Fprintf(c.App.Writer, "endpoint %s (%s)\n", cfg.Endpoint, mgr.State())

	r := repl.New(mgr,
		repl.WithFormatter(formatterFor(cfg)),
		repl.WithIO(c.App.Reader, c.App.Writer),
	)
	return r.Run()
}

// waitForState polls until the manager reaches the wanted state or the
// timeout elapses. Best effort; callers re-check State afterwards.
func waitForState(mgr *conn.Manager, want domain.ConnState, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		s := mgr.State()
		if s == want || s == domain.StateFailed {
			return s == want
		}
		time.Sleep(20 * time.Millisecond)
	}
	return false
}
