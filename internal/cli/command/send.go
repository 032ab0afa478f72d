// Package command provides CLI command definitions for WireMesh.
package command

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/urfave/cli/v2"
	"golang.org/x/time/rate"

	"github.com/wiremesh/wiremesh-go/internal/cli/output"
	"github.com/wiremesh/wiremesh-go/internal/conn"
	"github.com/wiremesh/wiremesh-go/internal/core/domain"
)

// SendCommand creates the send command.
func SendCommand() *cli.Command {
	return &cli.Command{
		Name:      "send",
		Usage:     "Send one or more message payloads",
		ArgsUsage: "[PAYLOAD...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "file",
				Aliases: []string{"f"},
				Usage:   "Read newline-delimited JSON payloads from a file ('-' for stdin)",
			},
			&cli.IntFlag{
				Name:  "count",
				Usage: "Send each payload this many times",
				Value: 1,
			},
			&cli.Float64Flag{
				Name:  "rate",
				Usage: "Pace submissions to this many messages per second (0 = unpaced)",
			},
			&cli.DurationFlag{
				Name:  "wait",
				Usage: "How long to wait for the queue to drain before exiting",
				Value: 30 * time.Second,
			},
		},
		Action: runSend,
	}
}

func runSend(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}

	payloads, err := collectPayloads(c)
	if err != nil {
		return err
	}
	if len(payloads) == 0 {
		return fmt.Errorf("nothing to send: pass payload arguments or --file")
	}

	mgr, err := buildManager(c, cfg)
	if err != nil {
		return err
	}
	defer mgr.Close()

	spinner := output.NewSpinner(c.App.ErrWriter, "connecting to "+cfg.Endpoint)
	spinner.Start()
	mgr.Connect()
	if waitForState(mgr, domain.StateConnected, cfg.Conn.DialTimeout+time.Second) {
		spinner.Success("connected")
	} else if !cfg.Conn.AutoReconnect {
		spinner.Fail("connect failed")
		return fmt.Errorf("could not connect to %s", cfg.Endpoint)
	} else {
		spinner.Stop()
		fmt.Fprintln(c.App.ErrWriter, "not connected yet, messages will queue")
	}

	count := c.Int("count")
	if count < 1 {
		count = 1
	}
	total := int64(len(payloads) * count)

	var limiter *rate.Limiter
	if r := c.Float64("rate"); r > 0 {
		limiter = rate.NewLimiter(rate.Limit(r), 1)
	}

	var bar *output.ProgressBar
	if total > 1 {
		bar = output.NewProgressBar(c.App.ErrWriter, "sending")
		bar.SetTotal(total)
	}

	ctx := c.Context
	for i := 0; i < count; i++ {
		for _, p := range payloads {
			if limiter != nil {
				if err := limiter.Wait(ctx); err != nil {
					return err
				}
			}
			if err := mgr.Send(p); err != nil {
				return err
			}
			if bar != nil {
				bar.Increment(1)
			}
		}
	}
	if bar != nil {
		bar.Finish()
	}

	if err := waitForDrain(ctx, mgr, c.Duration("wait")); err != nil {
		return err
	}

	stats := mgr.Stats()
	fmt.Fprintf(c.App.Writer, "sent %d message(s), %d dropped\n", stats.Sent, stats.Dropped)
	return nil
}

// collectPayloads gathers payloads from arguments and --file. Bare text
// arguments are wrapped as JSON strings.
func collectPayloads(c *cli.Context) ([]json.RawMessage, error) {
	var payloads []json.RawMessage

	for _, arg := range c.Args().Slice() {
		payloads = append(payloads, normalizePayload(arg))
	}

	if path := c.String("file"); path != "" {
		var r io.Reader
		if path == "-" {
			r = os.Stdin
		} else {
			f, err := os.Open(path)
			if err != nil {
				return nil, err
			}
			defer f.Close()
			r = f
		}
		scanner := bufio.NewScanner(r)
		scanner.Buffer(make([]byte, 0, 64*1024), domain.MaxPayloadSize+1024)
		for scanner.Scan() {
			line := scanner.Text()
			if line == "" {
				continue
			}
			payloads = append(payloads, normalizePayload(line))
		}
		if err := scanner.Err(); err != nil {
			return nil, err
		}
	}
	return payloads, nil
}

// normalizePayload passes valid JSON through and quotes anything else.
func normalizePayload(s string) json.RawMessage {
	raw := json.RawMessage(s)
	if json.Valid(raw) {
		return raw
	}
	quoted, err := json.Marshal(s)
	if err != nil {
		return json.RawMessage(`""`)
	}
	return quoted
}

// waitForDrain blocks until the outbound queue is empty or the timeout
// elapses.
func waitForDrain(ctx context.Context, mgr *conn.Manager, timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		stats := mgr.Stats()
		if stats.Pending == 0 {
			return nil
		}
		if stats.State == domain.StateFailed {
			return fmt.Errorf("connection failed with %d message(s) still queued: %s",
				stats.Pending, stats.LastError)
		}
		if time.Now().After(deadline) {
			return fmt.Errorf("timed out with %d message(s) still queued", stats.Pending)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(50 * time.Millisecond):
		}
	}
}
