// Package repl provides the interactive session mode for wiremesh-cli.
package repl

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/wiremesh/wiremesh-go/internal/cli/output"
	"github.com/wiremesh/wiremesh-go/internal/conn"
	"github.com/wiremesh/wiremesh-go/internal/core/domain"
)

// REPL is the interactive session loop. Plain input lines are sent as
// message payloads; lines starting with '/' are session commands.
type REPL struct {
	mgr       *conn.Manager
	formatter output.Formatter
	input     io.Reader
	output    io.Writer
	completer *Completer
	history   *History
}

// Option configures a REPL.
type Option func(*REPL)

// WithIO overrides the input and output streams, for tests.
func WithIO(in io.Reader, out io.Writer) Option {
	return func(r *REPL) {
		r.input = in
		r.output = out
	}
}

// WithFormatter sets the formatter used by /status output.
func WithFormatter(f output.Formatter) Option {
	return func(r *REPL) {
		r.formatter = f
	}
}

// New creates a REPL driving the given connection manager.
func New(mgr *conn.Manager, opts ...Option) *REPL {
	r := &REPL{
		mgr:       mgr,
		formatter: &output.TableFormatter{},
		input:     os.Stdin,
		output:    os.Stdout,
		completer: NewCompleter(),
		history:   NewHistory(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Run starts the session loop. It returns when the user quits or the
// input stream ends.
func (r *REPL) Run() error {
	_ = r.history.Load()
	defer func() { _ = r.history.Save() }()

	fmt.Fprintln(r.output, "Type a JSON payload to send it, /help for commands.")

	reader := bufio.NewReader(r.input)
	for {
		fmt.Fprint(r.output, "wiremesh> ")

		line, err := reader.ReadString('\n')
		if err == io.EOF {
			fmt.Fprintln(r.output)
			return nil
		}
		if err != nil {
			return err
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		r.history.Add(line)

		if strings.HasPrefix(line, "/") {
			quit, err := r.execute(line)
			if err != nil {
				fmt.Fprintf(r.output, "error: %v\n", err)
			}
			if quit {
				return nil
			}
			continue
		}

		if err := r.send(line); err != nil {
			fmt.Fprintf(r.output, "error: %v\n", err)
		}
	}
}

// send submits one payload. Non-JSON input is wrapped as a JSON string
// so bare text still goes through.
func (r *REPL) send(line string) error {
	payload := json.RawMessage(line)
	if !json.Valid(payload) {
		quoted, err := json.Marshal(line)
		if err != nil {
			return err
		}
		payload = quoted
	}
	if err := r.mgr.Send(payload); err != nil {
		return err
	}
	if r.mgr.State() != domain.StateConnected {
		fmt.Fprintln(r.output, "queued (not connected)")
	}
	return nil
}

// execute runs one /command. It reports whether the loop should exit.
func (r *REPL) execute(line string) (bool, error) {
	fields := strings.Fields(line)
	switch fields[0] {
	case "/quit", "/exit":
		return true, nil

	case "/help":
		fmt.Fprint(r.output, helpText)
		return false, nil

	case "/status":
		return false, r.formatter.Format(r.output, r.mgr.Stats())

	case "/state":
		fmt.Fprintln(r.output, r.mgr.State().String())
		return false, nil

	case "/connect":
		r.mgr.Connect()
		return false, nil

	case "/disconnect":
		r.mgr.Disconnect()
		return false, nil

	default:
		return false, fmt.Errorf("unknown command %s (try /help)", fields[0])
	}
}

const helpText = `Commands:
  /connect     establish the connection
  /disconnect  tear the connection down (queued messages are kept)
  /status      show session counters
  /state       show the connection state
  /help        show this help
  /quit        exit the session
Any other input is sent as a message payload.
`
