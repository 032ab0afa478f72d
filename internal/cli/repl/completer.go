// Package repl provides the interactive session mode for wiremesh-cli.
package repl

import "strings"

// Completer provides command completion for the session loop.
type Completer struct {
	commands []string
}

// NewCompleter creates a new Completer.
func NewCompleter() *Completer {
	return &Completer{
		commands: []string{
			"/connect", "/disconnect",
			"/status", "/state",
			"/help", "/quit", "/exit",
		},
	}
}

// Complete returns completion suggestions for the given prefix.
func (c *Completer) Complete(prefix string) []string {
	var suggestions []string
	for _, cmd := range c.commands {
		if strings.HasPrefix(cmd, prefix) {
			suggestions = append(suggestions, cmd)
		}
	}
	return suggestions
}
