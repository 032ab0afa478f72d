// Package main provides the entry point for wiremesh-cli.
//
// wiremesh-cli is the command-line client for WireMesh, supporting
// one-shot sends, message watching, and an interactive session mode.
package main

import (
	"fmt"
	"os"

	"github.com/wiremesh/wiremesh-go/internal/cli/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
