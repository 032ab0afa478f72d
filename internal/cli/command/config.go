// Package command provides CLI command definitions for WireMesh.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/wiremesh/wiremesh-go/internal/cli/config"
)

// ConfigCommand creates the config command group.
func ConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "config",
		Usage: "Inspect CLI configuration",
		Subcommands: []*cli.Command{
			{
				Name:   "show",
				Usage:  "Show the effective configuration",
				Action: runConfigShow,
			},
			{
				Name:   "path",
				Usage:  "Print the default config file path",
				Action: runConfigPath,
			},
		},
	}
}

func runConfigShow(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	return formatterFor(cfg).Format(c.App.Writer, cfg)
}

func runConfigPath(c *cli.Context) error {
	_, err := fmt.Fprintln(c.App.Writer, config.DefaultConfigPath())
	return err
}
