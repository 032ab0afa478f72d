// Package command provides CLI command definitions for WireMesh.
package command

import (
	"github.com/urfave/cli/v2"

	"github.com/wiremesh/wiremesh-go/internal/infra/buildinfo"
)

// VersionCommand creates the version command.
func VersionCommand() *cli.Command {
	return &cli.Command{
		Name:   "version",
		Usage:  "Show version and build information",
		Action: runVersion,
	}
}

func runVersion(c *cli.Context) error {
	cfg, err := loadConfig(c)
	if err != nil {
		return err
	}
	return formatterFor(cfg).Format(c.App.Writer, buildinfo.Get())
}
