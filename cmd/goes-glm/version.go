package main

import (
	"fmt"

	cli "gopkg.in/urfave/cli.v1"
)

// version is set at build time with -ldflags "-X main.version=..."
var version = "dev"

func versionAction(c *cli.Context) error {
	_, err := fmt.Fprintf(c.App.Writer, "%s %s\n", c.App.Name, version)
	return err
}
