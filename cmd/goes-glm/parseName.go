package main

import (
	"errors"
	"fmt"

	"github.com/venicegeo/goes-glm-stac/filename"
	"github.com/venicegeo/goes-glm-stac/model"
	"github.com/venicegeo/goes-glm-stac/util"
	cli "gopkg.in/urfave/cli.v1"
)

func parseNameAction(c *cli.Context, _ *util.Metrics) error {
	if c.NArg() == 0 {
		return errors.New("parse-name expects at least one file name")
	}
	w := c.App.Writer
	for _, name := range c.Args() {
		parsed, err := filename.Parse(name)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, parsed.ID)
		fmt.Fprintf(w, "  environment: %s (operational: %t)\n", parsed.SystemEnvironment, parsed.IsOperational())
		fmt.Fprintf(w, "  product:     %s\n", parsed.Product)
		fmt.Fprintf(w, "  platform:    %s\n", parsed.Platform.Name)
		fmt.Fprintf(w, "  start:       %s\n", model.FormatTimestamp(parsed.Start))
		fmt.Fprintf(w, "  end:         %s\n", model.FormatTimestamp(parsed.End))
		if parsed.HasCreated {
			fmt.Fprintf(w, "  created:     %s\n", model.FormatTimestamp(parsed.Created))
		}
		if parsed.Format != filename.FormatNone {
			fmt.Fprintf(w, "  format:      %s\n", parsed.Format)
		}
	}
	return nil
}
