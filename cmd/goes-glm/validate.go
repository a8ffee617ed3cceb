package main

import (
	"errors"
	"fmt"

	"github.com/venicegeo/goes-glm-stac/stac"
	"github.com/venicegeo/goes-glm-stac/util"
	cli "gopkg.in/urfave/cli.v1"
)

func validateAction(c *cli.Context, _ *util.Metrics) error {
	if c.NArg() == 0 {
		return errors.New("validate expects at least one file")
	}
	invalid := 0
	for _, path := range c.Args() {
		if err := stac.ValidateFile(path); err != nil {
			invalid++
			fmt.Fprintf(c.App.Writer, "%s: invalid\n%v\n", path, err)
			continue
		}
		fmt.Fprintf(c.App.Writer, "%s: valid\n", path)
	}
	if invalid > 0 {
		return fmt.Errorf("%d of %d documents are invalid", invalid, c.NArg())
	}
	return nil
}
