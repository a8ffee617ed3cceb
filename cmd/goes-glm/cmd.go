// Copyright 2018, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"io"
	"time"

	"github.com/venicegeo/goes-glm-stac/util"
	cli "gopkg.in/urfave/cli.v1"
)

var commands = cli.Commands{
	cli.Command{
		Name:      "create-collection",
		Aliases:   []string{"c"},
		Usage:     "Create the STAC collection for GLM L2 LCFA files",
		ArgsUsage: "<destination>",
		Flags:     createCollectionFlags,
		Action:    instrumented("create-collection", createCollectionAction),
	},
	cli.Command{
		Name:      "create-item",
		Aliases:   []string{"i"},
		Usage:     "Create a STAC item (and GeoParquet tables) for a GLM netCDF file",
		ArgsUsage: "<source> <destination>",
		Flags:     createItemFlags,
		Action:    instrumented("create-item", createItemAction),
	},
	cli.Command{
		Name:      "validate",
		Usage:     "Validate STAC items and collections against the bundled schemas",
		ArgsUsage: "<file>...",
		Action:    instrumented("validate", validateAction),
	},
	cli.Command{
		Name:      "parse-name",
		Usage:     "Print what a GLM file name says about its contents",
		ArgsUsage: "<file name>...",
		Action:    instrumented("parse-name", parseNameAction),
	},
	cli.Command{
		Name:    "version",
		Aliases: []string{"v"},
		Usage:   "Print the version number of the CLI",
		Action:  versionAction,
	},
}

func createCliApp(out io.Writer) (app *cli.App) {
	app = cli.NewApp()
	app.Name = util.AppName
	app.Usage = "Create STAC metadata for GOES GLM L2 lightning detections"
	app.Version = version
	app.Writer = out
	app.Commands = commands
	return
}

type meteredAction func(c *cli.Context, metrics *util.Metrics) error

// instrumented runs fn with a fresh metrics registry and writes the
// registry to the configured textfile afterwards, whatever the outcome
func instrumented(command string, fn meteredAction) cli.ActionFunc {
	return func(c *cli.Context) error {
		metrics := util.NewMetrics()
		start := time.Now()
		err := fn(c, metrics)
		metrics.RunDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			metrics.Failures.WithLabelValues(command).Inc()
		}
		if werr := metrics.WriteTextfile(util.GetMetricsTextfile()); werr != nil {
			util.LogAlert(&util.BasicLogContext{}, "Could not write metrics: "+werr.Error())
		}
		return err
	}
}
