package main

import (
	"errors"

	"github.com/venicegeo/goes-glm-stac/stac"
	"github.com/venicegeo/goes-glm-stac/util"
	cli "gopkg.in/urfave/cli.v1"
)

var createCollectionFlags = []cli.Flag{
	cli.StringFlag{Name: "license", Usage: "URL of the license document"},
	cli.StringFlag{Name: "id", Usage: "Collection ID (default: goes-glm)"},
	cli.StringFlag{Name: "thumbnail", Usage: "URL of a PNG or JPEG preview"},
	cli.BoolFlag{Name: "nogeoparquet", Usage: "Items will not carry GeoParquet assets"},
	cli.BoolFlag{Name: "nonetcdf", Usage: "Items will not carry a netCDF asset"},
	cli.StringFlag{Name: "start_time", Usage: "Start of the temporal extent (default: now)"},
}

func createCollectionAction(c *cli.Context, metrics *util.Metrics) error {
	if c.NArg() != 1 {
		return errors.New("create-collection expects exactly one destination")
	}
	dest := c.Args().Get(0)
	ctx := &util.BasicLogContext{}

	collection, err := stac.CreateCollection(ctx, stac.CollectionOptions{
		License:      c.String("license"),
		ID:           c.String("id"),
		Thumbnail:    c.String("thumbnail"),
		NoGeoParquet: c.Bool("nogeoparquet"),
		NoNetCDF:     c.Bool("nonetcdf"),
		StartTime:    c.String("start_time"),
	})
	if err != nil {
		return err
	}
	if err = stac.WriteCollection(collection, dest); err != nil {
		return util.LogSimpleErr(ctx, "Could not write "+dest, err)
	}
	metrics.DocumentsWritten.WithLabelValues("collection").Inc()
	util.LogAudit(ctx, util.LogAuditInput{Actor: "create-collection", Action: "write", Actee: dest, Message: "Wrote collection " + collection.ID, Severity: util.INFO})
	return nil
}
