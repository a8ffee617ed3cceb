package main

import (
	"errors"

	"github.com/venicegeo/goes-glm-stac/geoparquet"
	"github.com/venicegeo/goes-glm-stac/stac"
	"github.com/venicegeo/goes-glm-stac/util"
	cli "gopkg.in/urfave/cli.v1"
)

var createItemFlags = []cli.Flag{
	cli.StringFlag{Name: "collection", Usage: "Path of the collection the item belongs to"},
	cli.BoolFlag{Name: "nogeoparquet", Usage: "Do not write GeoParquet tables"},
	cli.BoolFlag{Name: "nonetcdf", Usage: "Do not add the source netCDF file as an asset"},
	cli.BoolFlag{Name: "fixnetcdf", Usage: "Report variables that lack the _Unsigned attribute"},
	cli.BoolFlag{Name: "appendctime", Usage: "Keep the creation time in the item ID"},
}

func createItemAction(c *cli.Context, metrics *util.Metrics) error {
	if c.NArg() != 2 {
		return errors.New("create-item expects a source and a destination")
	}
	source, dest := c.Args().Get(0), c.Args().Get(1)
	ctx := &util.BasicLogContext{}

	opts := stac.ItemOptions{
		Source:       source,
		NoGeoParquet: c.Bool("nogeoparquet"),
		NoNetCDF:     c.Bool("nonetcdf"),
		FixNetCDF:    c.Bool("fixnetcdf"),
		AppendCtime:  c.Bool("appendctime"),
	}
	if href := c.String("collection"); href != "" {
		ref, err := stac.ReadCollectionRef(href)
		if err != nil {
			return util.LogSimpleErr(ctx, "Could not read collection", err)
		}
		opts.Collection = ref
	}

	item, extracted, err := stac.CreateItem(ctx, opts)
	if err != nil {
		return err
	}
	for _, table := range geoparquet.Tables {
		if asset, ok := item.Assets[table.Key]; ok {
			if rows, ok := asset.Fields["table:row_count"].(int); ok {
				metrics.TableRows.WithLabelValues(table.Kind + "s").Add(float64(rows))
			}
		}
	}
	metrics.PropertiesExtracted.Add(float64(len(extracted)))

	if err = stac.WriteItem(item, dest); err != nil {
		return util.LogSimpleErr(ctx, "Could not write "+dest, err)
	}
	metrics.DocumentsWritten.WithLabelValues("item").Inc()
	util.LogAudit(ctx, util.LogAuditInput{Actor: "create-item", Action: "write", Actee: dest, Message: "Wrote item " + item.ID, Severity: util.INFO})
	return nil
}
