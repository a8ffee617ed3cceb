package stac

import (
	"fmt"
	"strings"
	"time"

	"github.com/venicegeo/geojson-go/geojson"
	"github.com/venicegeo/goes-glm-stac/geoparquet"
	"github.com/venicegeo/goes-glm-stac/model"
	"github.com/venicegeo/goes-glm-stac/util"
)

// CollectionOptions are the options of CreateCollection
type CollectionOptions struct {
	License      string // href of the license link, none if empty
	ID           string // defaults to model.CollectionID
	Thumbnail    string // PNG or JPEG href, none if empty
	NoGeoParquet bool
	NoNetCDF     bool
	StartTime    string // start of the temporal extent, defaults to now
}

// CreateCollection creates the GLM collection
func CreateCollection(ctx util.LogContext, opts CollectionOptions) (*model.Collection, error) {
	var start time.Time
	if opts.StartTime == "" {
		start = clock.Now().UTC()
	} else {
		var err error
		if start, err = model.ParseTimestamp(opts.StartTime); err != nil {
			return nil, util.LogSimpleErr(ctx, "Invalid start time", err)
		}
	}

	id := opts.ID
	if id == "" {
		id = model.CollectionID
	}

	collection := model.NewCollection(id)
	collection.Title = model.CollectionTitle
	collection.Description = model.CollectionDescription
	collection.License = model.CollectionLicense
	collection.Providers = append([]model.Provider{}, model.Providers...)
	collection.AddExtension(model.GOESExtension)
	collection.AddExtension(model.ProcessingExtension)

	startStr := model.FormatTimestamp(start)
	collection.Extent = model.Extent{
		Temporal: model.TemporalExtent{Interval: [][]*string{{&startStr, nil}}},
	}
	for _, bbox := range model.CollectionBboxes {
		collection.Extent.Spatial.Bbox = append(collection.Extent.Spatial.Bbox, append(geojson.BoundingBox{}, bbox...))
	}

	collection.Keywords = append([]string{}, model.CollectionKeywords...)
	if !opts.NoNetCDF {
		collection.Keywords = append(collection.Keywords, "netCDF")
	}
	if !opts.NoGeoParquet {
		collection.Keywords = append(collection.Keywords, "GeoParquet")
	}

	slots := make([]string, len(model.OrbitalSlots))
	for i, slot := range model.OrbitalSlots {
		slots[i] = string(slot)
	}
	collection.Summaries = map[string]interface{}{
		"mission":          []string{model.Mission},
		"constellation":    []string{model.Constellation},
		"platform":         model.PlatformNames(),
		"instruments":      model.Instruments(),
		"gsd":              []int{model.Resolution},
		"processing:level": []string{model.ProcessingLevel},
	}
	collection.Summaries[model.PropertyPrefix+"orbital_slot"] = slots

	if opts.License != "" {
		collection.AddLink(model.Link{Rel: "license", Href: opts.License, Title: "License"})
	}
	collection.AddLink(model.LinkLandingPage)
	collection.AddLink(model.LinkUserGuideMain)
	collection.AddLink(model.LinkUserGuideL2Products)

	collection.AddExtension(model.ScientificExtension)
	collection.SciDOI = model.DOI
	collection.SciCitation = model.Citation

	if opts.Thumbnail != "" {
		collection.Assets = map[string]*model.Asset{
			model.ThumbnailKey: model.NewAsset(opts.Thumbnail, "Preview", thumbnailMediaType(opts.Thumbnail), []string{"thumbnail"}),
		}
	}

	collection.ItemAssets = map[string]*model.Asset{}
	if !opts.NoGeoParquet {
		collection.AddExtension(model.TableExtension)
		for _, table := range geoparquet.Tables {
			collection.ItemAssets[table.Key] = geoparquet.AssetMetadata(table.Title, "", nil, -1)
		}
	}
	if !opts.NoNetCDF {
		collection.ItemAssets[model.NetCDFKey] = NetCDFAsset("")
	}
	if len(collection.ItemAssets) > 0 {
		collection.AddExtension(model.ItemAssetsExtension)
	}

	util.LogInfo(ctx, fmt.Sprintf("Created collection %s starting %s", id, startStr))
	return collection, nil
}

func thumbnailMediaType(href string) string {
	if strings.HasSuffix(strings.ToLower(href), ".png") {
		return "image/png"
	}
	return "image/jpeg"
}
