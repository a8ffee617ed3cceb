package stac

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/venicegeo/goes-glm-stac/filename"
	"github.com/venicegeo/goes-glm-stac/geoparquet"
	"github.com/venicegeo/goes-glm-stac/glm"
	"github.com/venicegeo/goes-glm-stac/model"
	"github.com/venicegeo/goes-glm-stac/util"
)

// coverageTolerance is how far the file name times may be from the coverage
// attributes; the name carries tenths of a second
const coverageTolerance = time.Second

// CollectionRef points an item at its collection
type CollectionRef struct {
	ID   string
	Href string
}

// ItemOptions are the options of CreateItem
type ItemOptions struct {
	Source       string
	Collection   *CollectionRef
	NoGeoParquet bool
	NoNetCDF     bool
	FixNetCDF    bool
	AppendCtime  bool
}

// CreateItem creates an item for a GLM netCDF file and returns it with the
// variable values it carries as properties. Unless NoGeoParquet is set, the
// GeoParquet tables are written next to the source file.
func CreateItem(ctx util.LogContext, opts ItemOptions) (*model.Item, []model.VariableValue, error) {
	source, err := openDataset(opts.Source)
	if err != nil {
		return nil, nil, util.LogSimpleErr(ctx, "Could not open "+opts.Source, err)
	}
	defer source.Close()

	if err = glm.ValidateVariableCount(source); err != nil {
		return nil, nil, util.LogSimpleErr(ctx, "Unexpected file layout of "+opts.Source, err)
	}

	ds, repaired, err := glm.WithUnsignedRepair(source)
	if err != nil {
		return nil, nil, util.LogSimpleErr(ctx, "Could not inspect "+opts.Source, err)
	}
	if len(repaired) > 0 {
		util.LogInfo(ctx, fmt.Sprintf("Reading %s as unsigned: %s", strings.Join(repaired, ", "), opts.Source))
		if opts.FixNetCDF {
			util.LogAlert(ctx, fmt.Sprintf("%s is read-only here, _Unsigned is missing from: %s", opts.Source, strings.Join(repaired, ", ")))
		}
	}

	md, err := glm.ReadMetadata(ds)
	if err != nil {
		return nil, nil, util.LogSimpleErr(ctx, "Invalid metadata in "+opts.Source, err)
	}

	id := itemID(md.DatasetName, opts.Source, opts.AppendCtime)
	if err = crossCheckName(ctx, id, md); err != nil {
		return nil, nil, util.LogSimpleErr(ctx, "File name does not match the contents of "+opts.Source, err)
	}

	sysEnv := ""
	if len(id) >= 2 {
		sysEnv = id[:2]
	}
	if sysEnv != filename.OperationalEnvironment {
		util.LogAlert(ctx, "You are ingesting test data.")
	}

	extraction, err := glm.ExtractProperties(ds)
	if err != nil {
		return nil, nil, util.LogSimpleErr(ctx, "Could not read variables of "+opts.Source, err)
	}

	generation := md.Platform.Generation
	result := model.GLMItem{
		BasicGLMItem:       model.BasicGLMItem{ID: id, OrbitalSlot: md.OrbitalSlot},
		AcquisitionInfo:    model.AcquisitionInfo{Start: md.Start, End: md.End},
		PlatformInfo:       model.PlatformInfo{Platform: md.Platform, Instrument: md.Instrument},
		ProcessingInfo:     model.ProcessingInfo{Facility: md.ProductionSite},
		GOESInfo:           model.GOESInfo{Generation: generation, OrbitalSlot: md.OrbitalSlot, SystemEnvironment: sysEnv},
		ProjectionInfo:     model.ProjectionInfo{EPSG: model.TargetCRS, Centroid: extraction.Centroid},
		ExtractedVariables: model.ExtractedVariables{Generation: generation, Values: extraction.Values},
	}
	if opts.Collection != nil {
		result.BasicGLMItem.Collection = opts.Collection.ID
	}

	item, err := result.STACItem()
	if err != nil {
		return nil, nil, util.LogSimpleErr(ctx, "Could not assemble item "+id, err)
	}
	if opts.Collection != nil && opts.Collection.Href != "" {
		item.AddLink(model.Link{Rel: "collection", Href: opts.Collection.Href, Type: "application/json"})
	}

	if !opts.NoGeoParquet {
		assets, err := geoparquet.Convert(ds, filepath.Dir(opts.Source))
		if err != nil {
			return nil, nil, util.LogSimpleErr(ctx, "Could not convert "+opts.Source+" to GeoParquet", err)
		}
		for key, asset := range assets {
			item.Assets[key] = asset
		}
		item.AddExtension(model.TableExtension)
	}

	if !opts.NoNetCDF {
		item.AddExtension(model.DatacubeExtension)
		asset, err := describeNetCDF(ds, opts.Source, md.DateCreated)
		if err != nil {
			return nil, nil, util.LogSimpleErr(ctx, "Could not describe "+opts.Source, err)
		}
		item.Assets[model.NetCDFKey] = asset
	}

	util.LogInfo(ctx, fmt.Sprintf("Created item %s with %d extracted properties", id, len(extraction.Values)))
	return item, extraction.Values, nil
}

// itemID derives the item ID from dataset_name, or from the source file name
// when the attribute is absent
func itemID(datasetName, source string, appendCtime bool) string {
	id := datasetName
	if id == "" {
		id = filepath.Base(source)
	}
	id = strings.TrimSuffix(id, string(filename.FormatNetCDF))
	if !appendCtime {
		id = filename.StripCreation(id)
	}
	return id
}

// crossCheckName compares what the ID says against the global attributes.
// IDs that do not follow the naming convention are not checked.
func crossCheckName(ctx util.LogContext, id string, md *glm.Metadata) error {
	name, err := filename.Parse(id)
	if err != nil {
		util.LogDebug(ctx, "Skipping file name check: "+err.Error())
		return nil
	}
	if name.Platform.ID != md.Platform.ID {
		return fmt.Errorf("name says %s, %s says %s", name.Platform.ID, glm.AttrPlatformID, md.Platform.ID)
	}
	if absDuration(name.Start.Sub(md.Start)) > coverageTolerance {
		return fmt.Errorf("name starts at %s, coverage at %s", model.FormatTimestamp(name.Start), model.FormatTimestamp(md.Start))
	}
	if absDuration(name.End.Sub(md.End)) > coverageTolerance {
		return fmt.Errorf("name ends at %s, coverage at %s", model.FormatTimestamp(name.End), model.FormatTimestamp(md.End))
	}
	return nil
}

func absDuration(d time.Duration) time.Duration {
	if d < 0 {
		return -d
	}
	return d
}
