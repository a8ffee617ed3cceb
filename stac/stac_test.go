package stac_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venicegeo/goes-glm-stac/glm"
	"github.com/venicegeo/goes-glm-stac/glm/glmtest"
	"github.com/venicegeo/goes-glm-stac/model"
	"github.com/venicegeo/goes-glm-stac/stac"
	"github.com/venicegeo/goes-glm-stac/util"
)

const defaultID = "OR_GLM-L2-LCFA_G16_s20203662359400_e20210010000004"

// useDataset makes CreateItem read ds instead of the file system and returns
// a source path inside a fresh temporary directory
func useDataset(t *testing.T, ds glm.Dataset, name string) string {
	stac.SetOpener(func(string) (glm.Dataset, error) { return ds, nil })
	t.Cleanup(func() { stac.SetOpener(nil) })
	return filepath.Join(t.TempDir(), name)
}

func captureLogs(t *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	util.SetLogOutput(buf)
	t.Cleanup(func() { util.SetLogOutput(os.Stderr) })
	return buf
}

func TestCreateCollection_Defaults(t *testing.T) {
	// Mock
	ctx := &util.BasicLogContext{}
	stac.SetClock(clockwork.NewFakeClockAt(time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)))
	defer stac.SetClock(nil)

	// Tested code
	collection, err := stac.CreateCollection(ctx, stac.CollectionOptions{})

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Equal(t, model.CollectionID, collection.ID)
	assert.Equal(t, "proprietary", collection.License)
	assert.Equal(t, []string{
		model.GOESExtension,
		model.ProcessingExtension,
		model.ScientificExtension,
		model.TableExtension,
		model.ItemAssetsExtension,
	}, collection.StacExtensions)
	assert.Equal(t, "2023-05-01T12:00:00.000000Z", *collection.Extent.Temporal.Interval[0][0])
	assert.Nil(t, collection.Extent.Temporal.Interval[0][1])
	assert.Len(t, collection.Extent.Spatial.Bbox, len(model.CollectionBboxes))
	assert.Contains(t, collection.Keywords, "netCDF")
	assert.Contains(t, collection.Keywords, "GeoParquet")
	assert.Equal(t, []string{"West", "East", "Test"}, collection.Summaries["goes:orbital_slot"])
	assert.Len(t, collection.ItemAssets, 4)
	assert.Empty(t, collection.ItemAssets[model.NetCDFKey].Href)
	assert.Nil(t, collection.Assets)
	assert.Equal(t, model.DOI, collection.SciDOI)

	rels := []string{}
	for _, link := range collection.Links {
		rels = append(rels, link.Rel)
	}
	assert.Equal(t, []string{"about", "about", "about"}, rels)
}

func TestCreateCollection_Options(t *testing.T) {
	// Mock
	ctx := &util.BasicLogContext{}
	opts := stac.CollectionOptions{
		ID:           "glm-test",
		License:      "https://example.com/license.html",
		Thumbnail:    "https://example.com/preview.PNG",
		NoGeoParquet: true,
		StartTime:    "2017-01-01T00:00:00Z",
	}

	// Tested code
	collection, err := stac.CreateCollection(ctx, opts)

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Equal(t, "glm-test", collection.ID)
	assert.Equal(t, "2017-01-01T00:00:00.000000Z", *collection.Extent.Temporal.Interval[0][0])
	assert.NotContains(t, collection.StacExtensions, model.TableExtension)
	assert.NotContains(t, collection.Keywords, "GeoParquet")
	assert.Contains(t, collection.Keywords, "netCDF")
	assert.Len(t, collection.ItemAssets, 1)
	assert.Equal(t, "license", collection.Links[0].Rel)
	assert.Equal(t, "License", collection.Links[0].Title)

	thumbnail := collection.Assets[model.ThumbnailKey]
	require.NotNil(t, thumbnail)
	assert.Equal(t, "image/png", thumbnail.Type)
	assert.Equal(t, []string{"thumbnail"}, thumbnail.Roles)
}

func TestCreateCollection_NoAssetFormats(t *testing.T) {
	// Tested code
	collection, err := stac.CreateCollection(&util.BasicLogContext{}, stac.CollectionOptions{NoGeoParquet: true, NoNetCDF: true})

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Empty(t, collection.ItemAssets)
	assert.NotContains(t, collection.StacExtensions, model.ItemAssetsExtension)
}

func TestCreateCollection_InvalidStartTime(t *testing.T) {
	_, err := stac.CreateCollection(&util.BasicLogContext{}, stac.CollectionOptions{StartTime: "yesterday"})
	assert.NotNil(t, err)
}

func TestWriteCollection_Validates(t *testing.T) {
	// Mock
	dest := filepath.Join(t.TempDir(), "collection.json")
	collection, err := stac.CreateCollection(&util.BasicLogContext{}, stac.CollectionOptions{
		License:   "https://example.com/license.html",
		Thumbnail: "https://example.com/preview.jpg",
	})
	require.Nil(t, err, "%v", err)

	// Tested code
	require.Nil(t, stac.WriteCollection(collection, dest))

	// Asserts
	assert.Nil(t, stac.ValidateFile(dest))
	ref, err := stac.ReadCollectionRef(dest)
	require.Nil(t, err, "%v", err)
	assert.Equal(t, model.CollectionID, ref.ID)
	assert.Equal(t, dest, ref.Href)

	abs, _ := filepath.Abs(dest)
	var self string
	for _, link := range collection.Links {
		if link.Rel == "self" {
			self = link.Href
		}
	}
	assert.Equal(t, filepath.ToSlash(abs), self)
}

func TestCreateItem_Success(t *testing.T) {
	// Mock
	ctx := &util.BasicLogContext{}
	source := useDataset(t, glmtest.Default(), glmtest.DefaultOptions().Name())

	// Tested code
	item, extracted, err := stac.CreateItem(ctx, stac.ItemOptions{Source: source})

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Len(t, extracted, 12)
	assert.Equal(t, defaultID, item.ID)
	assert.Empty(t, item.Collection)
	assert.Equal(t, []string{
		model.GOESExtension,
		model.ProcessingExtension,
		model.ProjectionExtension,
		model.TableExtension,
		model.DatacubeExtension,
	}, item.StacExtensions)
	assert.Equal(t, model.SlotEast.BoundingBox(), item.Bbox)

	props := item.Properties
	assert.Equal(t, "2020-12-31T23:59:50.200000Z", props["datetime"])
	assert.Equal(t, "2020-12-31T23:59:40.000000Z", props["start_datetime"])
	assert.Equal(t, "2021-01-01T00:00:00.400000Z", props["end_datetime"])
	assert.Equal(t, "GOES-16", props["platform"])
	assert.Equal(t, []string{"FM1"}, props["instruments"])
	assert.Equal(t, "L2", props["processing:level"])
	assert.Equal(t, "NSOF", props["processing:facility"])
	assert.Equal(t, "East", props["goes:orbital_slot"])
	assert.Equal(t, "OR", props["goes:system_environment"])
	assert.Equal(t, 4326, props["proj:epsg"])
	assert.Equal(t, model.Centroid{Lat: 0, Lon: -75}, props["proj:centroid"])
	assert.EqualValues(t, 5, props["goes:event_count"])
	assert.Contains(t, props, "goes:nominal_satellite_height")
	assert.NotContains(t, props, "goes:product_time")
	assert.NotContains(t, props, "goes:goes_imager_projection")
	assert.False(t, props.HasLegacyKeys())

	assert.Len(t, item.Assets, 4)
	netcdf := item.Assets[model.NetCDFKey]
	require.NotNil(t, netcdf)
	assert.Equal(t, source, netcdf.Href)
	assert.Equal(t, glmtest.DateCreated, netcdf.Fields["created"])
	assert.Contains(t, netcdf.Fields, "cube:dimensions")
	assert.Contains(t, netcdf.Fields, "cube:variables")

	for _, file := range []string{"events.parquet", "groups.parquet", "flashes.parquet"} {
		_, err := os.Stat(filepath.Join(filepath.Dir(source), file))
		assert.Nil(t, err, file)
	}
}

func TestCreateItem_WriteAndValidate(t *testing.T) {
	// Mock
	ctx := &util.BasicLogContext{}
	source := useDataset(t, glmtest.Default(), glmtest.DefaultOptions().Name())
	dir := filepath.Dir(source)
	collectionPath := filepath.Join(dir, "collection.json")
	collection, err := stac.CreateCollection(ctx, stac.CollectionOptions{})
	require.Nil(t, err, "%v", err)
	require.Nil(t, stac.WriteCollection(collection, collectionPath))
	ref, err := stac.ReadCollectionRef(collectionPath)
	require.Nil(t, err, "%v", err)

	// Tested code
	item, _, err := stac.CreateItem(ctx, stac.ItemOptions{Source: source, Collection: ref})
	require.Nil(t, err, "%v", err)
	dest := filepath.Join(dir, "items", defaultID+".json")
	require.Nil(t, stac.WriteItem(item, dest))

	// Asserts
	assert.Nil(t, stac.ValidateFile(dest))
	assert.Equal(t, model.CollectionID, item.Collection)
	assert.Equal(t, "../events.parquet", item.Assets[model.ParquetKeyEvents].Href)
	assert.Equal(t, "../"+filepath.Base(source), item.Assets[model.NetCDFKey].Href)

	links := map[string]string{}
	for _, link := range item.Links {
		links[link.Rel] = link.Href
	}
	assert.Equal(t, "../collection.json", links["collection"])
	assert.True(t, strings.HasSuffix(links["self"], "/items/"+defaultID+".json"))

	data, err := os.ReadFile(dest)
	require.Nil(t, err)
	var doc map[string]interface{}
	require.Nil(t, json.Unmarshal(data, &doc))
	assert.Equal(t, "Polygon", doc["geometry"].(map[string]interface{})["type"])
}

func TestWriteItem_SameDirectory(t *testing.T) {
	// Mock
	source := useDataset(t, glmtest.Default(), glmtest.DefaultOptions().Name())
	item, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source})
	require.Nil(t, err, "%v", err)

	// Tested code
	require.Nil(t, stac.WriteItem(item, filepath.Join(filepath.Dir(source), "item.json")))

	// Asserts
	assert.Equal(t, "./groups.parquet", item.Assets[model.ParquetKeyGroups].Href)
	assert.Equal(t, "./"+filepath.Base(source), item.Assets[model.NetCDFKey].Href)
}

func TestCreateItem_NoAssets(t *testing.T) {
	// Mock
	source := useDataset(t, glmtest.Default(), glmtest.DefaultOptions().Name())

	// Tested code
	item, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source, NoGeoParquet: true, NoNetCDF: true})

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Empty(t, item.Assets)
	assert.Equal(t, []string{model.GOESExtension, model.ProcessingExtension, model.ProjectionExtension}, item.StacExtensions)
	_, err = os.Stat(filepath.Join(filepath.Dir(source), "events.parquet"))
	assert.True(t, os.IsNotExist(err))
}

func TestCreateItem_AppendCtime(t *testing.T) {
	// Mock
	source := useDataset(t, glmtest.Default(), glmtest.DefaultOptions().Name())

	// Tested code
	item, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source, AppendCtime: true, NoGeoParquet: true})

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Equal(t, defaultID+"_c20210010000030", item.ID)
}

func TestCreateItem_IDFromFileName(t *testing.T) {
	// Mock
	ds := glmtest.Default()
	ds.SetAttribute("dataset_name", nil)
	source := useDataset(t, ds, "OR_GLM-L2-LCFA_G16_s20203662359400_e20210010000004_c20210010000099.nc")

	// Tested code
	item, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source, NoGeoParquet: true})

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Equal(t, defaultID, item.ID)
}

func TestCreateItem_NameMismatch(t *testing.T) {
	// Mock
	opts := glmtest.DefaultOptions()
	opts.DatasetName = "OR_GLM-L2-LCFA_G17_s20203662359400_e20210010000004_c20210010000030.nc"
	source := useDataset(t, glmtest.New(opts), opts.DatasetName)

	// Tested code
	_, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source, NoGeoParquet: true})

	// Asserts
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "G17")
}

func TestCreateItem_CoverageMismatch(t *testing.T) {
	// Mock
	opts := glmtest.DefaultOptions()
	opts.DatasetName = "OR_GLM-L2-LCFA_G16_s20203662359000_e20210010000004_c20210010000030.nc"
	source := useDataset(t, glmtest.New(opts), opts.DatasetName)

	// Tested code
	_, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source, NoGeoParquet: true})

	// Asserts
	assert.NotNil(t, err)
}

func TestCreateItem_TestData(t *testing.T) {
	// Mock
	logs := captureLogs(t)
	opts := glmtest.DefaultOptions()
	opts.Environment = "OT"
	source := useDataset(t, glmtest.New(opts), opts.Name())

	// Tested code
	item, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source, NoGeoParquet: true})

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Equal(t, "OT", item.Properties["goes:system_environment"])
	assert.Contains(t, logs.String(), "You are ingesting test data.")
}

func TestCreateItem_MissingUnsigned(t *testing.T) {
	// Mock
	logs := captureLogs(t)
	opts := glmtest.DefaultOptions()
	opts.MissingUnsigned = true
	source := useDataset(t, glmtest.New(opts), opts.Name())

	// Tested code
	item, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source, FixNetCDF: true})

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.NotNil(t, item)
	assert.Contains(t, logs.String(), "event_time_offset")
	assert.Contains(t, logs.String(), "_Unsigned is missing")
}

func TestCreateItem_OpenError(t *testing.T) {
	// Mock
	stac.SetOpener(func(string) (glm.Dataset, error) { return nil, errors.New("no such file") })
	defer stac.SetOpener(nil)

	// Tested code
	_, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: "missing.nc"})

	// Asserts
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), "no such file")
}

func TestCreateItem_UnexpectedLayout(t *testing.T) {
	// Mock
	ds := glmtest.Default()
	ds.RemoveVariable("flash_area")
	source := useDataset(t, ds, glmtest.DefaultOptions().Name())

	// Tested code
	_, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source})

	// Asserts
	assert.NotNil(t, err)
}

func TestCreateItem_Sentinels(t *testing.T) {
	// Mock
	opts := glmtest.DefaultOptions()
	opts.Sentinels = true
	source := useDataset(t, glmtest.New(opts), opts.Name())

	// Tested code
	item, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source, NoGeoParquet: true, NoNetCDF: true})

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.NotContains(t, item.Properties, "goes:nominal_satellite_height")
	assert.NotContains(t, item.Properties, "goes:yaw_flip_flag")
}

func TestReadCollectionRef_NotCollection(t *testing.T) {
	// Mock
	path := filepath.Join(t.TempDir(), "item.json")
	require.Nil(t, os.WriteFile(path, []byte(`{"type": "Feature", "id": "x"}`), 0644))

	// Tested code
	_, err := stac.ReadCollectionRef(path)

	// Asserts
	assert.NotNil(t, err)
}

func validItem(t *testing.T) map[string]interface{} {
	source := useDataset(t, glmtest.Default(), glmtest.DefaultOptions().Name())
	item, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source})
	require.Nil(t, err, "%v", err)
	data, err := json.Marshal(item)
	require.Nil(t, err)
	require.Nil(t, stac.Validate(data))

	var doc map[string]interface{}
	require.Nil(t, json.Unmarshal(data, &doc))
	return doc
}

func validate(t *testing.T, doc map[string]interface{}) error {
	data, err := json.Marshal(doc)
	require.Nil(t, err)
	return stac.Validate(data)
}

func TestValidate_UnknownExtension(t *testing.T) {
	// Mock
	doc := validItem(t)
	doc["stac_extensions"] = append(doc["stac_extensions"].([]interface{}), "https://example.com/ext/v1.0.0/schema.json")

	// Tested code
	err := validate(t, doc)

	// Asserts
	assert.True(t, errors.Is(err, stac.ErrUnknownExtension), "%v", err)
}

func TestValidate_LegacyField(t *testing.T) {
	// Mock
	doc := validItem(t)
	doc["properties"].(map[string]interface{})["goes-glm:event_count"] = 5

	// Tested code
	err := validate(t, doc)

	// Asserts
	assert.True(t, errors.Is(err, stac.ErrLegacyField), "%v", err)
}

func TestValidate_ExtensionViolation(t *testing.T) {
	// Mock
	doc := validItem(t)
	doc["properties"].(map[string]interface{})["goes:orbital_slot"] = "North"

	// Tested code
	err := validate(t, doc)

	// Asserts
	assert.NotNil(t, err)
}

func TestValidate_CoreViolation(t *testing.T) {
	// Mock
	doc := validItem(t)
	delete(doc, "bbox")

	// Tested code
	err := validate(t, doc)

	// Asserts
	assert.NotNil(t, err)
}

func TestValidate_NotSTAC(t *testing.T) {
	assert.NotNil(t, stac.Validate([]byte(`[]`)))
	assert.NotNil(t, stac.Validate([]byte(`{"type": "Catalog"}`)))
	assert.NotNil(t, stac.Validate([]byte(`{`)))
}

func TestValidateFile_MissingTable(t *testing.T) {
	// Mock
	source := useDataset(t, glmtest.Default(), glmtest.DefaultOptions().Name())
	dir := filepath.Dir(source)
	item, _, err := stac.CreateItem(&util.BasicLogContext{}, stac.ItemOptions{Source: source, NoNetCDF: true})
	require.Nil(t, err, "%v", err)
	dest := filepath.Join(dir, "item.json")
	require.Nil(t, stac.WriteItem(item, dest))
	require.Nil(t, os.Remove(filepath.Join(dir, "flashes.parquet")))

	// Tested code
	err = stac.ValidateFile(dest)

	// Asserts
	require.NotNil(t, err)
	assert.Contains(t, err.Error(), model.ParquetKeyFlashes)
}
