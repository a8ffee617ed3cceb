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

package geoparquet

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"
	"github.com/paulmach/orb"
	"github.com/venicegeo/goes-glm-stac/glm"
	"github.com/venicegeo/goes-glm-stac/model"
)

const geometryColumn = model.ParquetGeometryCol

// Column is a table extension column object
type Column struct {
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Unit        string `json:"unit,omitempty"`
}

// tableData is a table read from the dataset, column by column
type tableData struct {
	count    int
	geometry [][]byte
	points   orb.MultiPoint
	floats   map[string][]float64
	ints     map[string][]int64
	times    map[string][]*time.Time
	columns  []Column
}

func (d *tableData) floatAt(col string, i int) float64 { return d.floats[col][i] }
func (d *tableData) intAt(col string, i int) int64     { return d.ints[col][i] }

// timeAt returns the zero time, written as null, for masked values and
// offsets without a time base
func (d *tableData) timeAt(col string, i int) time.Time {
	values, ok := d.times[col]
	if !ok || values[i] == nil {
		return time.Time{}
	}
	return *values[i]
}

// Convert writes events.parquet, flashes.parquet and groups.parquet into
// dir and returns their assets keyed by asset key
func Convert(ds glm.Dataset, dir string) (map[string]*model.Asset, error) {
	assets := map[string]*model.Asset{}
	for _, table := range Tables {
		asset, err := convertTable(ds, table, dir)
		if err != nil {
			return nil, fmt.Errorf("could not create %s: %w", table.File, err)
		}
		assets[table.Key] = asset
	}
	return assets, nil
}

func convertTable(ds glm.Dataset, table Table, dir string) (*model.Asset, error) {
	data, err := readTable(ds, table)
	if err != nil {
		return nil, err
	}

	path := filepath.Join(dir, table.File)
	geo, err := newGeoMetadata(data.points).encode()
	if err != nil {
		return nil, err
	}

	switch table.Kind {
	case "event":
		err = writeRows(path, eventRows(data), geo)
	case "group":
		err = writeRows(path, groupRows(data), geo)
	case "flash":
		err = writeRows(path, flashRows(data), geo)
	default:
		err = fmt.Errorf("unknown table kind %s", table.Kind)
	}
	if err != nil {
		return nil, err
	}

	description, err := Describe(path)
	if err != nil {
		return nil, err
	}
	return AssetMetadata(table.Title, path, data.columns, int(description.RowCount)), nil
}

func readTable(ds glm.Dataset, table Table) (*tableData, error) {
	count, err := recordCount(ds, table.Kind)
	if err != nil {
		return nil, err
	}

	featureType, _ := glm.StringAttribute(ds, glm.AttrFeatureType)
	data := &tableData{
		count:   count,
		floats:  map[string][]float64{},
		ints:    map[string][]int64{},
		times:   map[string][]*time.Time{},
		columns: []Column{{Name: geometryColumn, Type: featureType}},
	}

	lats, err := readFloats(ds, table.Kind+"_lat", count)
	if err != nil {
		return nil, err
	}
	lons, err := readFloats(ds, table.Kind+"_lon", count)
	if err != nil {
		return nil, err
	}
	data.geometry = make([][]byte, count)
	for i := 0; i < count; i++ {
		wkb, point, ok, err := pointWKB(lons[i], lats[i])
		if err != nil {
			return nil, err
		}
		if ok {
			data.geometry[i] = wkb
			data.points = append(data.points, point)
		}
	}

	for _, col := range table.Columns {
		if err = readColumn(ds, table.Kind+"_"+col, col, count, data); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// readColumn reads one variable into data, adding a datetime column in
// front of offsets with "seconds since" units
func readColumn(ds glm.Dataset, variable, col string, count int, data *tableData) error {
	v, err := ds.Variable(variable)
	if err != nil {
		return err
	}
	floats, err := v.Float64s()
	if err != nil {
		return err
	}
	ints, err := v.Int64s()
	if err != nil {
		return err
	}
	if len(floats) < count {
		return fmt.Errorf("variable %s holds %d values, expected %d", variable, len(floats), count)
	}

	column := Column{Name: col, Type: v.StorageType(), Description: v.StringAttribute("long_name")}
	units := v.StringAttribute("units")
	if unit, ok := glm.Unit(units); ok {
		column.Unit = unit
	}

	base, isTime, err := glm.TimeBase(units)
	if err != nil {
		return fmt.Errorf("units of %s: %w", variable, err)
	}
	if isTime {
		timeCol := strings.Replace(col, "_offset", "", 1)
		times := make([]*time.Time, count)
		for i := 0; i < count; i++ {
			if !math.IsNaN(floats[i]) {
				t := glm.OffsetTime(base, floats[i])
				times[i] = &t
			}
		}
		data.times[timeCol] = times
		data.columns = append(data.columns, Column{Name: timeCol, Type: model.ParquetDatetimeType})
	}

	data.floats[col] = floats[:count]
	data.ints[col] = ints[:count]
	data.columns = append(data.columns, column)
	return nil
}

func recordCount(ds glm.Dataset, kind string) (int, error) {
	v, err := ds.Variable(kind + "_count")
	if err != nil {
		return 0, err
	}
	value, ok, err := v.Scalar()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, fmt.Errorf("%s_count is masked", kind)
	}
	switch n := value.(type) {
	case int64:
		if n >= 0 {
			return int(n), nil
		}
	case uint64:
		return int(n), nil
	}
	return 0, fmt.Errorf("%s_count is not a valid count: %v", kind, value)
}

func readFloats(ds glm.Dataset, name string, count int) ([]float64, error) {
	v, err := ds.Variable(name)
	if err != nil {
		return nil, err
	}
	values, err := v.Float64s()
	if err != nil {
		return nil, err
	}
	if len(values) < count {
		return nil, fmt.Errorf("variable %s holds %d values, expected %d", name, len(values), count)
	}
	return values, nil
}

func eventRows(d *tableData) []EventRow {
	rows := make([]EventRow, d.count)
	for i := range rows {
		rows[i] = EventRow{
			Geometry:      d.geometry[i],
			ID:            d.intAt("id", i),
			Time:          d.timeAt("time", i),
			TimeOffset:    d.floatAt("time_offset", i),
			Energy:        d.floatAt("energy", i),
			ParentGroupID: d.intAt("parent_group_id", i),
		}
	}
	return rows
}

func groupRows(d *tableData) []GroupRow {
	rows := make([]GroupRow, d.count)
	for i := range rows {
		rows[i] = GroupRow{
			Geometry:        d.geometry[i],
			ID:              d.intAt("id", i),
			Time:            d.timeAt("time", i),
			TimeOffset:      d.floatAt("time_offset", i),
			FrameTime:       d.timeAt("frame_time", i),
			FrameTimeOffset: d.floatAt("frame_time_offset", i),
			Area:            d.floatAt("area", i),
			Energy:          d.floatAt("energy", i),
			QualityFlag:     d.intAt("quality_flag", i),
			ParentFlashID:   d.intAt("parent_flash_id", i),
		}
	}
	return rows
}

func flashRows(d *tableData) []FlashRow {
	rows := make([]FlashRow, d.count)
	for i := range rows {
		rows[i] = FlashRow{
			Geometry:                    d.geometry[i],
			ID:                          d.intAt("id", i),
			TimeOfFirstEvent:            d.timeAt("time_of_first_event", i),
			TimeOffsetOfFirstEvent:      d.floatAt("time_offset_of_first_event", i),
			TimeOfLastEvent:             d.timeAt("time_of_last_event", i),
			TimeOffsetOfLastEvent:       d.floatAt("time_offset_of_last_event", i),
			FrameTimeOfFirstEvent:       d.timeAt("frame_time_of_first_event", i),
			FrameTimeOffsetOfFirstEvent: d.floatAt("frame_time_offset_of_first_event", i),
			FrameTimeOfLastEvent:        d.timeAt("frame_time_of_last_event", i),
			FrameTimeOffsetOfLastEvent:  d.floatAt("frame_time_offset_of_last_event", i),
			Area:                        d.floatAt("area", i),
			Energy:                      d.floatAt("energy", i),
			QualityFlag:                 d.intAt("quality_flag", i),
		}
	}
	return rows
}

func writeRows[T any](path string, rows []T, geo string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := f.Close(); err == nil {
			err = closeErr
		}
	}()

	w := parquet.NewGenericWriter[T](f, parquet.KeyValueMetadata("geo", geo))
	if _, err = w.Write(rows); err != nil {
		return err
	}
	return w.Close()
}

// AssetMetadata builds a GeoParquet asset. Without href it is an item asset
// definition; columns and a negative count are omitted.
func AssetMetadata(title, href string, columns []Column, count int) *model.Asset {
	asset := model.NewAsset(href, title, model.ParquetMediaType, model.ParquetRoles)
	asset.Set("table:primary_geometry", geometryColumn)
	if len(columns) > 0 {
		asset.Set("table:columns", columns)
	}
	if count >= 0 {
		asset.Set("table:row_count", count)
	}
	return asset
}
