package geoparquet

import (
	"encoding/json"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/encoding/wkb"
)

// GeoParquetVersion is the version of the geo metadata we write
const GeoParquetVersion = "1.0.0"

// GeoMetadata is the "geo" key-value metadata of a GeoParquet file
type GeoMetadata struct {
	Version       string                    `json:"version"`
	PrimaryColumn string                    `json:"primary_column"`
	Columns       map[string]GeoColumnEntry `json:"columns"`
}

// GeoColumnEntry describes a geometry column. Without a crs member the
// coordinates are OGC:CRS84 longitude/latitude.
type GeoColumnEntry struct {
	Encoding      string    `json:"encoding"`
	GeometryTypes []string  `json:"geometry_types"`
	Bbox          []float64 `json:"bbox,omitempty"`
}

func newGeoMetadata(points orb.MultiPoint) GeoMetadata {
	entry := GeoColumnEntry{Encoding: "WKB", GeometryTypes: []string{"Point"}}
	if len(points) > 0 {
		bound := points.Bound()
		entry.Bbox = []float64{bound.Min.Lon(), bound.Min.Lat(), bound.Max.Lon(), bound.Max.Lat()}
	}
	return GeoMetadata{
		Version:       GeoParquetVersion,
		PrimaryColumn: geometryColumn,
		Columns:       map[string]GeoColumnEntry{geometryColumn: entry},
	}
}

func (g GeoMetadata) encode() (string, error) {
	data, err := json.Marshal(g)
	return string(data), err
}

// pointWKB encodes a lon/lat point. ok is false when a coordinate is masked.
func pointWKB(lon, lat float64) (data []byte, point orb.Point, ok bool, err error) {
	if math.IsNaN(lon) || math.IsNaN(lat) {
		return nil, point, false, nil
	}
	point = orb.Point{lon, lat}
	data, err = wkb.Marshal(point)
	return data, point, true, err
}
