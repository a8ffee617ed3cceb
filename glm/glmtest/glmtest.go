// Package glmtest builds in-memory GLM L2 LCFA datasets for tests
package glmtest

import (
	"fmt"

	"github.com/venicegeo/goes-glm-stac/glm"
)

// Coverage of every generated dataset
const (
	CoverageStart = "2020-12-31T23:59:40.0Z"
	CoverageEnd   = "2021-01-01T00:00:00.4Z"
	DateCreated   = "2021-01-01T00:00:03.0Z"
	TimeUnits     = "seconds since 2020-12-31 23:59:40.000"
)

// Options control the generated dataset
type Options struct {
	Environment string // OR unless set
	Platform    string // G16 unless set
	Instrument  string // FM1 unless set
	OrbitalSlot string // GOES-East unless set
	DatasetName string // derived from Environment and Platform unless set

	Events  int
	Groups  int
	Flashes int

	// Legacy omits the three *_container variables (45 variables)
	Legacy bool
	// MissingUnsigned drops _Unsigned from the time offset variables
	MissingUnsigned bool
	// Sentinels sets nominal_satellite_height to -999 and yaw_flip_flag to -1
	Sentinels bool
}

// DefaultOptions is a GOES-16 file with a few records of each kind
func DefaultOptions() Options {
	return Options{Events: 5, Groups: 3, Flashes: 2}
}

// Name returns the dataset_name the options produce
func (o Options) Name() string {
	if o.DatasetName != "" {
		return o.DatasetName
	}
	return fmt.Sprintf("%s_GLM-L2-LCFA_%s_s20203662359400_e20210010000004_c20210010000030.nc",
		orDefault(o.Environment, "OR"), orDefault(o.Platform, "G16"))
}

// New builds a dataset
func New(o Options) *glm.MemoryDataset {
	ds := glm.NewMemoryDataset(map[string]interface{}{
		"dataset_name":        o.Name(),
		"time_coverage_start": CoverageStart,
		"time_coverage_end":   CoverageEnd,
		"platform_ID":         orDefault(o.Platform, "G16"),
		"orbital_slot":        orDefault(o.OrbitalSlot, "GOES-East"),
		"instrument_ID":       orDefault(o.Instrument, "FM1"),
		"production_site":     "NSOF",
		"date_created":        DateCreated,
		"featureType":         "point",
		"title":               "GLM L2 Lightning Detections: Events, Groups, and Flashes",
	})
	ds.AddDimension("number_of_events", o.Events)
	ds.AddDimension("number_of_groups", o.Groups)
	ds.AddDimension("number_of_flashes", o.Flashes)
	ds.AddDimension("number_of_time_bounds", 2)
	ds.AddDimension("number_of_field_of_view_bounds", 2)
	ds.AddDimension("number_of_wavelength_bounds", 2)

	addEvents(ds, o.Events)
	addGroups(ds, o.Groups)
	addFlashes(ds, o.Flashes)
	addScalars(ds, o)

	if o.MissingUnsigned {
		for _, name := range glm.UnsignedDefectVariables {
			v, err := ds.Variable(name)
			if err != nil {
				continue
			}
			delete(v.Attributes, "_Unsigned")
			ds.AddVariable(v)
		}
	}
	return ds
}

// Default builds a dataset from DefaultOptions
func Default() *glm.MemoryDataset {
	return New(DefaultOptions())
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func attrs(longName, units string, extra ...interface{}) map[string]interface{} {
	out := map[string]interface{}{"long_name": longName}
	if units != "" {
		out["units"] = units
	}
	for i := 0; i+1 < len(extra); i += 2 {
		out[extra[i].(string)] = extra[i+1]
	}
	return out
}

// packed returns attributes of an unsigned short packed into floats
func packed(longName, units string, scale, offset float32) map[string]interface{} {
	return attrs(longName, units,
		"_Unsigned", "true",
		"scale_factor", scale,
		"add_offset", offset,
		"_FillValue", int16(-1))
}

const timeScale = float32(0.0003814756)

func timeOffsets(n int) []int16 {
	// Every second raw value has the high bit set, so it decodes differently
	// when read as signed
	out := make([]int16, n)
	for i := range out {
		if i%2 == 1 {
			out[i] = -20000
		} else {
			out[i] = int16(100 * i)
		}
	}
	return out
}

func ids(n int, first int32) []int32 {
	out := make([]int32, n)
	for i := range out {
		out[i] = first + int32(i)
	}
	return out
}

func floats(n int, first, step float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = first + step*float32(i)
	}
	return out
}

func shorts(n int, first, step int16) []int16 {
	out := make([]int16, n)
	for i := range out {
		out[i] = first + step*int16(i)
	}
	return out
}

func addEvents(ds *glm.MemoryDataset, n int) {
	dims := []string{"number_of_events"}
	parents := make([]int32, n)
	for i := range parents {
		parents[i] = 100 + int32(i%3)
	}
	ds.AddVariable(&glm.Variable{Name: "event_id", Type: "int", Dimensions: dims, Values: ids(n, 1000),
		Attributes: attrs("product-unique lightning event identifier", "1")})
	ds.AddVariable(&glm.Variable{Name: "event_time_offset", Type: "short", Dimensions: dims, Values: timeOffsets(n),
		Attributes: packed("GLM L2+ Lightning Detection: event's time of occurrence", TimeUnits, timeScale, -5)})
	ds.AddVariable(&glm.Variable{Name: "event_lat", Type: "short", Dimensions: dims, Values: shorts(n, 16000, 500),
		Attributes: packed("GLM L2+ Lightning Detection: event latitude", "degrees_north", 0.00203128, -66.56)})
	ds.AddVariable(&glm.Variable{Name: "event_lon", Type: "short", Dimensions: dims, Values: shorts(n, 30000, 500),
		Attributes: packed("GLM L2+ Lightning Detection: event longitude", "degrees_east", 0.00203128, -141.56)})
	ds.AddVariable(&glm.Variable{Name: "event_energy", Type: "short", Dimensions: dims, Values: shorts(n, 10, 3),
		Attributes: packed("GLM L2+ Lightning Detection: event radiant energy", "J", 1.9024e-17, 2.8515e-16)})
	ds.AddVariable(&glm.Variable{Name: "event_parent_group_id", Type: "int", Dimensions: dims, Values: parents,
		Attributes: attrs("product-unique lightning group identifier for one or more events", "1")})
}

func addGroups(ds *glm.MemoryDataset, n int) {
	dims := []string{"number_of_groups"}
	parents := make([]int32, n)
	for i := range parents {
		parents[i] = 200 + int32(i%2)
	}
	ds.AddVariable(&glm.Variable{Name: "group_id", Type: "int", Dimensions: dims, Values: ids(n, 100),
		Attributes: attrs("product-unique lightning group identifier", "1")})
	ds.AddVariable(&glm.Variable{Name: "group_time_offset", Type: "short", Dimensions: dims, Values: timeOffsets(n),
		Attributes: packed("GLM L2+ Lightning Detection: mean time of group's constituent events' times of occurrence", TimeUnits, timeScale, -5)})
	ds.AddVariable(&glm.Variable{Name: "group_frame_time_offset", Type: "short", Dimensions: dims, Values: timeOffsets(n),
		Attributes: packed("GLM L2+ Lightning Detection: group's time of occurrence", TimeUnits, timeScale, -5)})
	ds.AddVariable(&glm.Variable{Name: "group_lat", Type: "float", Dimensions: dims, Values: floats(n, 12.5, 0.25),
		Attributes: attrs("GLM L2+ Lightning Detection: group centroid (mean constituent event latitude weighted by their energies) latitude", "degrees_north")})
	ds.AddVariable(&glm.Variable{Name: "group_lon", Type: "float", Dimensions: dims, Values: floats(n, -80.5, 0.25),
		Attributes: attrs("GLM L2+ Lightning Detection: group centroid (mean constituent event latitude weighted by their energies) longitude", "degrees_east")})
	ds.AddVariable(&glm.Variable{Name: "group_area", Type: "short", Dimensions: dims, Values: shorts(n, 50, 10),
		Attributes: packed("GLM L2+ Lightning Detection: group area coverage (pixels containing at least one constituent event only)", "km2", 152.70299, 0)})
	ds.AddVariable(&glm.Variable{Name: "group_energy", Type: "short", Dimensions: dims, Values: shorts(n, 20, 5),
		Attributes: packed("GLM L2+ Lightning Detection: group radiant energy", "J", 1.9024e-17, 2.8515e-16)})
	ds.AddVariable(&glm.Variable{Name: "group_parent_flash_id", Type: "int", Dimensions: dims, Values: parents,
		Attributes: attrs("product-unique lightning flash identifier for one or more groups", "1")})
	ds.AddVariable(&glm.Variable{Name: "group_quality_flag", Type: "short", Dimensions: dims, Values: make([]int16, n),
		Attributes: attrs("GLM L2+ Lightning Detection: group data quality flags", "1", "_FillValue", int16(-1))})
}

func addFlashes(ds *glm.MemoryDataset, n int) {
	dims := []string{"number_of_flashes"}
	flashIDs := make([]int16, n)
	for i := range flashIDs {
		flashIDs[i] = int16(200 + i)
	}
	ds.AddVariable(&glm.Variable{Name: "flash_id", Type: "short", Dimensions: dims, Values: flashIDs,
		Attributes: attrs("product-unique lightning flash identifier", "1", "_Unsigned", "true")})
	for _, name := range []string{
		"flash_time_offset_of_first_event",
		"flash_time_offset_of_last_event",
		"flash_frame_time_offset_of_first_event",
		"flash_frame_time_offset_of_last_event",
	} {
		ds.AddVariable(&glm.Variable{Name: name, Type: "short", Dimensions: dims, Values: timeOffsets(n),
			Attributes: packed("GLM L2+ Lightning Detection: "+name, TimeUnits, timeScale, -5)})
	}
	ds.AddVariable(&glm.Variable{Name: "flash_lat", Type: "float", Dimensions: dims, Values: floats(n, 12.5, 0.5),
		Attributes: attrs("GLM L2+ Lightning Detection: flash centroid (mean constituent event latitude weighted by their energies) latitude", "degrees_north")})
	ds.AddVariable(&glm.Variable{Name: "flash_lon", Type: "float", Dimensions: dims, Values: floats(n, -80.5, 0.5),
		Attributes: attrs("GLM L2+ Lightning Detection: flash centroid (mean constituent event latitude weighted by their energies) longitude", "degrees_east")})
	ds.AddVariable(&glm.Variable{Name: "flash_area", Type: "short", Dimensions: dims, Values: shorts(n, 80, 10),
		Attributes: packed("GLM L2+ Lightning Detection: flash area coverage (pixels containing at least one constituent event only)", "km2", 152.70299, 0)})
	ds.AddVariable(&glm.Variable{Name: "flash_energy", Type: "short", Dimensions: dims, Values: shorts(n, 40, 5),
		Attributes: packed("GLM L2+ Lightning Detection: flash radiant energy", "J", 1.9024e-17, 2.8515e-16)})
	ds.AddVariable(&glm.Variable{Name: "flash_quality_flag", Type: "short", Dimensions: dims, Values: make([]int16, n),
		Attributes: attrs("GLM L2+ Lightning Detection: flash data quality flags", "1", "_FillValue", int16(-1))})
}

func addScalars(ds *glm.MemoryDataset, o Options) {
	scalar := func(name, cdlType string, value interface{}, a map[string]interface{}) {
		ds.AddVariable(&glm.Variable{Name: name, Type: cdlType, Dimensions: []string{}, Values: value, Attributes: a})
	}
	bounds := func(name, dim string, values []float32, a map[string]interface{}) {
		ds.AddVariable(&glm.Variable{Name: name, Type: "float", Dimensions: []string{dim}, Values: values, Attributes: a})
	}

	scalar("product_time", "double", float64(662687980.0), attrs("GLM L2+ Lightning Detection: product midpoint time", "seconds since 2000-01-01 12:00:00"))
	ds.AddVariable(&glm.Variable{Name: "product_time_bounds", Type: "double", Dimensions: []string{"number_of_time_bounds"},
		Values: []float64{662687980.0, 662688000.4}, Attributes: attrs("GLM L2+ Lightning Detection: product time bounds", "seconds since 2000-01-01 12:00:00")})
	scalar("lightning_wavelength", "float", float32(777.4), attrs("lightning wavelength", "nm"))
	bounds("lightning_wavelength_bounds", "number_of_wavelength_bounds", []float32{777.2, 777.6}, attrs("lightning wavelength bounds", "nm"))
	scalar("group_time_threshold", "float", float32(0.0), attrs("lightning group maximum time difference among lightning events", "s"))
	scalar("flash_time_threshold", "float", float32(3.33), attrs("lightning flash maximum time difference among lightning events", "s"))
	scalar("lat_field_of_view", "float", float32(0.0), attrs("center latitude of field of view", "degrees_north"))
	bounds("lat_field_of_view_bounds", "number_of_field_of_view_bounds", []float32{-66.56, 66.56}, attrs("latitude coverage of field of view", "degrees_north"))
	scalar("lon_field_of_view", "float", float32(-75.0), attrs("center longitude of field of view", "degrees_east"))
	bounds("lon_field_of_view_bounds", "number_of_field_of_view_bounds", []float32{-141.56, -8.44}, attrs("longitude coverage of field of view", "degrees_east"))
	scalar("goes_imager_projection", "int", int32(-2147483647), attrs("GOES-R ABI fixed grid projection", ""))
	scalar("event_count", "int", int32(o.Events), attrs("number of lightning events", "count"))
	scalar("group_count", "int", int32(o.Groups), attrs("number of lightning groups", "count"))
	scalar("flash_count", "int", int32(o.Flashes), attrs("number of lightning flashes", "count"))
	scalar("percent_navigated_L1b_events", "float", float32(0.75), attrs("percent of navigated L1b events", "percent"))

	yaw := int8(0)
	height := float32(35786.023)
	if o.Sentinels {
		yaw = -1
		height = -999
	}
	scalar("yaw_flip_flag", "byte", yaw, attrs("Flag indicating the spacecraft is operating in yaw flip configuration", "1"))
	scalar("nominal_satellite_subpoint_lat", "float", float32(0.0), attrs("nominal satellite subpoint latitude (platform latitude)", "degrees_north"))
	scalar("nominal_satellite_height", "float", height, attrs("nominal satellite height above GRS 80 ellipsoid (platform altitude)", "km"))
	scalar("nominal_satellite_subpoint_lon", "float", float32(-75.0), attrs("nominal satellite subpoint longitude (platform longitude)", "degrees_east"))
	scalar("percent_uncorrectable_L0_errors", "float", float32(0.0), attrs("percent data lost due to uncorrectable L0 errors", "percent"))

	if !o.Legacy {
		for _, name := range []string{
			"algorithm_dynamic_input_data_container",
			"processing_parm_version_container",
			"algorithm_product_version_container",
		} {
			scalar(name, "int", int32(-2147483647), attrs("container for "+name, ""))
		}
	}
}
