package glm_test

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/venicegeo/goes-glm-stac/glm"
	"github.com/venicegeo/goes-glm-stac/glm/glmtest"
	"github.com/venicegeo/goes-glm-stac/model"
)

func TestValidateVariableCount(t *testing.T) {
	assert.Nil(t, glm.ValidateVariableCount(glmtest.Default()))

	legacy := glmtest.DefaultOptions()
	legacy.Legacy = true
	assert.Nil(t, glm.ValidateVariableCount(glmtest.New(legacy)))

	broken := glmtest.Default()
	broken.RemoveVariable("event_energy")
	err := glm.ValidateVariableCount(broken)
	assert.NotNil(t, err)
	assert.Contains(t, err.Error(), "47")
}

func TestReadMetadata_Success(t *testing.T) {
	// Tested code
	md, err := glm.ReadMetadata(glmtest.Default())

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Equal(t, "GOES-16", md.Platform.Name)
	assert.Equal(t, model.SlotEast, md.OrbitalSlot)
	assert.Equal(t, "FM1", md.Instrument)
	assert.Equal(t, "NSOF", md.ProductionSite)
	assert.Equal(t, "point", md.FeatureType)
	assert.Equal(t, time.Date(2020, 12, 31, 23, 59, 40, 0, time.UTC), md.Start)
	assert.Equal(t, time.Date(2021, 1, 1, 0, 0, 0, 400000000, time.UTC), md.End)
}

func TestReadMetadata_TestPlatform(t *testing.T) {
	// Mock
	opts := glmtest.DefaultOptions()
	opts.Platform = "GOES-Test"
	opts.OrbitalSlot = "GOES-Test"

	// Tested code
	md, err := glm.ReadMetadata(glmtest.New(opts))

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.True(t, md.Platform.IsTest())
	assert.Equal(t, model.SlotTest, md.OrbitalSlot)
}

func TestReadMetadata_Errors(t *testing.T) {
	missing := glmtest.Default()
	delete(missing.Attributes(), "production_site")
	_, err := glm.ReadMetadata(missing)
	assert.True(t, errors.Is(err, glm.ErrMissingAttribute))

	wrongType := glmtest.Default()
	wrongType.SetAttribute("platform_ID", 16)
	_, err = glm.ReadMetadata(wrongType)
	assert.True(t, errors.Is(err, glm.ErrMissingAttribute))

	platform := glmtest.Default()
	platform.SetAttribute("platform_ID", "G15")
	_, err = glm.ReadMetadata(platform)
	assert.True(t, errors.Is(err, model.ErrUnsupportedPlatform))

	slot := glmtest.Default()
	slot.SetAttribute("orbital_slot", "GOES-Central")
	_, err = glm.ReadMetadata(slot)
	assert.True(t, errors.Is(err, model.ErrInvalidOrbitalSlot))

	times := glmtest.Default()
	times.SetAttribute("time_coverage_end", "2020-12-31T00:00:00Z")
	_, err = glm.ReadMetadata(times)
	assert.NotNil(t, err)
}

func TestMemoryDataset_MissingVariable(t *testing.T) {
	_, err := glmtest.Default().Variable("nope")
	assert.True(t, errors.Is(err, glm.ErrMissingVariable))
}

func TestExtractProperties_Default(t *testing.T) {
	// Tested code
	result, err := glm.ExtractProperties(glmtest.Default())

	// Asserts
	require.Nil(t, err, "%v", err)
	values := map[string]interface{}{}
	for _, v := range result.Values {
		values[v.Name] = v.Value
	}
	assert.Len(t, values, 12)
	assert.Equal(t, int64(5), values["event_count"])
	assert.Equal(t, int64(3), values["group_count"])
	assert.Equal(t, int64(2), values["flash_count"])
	assert.Equal(t, int64(0), values["yaw_flip_flag"])
	assert.InDelta(t, 35786.023, values["nominal_satellite_height"], 0.01)
	assert.InDelta(t, 0.75, values["percent_navigated_L1b_events"], 1e-6)
	assert.NotContains(t, values, "product_time")
	assert.NotContains(t, values, "product_time_bounds")
	assert.NotContains(t, values, "lat_field_of_view")
	assert.NotContains(t, values, "goes_imager_projection")
	assert.NotContains(t, values, "algorithm_product_version_container")

	require.NotNil(t, result.Centroid)
	assert.Equal(t, model.Centroid{Lat: 0, Lon: -75}, *result.Centroid)
}

func TestExtractProperties_Sentinels(t *testing.T) {
	// Mock
	opts := glmtest.DefaultOptions()
	opts.Sentinels = true

	// Tested code
	result, err := glm.ExtractProperties(glmtest.New(opts))

	// Asserts
	require.Nil(t, err, "%v", err)
	for _, v := range result.Values {
		assert.NotEqual(t, "yaw_flip_flag", v.Name)
		assert.NotEqual(t, "nominal_satellite_height", v.Name)
	}
}

func TestExtractProperties_NoEvents(t *testing.T) {
	// Mock
	ds := glmtest.New(glmtest.Options{})

	// Tested code
	result, err := glm.ExtractProperties(ds)

	// Asserts
	require.Nil(t, err, "%v", err)
	found := false
	for _, v := range result.Values {
		if v.Name == "event_count" {
			found = true
			assert.Equal(t, int64(0), v.Value)
		}
	}
	assert.True(t, found)
}

func TestExtractProperties_CentroidNeedsBoth(t *testing.T) {
	// Mock
	ds := glmtest.Default()
	ds.RemoveVariable("lon_field_of_view")

	// Tested code
	result, err := glm.ExtractProperties(ds)

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Nil(t, result.Centroid)
}

func TestVariable_Decode(t *testing.T) {
	// Mock
	v := &glm.Variable{
		Name:       "event_time_offset",
		Type:       "short",
		Dimensions: []string{"number_of_events"},
		Values:     []int16{0, -20000, -1},
		Attributes: map[string]interface{}{
			"_Unsigned":    "true",
			"scale_factor": float32(0.5),
			"add_offset":   float32(-5),
			"_FillValue":   int16(-1),
		},
	}

	// Tested code
	values, err := v.Float64s()

	// Asserts
	require.Nil(t, err)
	assert.Equal(t, -5.0, values[0])
	assert.Equal(t, 45536*0.5-5, values[1])
	assert.True(t, math.IsNaN(values[2]))
	assert.Equal(t, "int16", v.StorageType())
}

func TestVariable_Decode_Signed(t *testing.T) {
	// Mock
	v := &glm.Variable{
		Name:       "offset",
		Type:       "short",
		Dimensions: []string{"n"},
		Values:     []int16{-20000},
		Attributes: map[string]interface{}{"scale_factor": float32(0.5)},
	}

	// Tested code
	values, err := v.Float64s()

	// Asserts
	require.Nil(t, err)
	assert.Equal(t, -10000.0, values[0])
}

func TestVariable_Scalar(t *testing.T) {
	unsigned := &glm.Variable{Name: "u", Type: "short", Values: int16(-2), Attributes: map[string]interface{}{"_Unsigned": "true"}}
	value, ok, err := unsigned.Scalar()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint64(65534), value)

	masked := &glm.Variable{Name: "m", Type: "int", Values: int32(-2147483647), Attributes: map[string]interface{}{}}
	_, ok, err = masked.Scalar()
	assert.Nil(t, err)
	assert.False(t, ok)

	text := &glm.Variable{Name: "t", Type: "string", Values: "abc", Attributes: map[string]interface{}{}}
	value, ok, err = text.Scalar()
	assert.Nil(t, err)
	assert.True(t, ok)
	assert.Equal(t, "abc", value)

	array := &glm.Variable{Name: "a", Type: "int", Dimensions: []string{"n"}, Values: []int32{1}}
	_, _, err = array.Scalar()
	assert.NotNil(t, err)
}

func TestVariable_Int64s(t *testing.T) {
	v := &glm.Variable{Name: "flash_id", Type: "short", Dimensions: []string{"n"}, Values: []int16{-1, 5},
		Attributes: map[string]interface{}{"_Unsigned": "true"}}
	values, err := v.Int64s()
	assert.Nil(t, err)
	assert.Equal(t, []int64{65535, 5}, values)
	assert.Equal(t, 2, v.Len())
}

func TestVariable_ValidRange(t *testing.T) {
	// Mock
	packed := &glm.Variable{
		Name:       "event_energy",
		Type:       "short",
		Dimensions: []string{"number_of_events"},
		Values:     []int16{-2, 0, 100, -3},
		Attributes: map[string]interface{}{
			"_Unsigned":    "true",
			"scale_factor": float32(2),
			"valid_range":  []int16{0, -3},
		},
	}
	bounded := &glm.Variable{
		Name:       "group_area",
		Type:       "float",
		Dimensions: []string{"number_of_groups"},
		Values:     []float32{-1, 0.5, 3},
		Attributes: map[string]interface{}{"valid_min": float32(0), "valid_max": float32(2)},
	}
	lower := &glm.Variable{
		Name:       "flash_area",
		Type:       "int",
		Dimensions: []string{"number_of_flashes"},
		Values:     []int32{-5, 7},
		Attributes: map[string]interface{}{"valid_min": int32(0)},
	}

	// Tested code
	packedValues, packedErr := packed.Float64s()
	boundedValues, boundedErr := bounded.Float64s()
	lowerValues, lowerErr := lower.Float64s()

	// Asserts
	require.Nil(t, packedErr)
	assert.True(t, math.IsNaN(packedValues[0]))
	assert.Equal(t, 0.0, packedValues[1])
	assert.Equal(t, 200.0, packedValues[2])
	assert.Equal(t, 65533*2.0, packedValues[3])

	require.Nil(t, boundedErr)
	assert.True(t, math.IsNaN(boundedValues[0]))
	assert.Equal(t, 0.5, boundedValues[1])
	assert.True(t, math.IsNaN(boundedValues[2]))

	require.Nil(t, lowerErr)
	assert.True(t, math.IsNaN(lowerValues[0]))
	assert.Equal(t, 7.0, lowerValues[1])
}

func TestVariable_ValidRange_Malformed(t *testing.T) {
	v := &glm.Variable{Name: "x", Type: "float", Dimensions: []string{"n"}, Values: []float32{1},
		Attributes: map[string]interface{}{"valid_range": []float32{0}}}
	_, err := v.Float64s()
	assert.NotNil(t, err)
}

func TestExtractProperties_OutOfRange(t *testing.T) {
	// Mock
	ds := glmtest.Default()
	percent, err := ds.Variable("percent_uncorrectable_L0_errors")
	require.Nil(t, err)
	percent.Values = float32(5)
	percent.Attributes["valid_range"] = []float32{0, 1}
	ds.AddVariable(percent)

	// Tested code
	result, err := glm.ExtractProperties(ds)

	// Asserts
	require.Nil(t, err, "%v", err)
	assert.Len(t, result.Values, 11)
	for _, v := range result.Values {
		assert.NotEqual(t, "percent_uncorrectable_L0_errors", v.Name)
	}
}

func TestWithUnsignedRepair(t *testing.T) {
	// Mock
	opts := glmtest.DefaultOptions()
	opts.MissingUnsigned = true
	ds := glmtest.New(opts)

	// Tested code
	repaired, names, err := glm.WithUnsignedRepair(ds)

	// Asserts
	require.Nil(t, err)
	assert.Equal(t, glm.UnsignedDefectVariables, names)
	v, err := repaired.Variable("event_time_offset")
	require.Nil(t, err)
	assert.True(t, v.IsUnsigned())
	values, err := v.Float64s()
	require.Nil(t, err)
	assert.True(t, values[1] > 0)

	original, _ := ds.Variable("event_time_offset")
	assert.False(t, original.IsUnsigned())
}

func TestWithUnsignedRepair_NothingToRepair(t *testing.T) {
	// Mock
	ds := glmtest.Default()

	// Tested code
	repaired, names, err := glm.WithUnsignedRepair(ds)

	// Asserts
	assert.Nil(t, err)
	assert.Empty(t, names)
	assert.Equal(t, glm.Dataset(ds), repaired)
}

func TestUnit(t *testing.T) {
	unit, ok := glm.Unit("percent")
	assert.True(t, ok)
	assert.Equal(t, "%", unit)

	_, ok = glm.Unit("count")
	assert.False(t, ok)
	_, ok = glm.Unit("1")
	assert.False(t, ok)
	_, ok = glm.Unit("")
	assert.False(t, ok)

	unit, ok = glm.Unit("km2")
	assert.True(t, ok)
	assert.Equal(t, "km2", unit)
}

func TestTimeBase(t *testing.T) {
	base, ok, err := glm.TimeBase(glmtest.TimeUnits)
	assert.True(t, ok)
	assert.Nil(t, err)
	assert.Equal(t, time.Date(2020, 12, 31, 23, 59, 40, 0, time.UTC), base)
	assert.Equal(t, base.Add(1500*time.Millisecond), glm.OffsetTime(base, 1.5))

	_, ok, _ = glm.TimeBase("degrees_north")
	assert.False(t, ok)

	_, ok, err = glm.TimeBase("seconds since the beginning")
	assert.True(t, ok)
	assert.NotNil(t, err)
}

func TestCubeDimensions(t *testing.T) {
	// Mock
	ds := glmtest.New(glmtest.Options{Events: 4})

	// Tested code
	dims := glm.CubeDimensions(ds)

	// Asserts
	assert.Len(t, dims, 6)
	assert.Equal(t, []int{0, 3}, dims["number_of_events"].Extent)
	assert.Equal(t, []int{0, 0}, dims["number_of_flashes"].Extent)
	assert.Equal(t, "Number of events", dims["number_of_events"].Description)
	assert.Equal(t, glm.CubeTypeCount, dims["number_of_events"].Type)
}

func TestCubeVariables(t *testing.T) {
	// Tested code
	vars, err := glm.CubeVariables(glmtest.Default())

	// Asserts
	require.Nil(t, err)
	assert.Len(t, vars, 48)
	expected := glm.CubeVariable{
		Dimensions:  []string{"number_of_events"},
		Type:        glm.CubeTypeData,
		Description: "GLM L2+ Lightning Detection: event latitude",
		Unit:        "degrees_north",
	}
	if diff := cmp.Diff(expected, vars["event_lat"]); diff != "" {
		t.Errorf("event_lat mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, glm.CubeTypeAuxiliary, vars["event_count"].Type)
	assert.Equal(t, "", vars["event_count"].Unit)
	assert.Equal(t, "%", vars["percent_navigated_L1b_events"].Unit)
	assert.Equal(t, glm.CubeTypeAuxiliary, vars["flash_time_threshold"].Type)
	assert.Empty(t, vars["product_time"].Dimensions)
}
