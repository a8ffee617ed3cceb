package glm

import (
	"math"
	"strings"

	"github.com/venicegeo/goes-glm-stac/model"
)

const (
	productTimeVariable = "product_time"
	latFieldOfView      = "lat_field_of_view"
	lonFieldOfView      = "lon_field_of_view"
	yawFlipFlag         = "yaw_flip_flag"
	missingSentinel     = -999.0
)

// Extraction is the result of reading the scalar variables of a dataset
type Extraction struct {
	Values   []model.VariableValue
	Centroid *model.Centroid
}

// ExtractProperties reads every zero-dimensional variable except
// product_time and keeps the values worth reporting:
//   - masked values are skipped
//   - the field of view center becomes the centroid
//   - counts and the yaw flip flag are kept when not negative
//   - nominal_* and percent_* values are kept unless they are -999
func ExtractProperties(ds Dataset) (*Extraction, error) {
	result := Extraction{Values: []model.VariableValue{}}
	var lat, lon *float64

	for _, name := range ds.VariableNames() {
		if name == productTimeVariable {
			continue
		}
		v, err := ds.Variable(name)
		if err != nil {
			return nil, err
		}
		if !v.IsScalar() {
			continue
		}
		value, ok, err := v.Scalar()
		if err != nil {
			return nil, err
		}
		if !ok {
			continue
		}

		switch {
		case name == latFieldOfView:
			if f, isNumber := asFloat(value); isNumber {
				lat = &f
			}
		case name == lonFieldOfView:
			if f, isNumber := asFloat(value); isNumber {
				lon = &f
			}
		case strings.HasSuffix(name, "_count") || name == yawFlipFlag:
			if f, isNumber := asFloat(value); isNumber && f >= 0 {
				result.Values = append(result.Values, model.VariableValue{Name: name, Value: value})
			}
		case strings.HasPrefix(name, "nominal_") || strings.HasPrefix(name, "percent_"):
			if f, isNumber := asFloat(value); isNumber && !isClose(f, missingSentinel) {
				result.Values = append(result.Values, model.VariableValue{Name: name, Value: value})
			}
		default:
			result.Values = append(result.Values, model.VariableValue{Name: name, Value: value})
		}
	}

	if lat != nil && lon != nil {
		result.Centroid = &model.Centroid{Lat: *lat, Lon: *lon}
	}
	return &result, nil
}

func asFloat(value interface{}) (float64, bool) {
	switch n := value.(type) {
	case int64:
		return float64(n), true
	case uint64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

// isClose compares with a relative tolerance of 1e-9
func isClose(a, b float64) bool {
	return math.Abs(a-b) <= 1e-9*math.Max(math.Abs(a), math.Abs(b))
}
