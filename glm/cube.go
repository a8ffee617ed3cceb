package glm

import (
	"strings"
)

// Datacube types of GLM variables
const (
	CubeTypeData      = "data"
	CubeTypeAuxiliary = "auxiliary"
	CubeTypeCount     = "count"
)

// CubeDimension is a datacube extension dimension object
type CubeDimension struct {
	Type        string `json:"type"`
	Description string `json:"description,omitempty"`
	Extent      []int  `json:"extent"`
}

// CubeVariable is a datacube extension variable object
type CubeVariable struct {
	Dimensions  []string `json:"dimensions"`
	Type        string   `json:"type"`
	Description string   `json:"description,omitempty"`
	Unit        string   `json:"unit,omitempty"`
}

// CubeDimensions describes every dimension of ds as an index range
func CubeDimensions(ds Dataset) map[string]CubeDimension {
	out := map[string]CubeDimension{}
	for _, dim := range ds.Dimensions() {
		upper := dim.Size - 1
		if upper < 0 {
			upper = 0
		}
		out[dim.Name] = CubeDimension{
			Type:        CubeTypeCount,
			Description: describeDimension(dim.Name),
			Extent:      []int{0, upper},
		}
	}
	return out
}

// CubeVariables describes every variable of ds
func CubeVariables(ds Dataset) (map[string]CubeVariable, error) {
	out := map[string]CubeVariable{}
	for _, name := range ds.VariableNames() {
		v, err := ds.Variable(name)
		if err != nil {
			return nil, err
		}
		cv := CubeVariable{
			Dimensions:  append([]string{}, v.Dimensions...),
			Type:        CubeTypeAuxiliary,
			Description: v.StringAttribute("long_name"),
		}
		if isRecordVariable(name) {
			cv.Type = CubeTypeData
		}
		if unit, ok := Unit(v.StringAttribute("units")); ok {
			cv.Unit = unit
		}
		out[name] = cv
	}
	return out, nil
}

// isRecordVariable reports whether name is one of the per-event, per-group
// or per-flash arrays
func isRecordVariable(name string) bool {
	for _, table := range []string{"event_", "group_", "flash_"} {
		if strings.HasPrefix(name, table) && !strings.HasSuffix(name, "_count") && !strings.HasSuffix(name, "_threshold") {
			return true
		}
	}
	return false
}

// describeDimension turns number_of_events into "Number of events"
func describeDimension(name string) string {
	words := strings.ReplaceAll(name, "_", " ")
	if words == "" {
		return ""
	}
	return strings.ToUpper(words[:1]) + words[1:]
}
