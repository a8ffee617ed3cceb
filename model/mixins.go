package model

import (
	"fmt"
	"time"
)

// AcquisitionInfo is a mixin containing the time coverage of a GLM file
type AcquisitionInfo struct {
	Start time.Time
	End   time.Time
}

// Apply implements the PropertiesMixin interface
func (ai AcquisitionInfo) Apply(properties Properties) error {
	if ai.End.Before(ai.Start) {
		return fmt.Errorf("time coverage ends (%s) before it starts (%s)", FormatTimestamp(ai.End), FormatTimestamp(ai.Start))
	}
	return setAll(properties, map[string]interface{}{
		"datetime":       FormatTimestamp(CenterTime(ai.Start, ai.End)),
		"start_datetime": FormatTimestamp(ai.Start),
		"end_datetime":   FormatTimestamp(ai.End),
	})
}

// PlatformInfo is a mixin containing the satellite and instrument that
// recorded a GLM file
type PlatformInfo struct {
	Platform   Platform
	Instrument string
}

// Apply implements the PropertiesMixin interface
func (pi PlatformInfo) Apply(properties Properties) error {
	return setAll(properties, map[string]interface{}{
		"mission":       Mission,
		"constellation": Constellation,
		"platform":      pi.Platform.Name,
		"instruments":   []string{pi.Instrument},
		"gsd":           Resolution,
	})
}

// ProcessingInfo is a mixin containing processing extension fields
type ProcessingInfo struct {
	Facility string
}

// Apply implements the PropertiesMixin interface
func (pi ProcessingInfo) Apply(properties Properties) error {
	values := map[string]interface{}{"processing:level": ProcessingLevel}
	if pi.Facility != "" {
		values["processing:facility"] = pi.Facility
	}
	return setAll(properties, values)
}

// GOESInfo is a mixin containing the fields of the satellite generation's
// extension
type GOESInfo struct {
	Generation        Generation
	OrbitalSlot       OrbitalSlot
	SystemEnvironment string
}

// Apply implements the PropertiesMixin interface
func (gi GOESInfo) Apply(properties Properties) error {
	prefix := gi.Generation.Namespace + ":"
	return setAll(properties, map[string]interface{}{
		prefix + "orbital_slot":       string(gi.OrbitalSlot),
		prefix + "system_environment": gi.SystemEnvironment,
	})
}

// Centroid is the projection extension centroid
type Centroid struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// ProjectionInfo is a mixin containing projection extension fields
type ProjectionInfo struct {
	EPSG     int
	Centroid *Centroid
}

// Apply implements the PropertiesMixin interface
func (pi ProjectionInfo) Apply(properties Properties) error {
	values := map[string]interface{}{"proj:epsg": pi.EPSG}
	if pi.Centroid != nil {
		values["proj:centroid"] = *pi.Centroid
	}
	return setAll(properties, values)
}

// VariableValue is a single scalar extracted from a GLM variable
type VariableValue struct {
	Name  string
	Value interface{}
}

// ExtractedVariables is a mixin containing the scalar variables of a GLM
// file, in file order, keyed into the generation's namespace
type ExtractedVariables struct {
	Generation Generation
	Values     []VariableValue
}

// Apply implements the PropertiesMixin interface
func (ev ExtractedVariables) Apply(properties Properties) error {
	for _, v := range ev.Values {
		if err := properties.Set(ev.Generation.Namespace+":"+v.Name, v.Value); err != nil {
			return err
		}
	}
	return nil
}

func setAll(properties Properties, values map[string]interface{}) error {
	keys := Properties(values).Keys()
	for _, key := range keys {
		if err := properties.Set(key, values[key]); err != nil {
			return err
		}
	}
	return nil
}
