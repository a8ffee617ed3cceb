package glm

import (
	"fmt"
	"strings"
	"time"

	"github.com/venicegeo/goes-glm-stac/model"
)

// Variable counts of the two known GLM L2 layouts. The older layout lacks
// the three *_container variables.
const (
	LegacyVariableCount  = 45
	CurrentVariableCount = 48
)

// Global attributes read from every file
const (
	AttrDatasetName    = "dataset_name"
	AttrCoverageStart  = "time_coverage_start"
	AttrCoverageEnd    = "time_coverage_end"
	AttrPlatformID     = "platform_ID"
	AttrOrbitalSlot    = "orbital_slot"
	AttrInstrumentID   = "instrument_ID"
	AttrProductionSite = "production_site"
	AttrDateCreated    = "date_created"
	AttrFeatureType    = "featureType"
)

// RequiredAttributes must be present as strings. dataset_name is optional.
var RequiredAttributes = []string{
	AttrCoverageStart,
	AttrCoverageEnd,
	AttrPlatformID,
	AttrOrbitalSlot,
	AttrInstrumentID,
	AttrProductionSite,
	AttrDateCreated,
}

// Metadata is the global metadata of a GLM file
type Metadata struct {
	DatasetName    string
	Start          time.Time
	End            time.Time
	Platform       model.Platform
	OrbitalSlot    model.OrbitalSlot
	Instrument     string
	ProductionSite string
	DateCreated    string
	FeatureType    string
}

// ValidateVariableCount checks that ds has one of the known layouts
func ValidateVariableCount(ds Dataset) error {
	count := len(ds.VariableNames())
	if count != LegacyVariableCount && count != CurrentVariableCount {
		return fmt.Errorf("The number of variables is expected to be %d or %d, but it is %d", LegacyVariableCount, CurrentVariableCount, count)
	}
	return nil
}

// StringAttribute returns a global string attribute
func StringAttribute(ds Dataset, name string) (string, error) {
	raw, ok := ds.Attributes()[name]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrMissingAttribute, name)
	}
	value, ok := raw.(string)
	if !ok {
		return "", fmt.Errorf("%w: %s is a %T, not a string", ErrMissingAttribute, name, raw)
	}
	return strings.TrimSpace(value), nil
}

// ReadMetadata reads and validates the global attributes of ds
func ReadMetadata(ds Dataset) (*Metadata, error) {
	values := map[string]string{}
	for _, name := range RequiredAttributes {
		value, err := StringAttribute(ds, name)
		if err != nil {
			return nil, err
		}
		values[name] = value
	}

	md := Metadata{
		Instrument:     values[AttrInstrumentID],
		ProductionSite: values[AttrProductionSite],
		DateCreated:    values[AttrDateCreated],
	}
	md.DatasetName, _ = StringAttribute(ds, AttrDatasetName)
	md.FeatureType, _ = StringAttribute(ds, AttrFeatureType)

	var err error
	if md.Start, err = model.ParseTimestamp(values[AttrCoverageStart]); err != nil {
		return nil, fmt.Errorf("%s: %w", AttrCoverageStart, err)
	}
	if md.End, err = model.ParseTimestamp(values[AttrCoverageEnd]); err != nil {
		return nil, fmt.Errorf("%s: %w", AttrCoverageEnd, err)
	}
	if md.End.Before(md.Start) {
		return nil, fmt.Errorf("%s is before %s", AttrCoverageEnd, AttrCoverageStart)
	}
	if md.Platform, err = model.LookupPlatform(values[AttrPlatformID]); err != nil {
		return nil, fmt.Errorf("The dataset contains an invalid platform identifier: %w", err)
	}
	if md.OrbitalSlot, err = model.ParseOrbitalSlot(values[AttrOrbitalSlot]); err != nil {
		return nil, fmt.Errorf("The value for '%s' is invalid: %w", AttrOrbitalSlot, err)
	}
	return &md, nil
}
