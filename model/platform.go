package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/venicegeo/geojson-go/geojson"
)

// GOESNamespace is the field namespace of the GOES extension
const GOESNamespace = "goes"

// ErrUnsupportedPlatform is returned for satellite identifiers this tool
// cannot describe
var ErrUnsupportedPlatform = errors.New("unsupported satellite")

// ErrInvalidOrbitalSlot is returned for unknown orbital slot values
var ErrInvalidOrbitalSlot = errors.New("invalid orbital slot")

// Generation is a satellite series. It decides which extension describes
// the satellite-specific fields and which namespace they live in.
type Generation struct {
	Name         string
	Namespace    string
	ExtensionURL string
}

// GOESR is the GOES-R series (GOES-16 onwards)
var GOESR = Generation{Name: "GOES-R", Namespace: GOESNamespace, ExtensionURL: GOESExtension}

// Platform is a satellite carrying a GLM instrument
type Platform struct {
	ID         string // as in file names and the platform_ID attribute, e.g. G16
	Name       string // e.g. GOES-16
	Instrument string // flight model, e.g. FM1
	Generation Generation
}

// IsTest reports whether p is the test designation rather than a satellite
func (p Platform) IsTest() bool {
	return p.ID == TestPlatformID
}

// TestPlatformID is the designation used for test data
const TestPlatformID = "GOES-Test"

// TestPlatform is accepted wherever a satellite identifier is expected
var TestPlatform = Platform{ID: TestPlatformID, Name: TestPlatformID, Generation: GOESR}

// Platforms lists all supported satellites in launch order
var Platforms = []Platform{
	{ID: "G16", Name: "GOES-16", Instrument: "FM1", Generation: GOESR},
	{ID: "G17", Name: "GOES-17", Instrument: "FM2", Generation: GOESR},
	{ID: "G18", Name: "GOES-18", Instrument: "FM3", Generation: GOESR},
	{ID: "G19", Name: "GOES-19", Instrument: "FM4", Generation: GOESR},
}

// LookupPlatform finds a platform by its short ID (G16) or name (GOES-16)
func LookupPlatform(id string) (Platform, error) {
	id = strings.TrimSpace(id)
	if strings.EqualFold(id, TestPlatformID) {
		return TestPlatform, nil
	}
	for _, p := range Platforms {
		if strings.EqualFold(id, p.ID) || strings.EqualFold(id, p.Name) {
			return p, nil
		}
	}
	return Platform{}, fmt.Errorf("%w: %q", ErrUnsupportedPlatform, id)
}

// PlatformNames returns the names of all supported satellites
func PlatformNames() []string {
	names := make([]string, len(Platforms))
	for i, p := range Platforms {
		names[i] = p.Name
	}
	return names
}

// Instruments returns the flight models of all supported satellites
func Instruments() []string {
	instruments := make([]string, len(Platforms))
	for i, p := range Platforms {
		instruments[i] = p.Instrument
	}
	return instruments
}

// OrbitalSlot is the position a satellite is operated at
type OrbitalSlot string

// Known orbital slots
const (
	SlotWest OrbitalSlot = "West"
	SlotEast OrbitalSlot = "East"
	SlotTest OrbitalSlot = "Test"
)

// OrbitalSlots lists all slots in the order used for collection summaries
var OrbitalSlots = []OrbitalSlot{SlotWest, SlotEast, SlotTest}

// ParseOrbitalSlot accepts the attribute form (GOES-East), the enum form
// (GOES_East) and the bare slot name (East)
func ParseOrbitalSlot(raw string) (OrbitalSlot, error) {
	name := strings.TrimSpace(raw)
	name = strings.TrimPrefix(strings.TrimPrefix(name, "GOES-"), "GOES_")
	for _, slot := range OrbitalSlots {
		if strings.EqualFold(name, string(slot)) {
			return slot, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidOrbitalSlot, raw)
}

// Item footprints. West crosses the antimeridian.
var (
	itemBboxWest = geojson.BoundingBox{156.44, -66.56, -70.44, 66.56}
	itemBboxEast = geojson.BoundingBox{-141.56, -66.56, -8.44, 66.56}
	itemBboxTest = geojson.BoundingBox{-156.06, -66.56, -22.94, 66.56}
)

// CollectionBboxes are the spatial extent of the collection: the union
// first, then West split at the antimeridian, East and Test
var CollectionBboxes = []geojson.BoundingBox{
	{156.44, -66.56, -8.44, 66.56},
	{156.44, -66.56, 180.0, 66.56},
	{-180.0, -66.56, -70.44, 66.56},
	itemBboxEast,
	itemBboxTest,
}

// BoundingBox returns the item bbox for the slot
func (s OrbitalSlot) BoundingBox() geojson.BoundingBox {
	switch s {
	case SlotWest:
		return append(geojson.BoundingBox{}, itemBboxWest...)
	case SlotEast:
		return append(geojson.BoundingBox{}, itemBboxEast...)
	case SlotTest:
		return append(geojson.BoundingBox{}, itemBboxTest...)
	}
	return nil
}

// Geometry returns the item footprint for the slot. West is split into two
// rings at the antimeridian.
func (s OrbitalSlot) Geometry() *geojson.Polygon {
	switch s {
	case SlotWest:
		return geojson.NewPolygon([][][]float64{
			rectangleRing(156.44, -66.56, 180, 66.56),
			rectangleRing(-180, -66.56, -70.44, 66.56),
		})
	case SlotEast:
		return geojson.NewPolygon([][][]float64{rectangleRing(-141.56, -66.56, -8.44, 66.56)})
	case SlotTest:
		return geojson.NewPolygon([][][]float64{rectangleRing(-156.06, -66.56, -22.94, 66.56)})
	}
	return nil
}

// rectangleRing walks the rectangle from the north-west corner, south first
func rectangleRing(west, south, east, north float64) [][]float64 {
	return [][]float64{
		{west, north},
		{west, south},
		{east, south},
		{east, north},
		{west, north},
	}
}
