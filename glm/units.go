package glm

import (
	"strings"
	"time"

	"github.com/venicegeo/goes-glm-stac/model"
)

const secondsSincePrefix = "seconds since "

// Unit converts a CF units string to the unit reported in STAC metadata.
// ok is false for units that carry no information.
func Unit(units string) (unit string, ok bool) {
	if units == "" {
		return "", false
	}
	if units == "percent" {
		return "%", true
	}
	for _, ignored := range model.IgnoredUnits {
		if units == ignored {
			return "", false
		}
	}
	return units, true
}

// TimeBase returns the reference time of "seconds since <base>" units. ok is
// false for other units.
func TimeBase(units string) (base time.Time, ok bool, err error) {
	if !strings.HasPrefix(units, secondsSincePrefix) {
		return time.Time{}, false, nil
	}
	base, err = model.ParseTimestamp(strings.TrimPrefix(units, secondsSincePrefix))
	if err != nil {
		return time.Time{}, true, err
	}
	return base, true, nil
}

// OffsetTime converts an offset in seconds from base into a timestamp
func OffsetTime(base time.Time, seconds float64) time.Time {
	return base.Add(time.Duration(seconds * float64(time.Second)))
}
