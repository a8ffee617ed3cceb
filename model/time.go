package model

import (
	"fmt"
	"strings"
	"time"
)

// GLM files and the CLI hand us timestamps in several ISO 8601 flavours:
// "2020-12-31T23:59:40.0Z" in the coverage attributes, "2020-12-31 23:59:40.000"
// inside "seconds since" units, and full RFC 3339 strings from users. Parsing
// tries every layout in turn; everything is normalized to UTC.

// TimestampLayout is the layout of every formatted timestamp
const TimestampLayout = "2006-01-02T15:04:05.000000Z"

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02T15:04Z07:00",
	"2006-01-02",
}

// ParseTimestamp is a drop-in replacement for time.Parse, but matching
// against every timestamp flavour found in GLM files. Timestamps without an
// offset are taken to be UTC.
func ParseTimestamp(raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	for _, layout := range timeLayouts {
		if output, err := time.Parse(layout, raw); err == nil {
			return output.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("Date could not be parsed by any expected time format: `%s`", raw)
}

// FormatTimestamp formats t in UTC with microseconds
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampLayout)
}

// CenterTime returns the instant halfway between start and end
func CenterTime(start, end time.Time) time.Time {
	return start.Add(end.Sub(start) / 2)
}
